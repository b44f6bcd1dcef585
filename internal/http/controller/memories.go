package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"memory_mapping/internal/config"
	"memory_mapping/internal/domain"
	"memory_mapping/internal/http/dto"
	"memory_mapping/internal/http/middleware"
	"memory_mapping/internal/http/resp"
	"memory_mapping/internal/model"
	"memory_mapping/internal/queue"
	"memory_mapping/internal/service/memories"
	"memory_mapping/internal/sse"
)

type Handler struct {
	cfg *config.Config
	svc *memories.Service
	hub *sse.Hub
	log *zap.Logger
	pub queue.Publisher
}

func NewHandler(cfg *config.Config, svc *memories.Service, hub *sse.Hub, logger *zap.Logger, publisher queue.Publisher) *Handler {
	return &Handler{cfg: cfg, svc: svc, hub: hub, log: logger, pub: publisher}
}

func (h *Handler) AddMemory(c *gin.Context) {
	var req dto.AddMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	created, err := h.svc.Add(c.Request.Context(), model.Memory{
		MemoryID:    req.MemoryID,
		Description: req.Description,
		Price:       req.Price,
		Owner:       middleware.Owner(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: err.Error()})
			return
		}
		h.log.Error("add memory failed",
			zap.String("memory_id", req.MemoryID),
			zap.String("owner", middleware.Owner(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to add memory"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) PublishMemory(c *gin.Context) {
	var req dto.AddMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	msg := queue.MemoryMessage{
		MemoryID:    req.MemoryID,
		Description: req.Description,
		Price:       req.Price,
		Owner:       middleware.Owner(c),
	}
	if err := domain.Validate(model.Memory{
		MemoryID:    msg.MemoryID,
		Description: msg.Description,
		Price:       msg.Price,
		Owner:       msg.Owner,
	}); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: err.Error()})
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("publish payload marshal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to publish memory"})
		return
	}

	routingKey := h.cfg.RabbitPublishKey
	if routingKey == "" {
		routingKey = "memory.added"
	}
	if err := h.pub.Publish(c.Request.Context(), payload, routingKey); err != nil {
		h.log.Error("publish memory failed",
			zap.String("memory_id", msg.MemoryID),
			zap.String("owner", msg.Owner),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to publish memory"})
		return
	}

	c.JSON(http.StatusAccepted, dto.StatusResponse{Code: resp.CodeQueued, Message: "queued"})
}

func (h *Handler) CountMemories(c *gin.Context) {
	count, err := h.svc.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to count memories"})
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *Handler) LatestMemories(c *gin.Context) {
	latest, err := h.svc.Latest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list latest memories"})
		return
	}
	c.JSON(http.StatusOK, latest)
}

func (h *Handler) CountOwners(c *gin.Context) {
	count, err := h.svc.Owners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to count owners"})
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *Handler) OwnerMemoryCount(c *gin.Context) {
	owner := c.Param("owner")
	count, err := h.svc.OwnerCount(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to count owner memories"})
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *Handler) OwnerMemories(c *gin.Context) {
	owner := c.Param("owner")
	list, err := h.svc.OwnerMemories(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list owner memories"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) StreamMemories(c *gin.Context) {
	h.stream(c, "")
}

func (h *Handler) StreamOwner(c *gin.Context) {
	owner := c.Param("owner")
	if owner == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "owner required"})
		return
	}
	h.stream(c, owner)
}

// stream backfills the feed (latest window, or the owner's memories) and then
// forwards live memories until the client disconnects.
func (h *Handler) stream(c *gin.Context, owner string) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported", zap.String("owner", owner))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "streaming unsupported"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// Register before reading the backlog so nothing added in between is lost.
	client := &sse.Client{
		Owner: owner,
		Ch:    make(chan model.Memory, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	var (
		backlog []model.Memory
		err     error
	)
	if owner == "" {
		backlog, err = h.svc.Latest(c.Request.Context())
	} else {
		backlog, err = h.svc.OwnerMemories(c.Request.Context(), owner)
	}
	lastSeq := int64(-1)
	if err != nil {
		h.log.Error("stream backlog failed", zap.String("owner", owner), zap.Error(err))
	} else {
		for _, memory := range backlog {
			if err := writeMemory(c.Writer, memory); err != nil {
				h.log.Error("write backlog memory failed", zap.String("owner", owner), zap.Error(err))
				return
			}
			lastSeq = memory.Sequence
		}
	}
	flusher.Flush()

	interval := h.cfg.SSEHeartbeat
	if interval <= 0 {
		interval = 15 * time.Second
	}
	heartbeat := time.NewTicker(interval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Error("heartbeat write failed", zap.String("owner", owner), zap.Error(err))
				return
			}
			flusher.Flush()
		case memory, ok := <-client.Ch:
			if !ok {
				return
			}
			if memory.Sequence <= lastSeq {
				continue
			}
			if err := writeMemory(c.Writer, memory); err != nil {
				h.log.Error("write memory failed", zap.String("owner", owner), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeMemory(w http.ResponseWriter, memory model.Memory) error {
	payload, err := json.Marshal(memory)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: memory\ndata: %s\n\n", memory.Sequence, payload)
	return err
}
