package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"memory_mapping/internal/config"
	httpserver "memory_mapping/internal/http"
	"memory_mapping/internal/http/controller"
	"memory_mapping/internal/http/middleware"
	"memory_mapping/internal/metrics"
	"memory_mapping/internal/model"
	"memory_mapping/internal/queue"
	"memory_mapping/internal/service/memories"
	"memory_mapping/internal/sse"
	"memory_mapping/internal/store/memory"
)

func ginTestMode() {
	gin.SetMode(gin.TestMode)
}

type noopPublisher struct{}

func (n *noopPublisher) Publish(context.Context, []byte, string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:     ":0",
		SSEHeartbeat: 5 * time.Second,
	}
}

// newTestServer wires the in-memory store behind the real router. The hub is
// stopped only after the server has drained its streams.
func newTestServer(t *testing.T, cfg *config.Config, publisher queue.Publisher) (*httptest.Server, *memories.Service) {
	t.Helper()
	ginTestMode()

	logger := zap.NewNop()
	repo := memory.New(logger)
	hub := sse.NewHub()
	m := metrics.New()
	svc := memories.NewService(repo, hub, m, logger)
	handler := controller.NewHandler(cfg, svc, hub, logger, publisher)
	router := httpserver.NewRouter(cfg, handler, m, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, svc
}

func postMemory(t *testing.T, baseURL, path, owner, memoryID string) *http.Response {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"memory_id":   memoryID,
		"description": "memory " + memoryID,
		"price":       "1 ETH",
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set(middleware.OwnerHeader, owner)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func addMemory(t *testing.T, baseURL, owner, memoryID string) model.Memory {
	t.Helper()

	resp := postMemory(t, baseURL, "/memories", owner, memoryID)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.Memory
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type sseEvent struct {
	id    string
	event string
	data  string
}

// sseReader parses a text/event-stream body on a single goroutine so that
// consecutive events are never lost between reads.
type sseReader struct {
	events chan sseEvent
	errs   chan error
}

func newSSEReader(body io.Reader) *sseReader {
	r := &sseReader{
		events: make(chan sseEvent, 64),
		errs:   make(chan error, 1),
	}
	go r.run(bufio.NewReader(body))
	return r
}

func (r *sseReader) run(reader *bufio.Reader) {
	var ev sseEvent
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			r.errs <- err
			return
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if ev.data != "" {
				r.events <- ev
			}
			ev = sseEvent{}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "id:"):
			ev.id = strings.TrimSpace(strings.TrimPrefix(line, "id:"))
		case strings.HasPrefix(line, "event:"):
			ev.event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			ev.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func (r *sseReader) next(timeout time.Duration) (sseEvent, error) {
	select {
	case ev := <-r.events:
		return ev, nil
	case err := <-r.errs:
		return sseEvent{}, err
	case <-time.After(timeout):
		return sseEvent{}, context.DeadlineExceeded
	}
}

func (r *sseReader) nextMemory(t *testing.T, timeout time.Duration) model.Memory {
	t.Helper()

	ev, err := r.next(timeout)
	require.NoError(t, err)
	require.Equal(t, "memory", ev.event)

	var got model.Memory
	require.NoError(t, json.Unmarshal([]byte(ev.data), &got))
	return got
}

func openStream(t *testing.T, url string) *sseReader {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	return newSSEReader(resp.Body)
}
