package memories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"memory_mapping/internal/domain"
	"memory_mapping/internal/metrics"
	"memory_mapping/internal/model"
	"memory_mapping/internal/repository"
	"memory_mapping/internal/sse"
)

type Service struct {
	store   repository.MemoryRepository
	hub     *sse.Hub
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewService(store repository.MemoryRepository, hub *sse.Hub, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{store: store, hub: hub, metrics: m, log: logger}
}

func (s *Service) Add(ctx context.Context, memory model.Memory) (model.Memory, error) {
	if err := domain.Validate(memory); err != nil {
		s.metrics.MemoryRejected()
		return model.Memory{}, err
	}
	created, err := s.store.AddMemory(ctx, memory)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.metrics.MemoryRejected()
			return model.Memory{}, err
		}
		s.log.Error("store add memory failed",
			zap.String("memory_id", memory.MemoryID),
			zap.String("owner", memory.Owner),
			zap.Error(err),
		)
		return model.Memory{}, err
	}

	s.metrics.MemoryAdded(created.Sequence + 1)
	if owners, err := s.store.CountOwners(ctx); err != nil {
		s.log.Warn("store count owners failed", zap.Error(err))
	} else {
		s.metrics.SetOwners(owners)
	}
	s.hub.Broadcast(created)
	return created, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.store.CountMemories(ctx)
	if err != nil {
		s.log.Error("store count memories failed", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *Service) Owners(ctx context.Context) (int64, error) {
	count, err := s.store.CountOwners(ctx)
	if err != nil {
		s.log.Error("store count owners failed", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *Service) Latest(ctx context.Context) ([]model.Memory, error) {
	latest, err := s.store.LatestMemories(ctx)
	if err != nil {
		s.log.Error("store latest memories failed", zap.Error(err))
		return nil, err
	}
	return latest, nil
}

func (s *Service) OwnerCount(ctx context.Context, owner string) (int64, error) {
	count, err := s.store.CountOwnerMemories(ctx, owner)
	if err != nil {
		s.log.Error("store count owner memories failed", zap.String("owner", owner), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *Service) OwnerMemories(ctx context.Context, owner string) ([]model.Memory, error) {
	list, err := s.store.ListOwnerMemories(ctx, owner)
	if err != nil {
		s.log.Error("store list owner memories failed", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}
	return list, nil
}
