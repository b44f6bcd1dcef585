package memory

import (
	"context"

	"go.uber.org/zap"
	"memory_mapping/internal/model"
)

func (s *Store) AddMemory(_ context.Context, memory model.Memory) (model.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created, err := s.records.Add(memory)
	if err != nil {
		s.log.Warn("memory rejected",
			zap.String("memory_id", memory.MemoryID),
			zap.String("owner", memory.Owner),
			zap.Error(err),
		)
		return model.Memory{}, err
	}
	return created, nil
}

func (s *Store) CountMemories(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.records.Len()), nil
}

func (s *Store) CountOwners(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.records.Owners()), nil
}

func (s *Store) LatestMemories(_ context.Context) ([]model.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Latest(), nil
}

func (s *Store) CountOwnerMemories(_ context.Context, owner string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.records.OwnerLen(owner)), nil
}

func (s *Store) ListOwnerMemories(_ context.Context, owner string) ([]model.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.OwnerRecords(owner), nil
}
