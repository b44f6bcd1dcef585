package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"memory_mapping/internal/db"
	"memory_mapping/internal/domain"
	"memory_mapping/internal/model"
)

// AddMemory assigns the next sequence from memory_stats and updates the
// owner counters in the same transaction.
func (s *Store) AddMemory(ctx context.Context, memory model.Memory) (model.Memory, error) {
	if err := domain.Validate(memory); err != nil {
		return model.Memory{}, err
	}
	if memory.CreatedAt.IsZero() {
		memory.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		s.log.Error("sql begin failed", zap.Error(err))
		return model.Memory{}, err
	}
	defer func() { _ = tx.Rollback() }()
	q := s.queries.WithTx(tx)

	stats, err := q.LockMemoryStats(ctx)
	if err != nil {
		s.log.Error("sql lock memory stats failed", zap.Error(err))
		return model.Memory{}, fmt.Errorf("lock memory stats: %w", err)
	}
	memory.Sequence = stats.Memories

	if _, err := q.CreateMemory(ctx, db.CreateMemoryParams{
		Sequence:    memory.Sequence,
		MemoryID:    memory.MemoryID,
		Description: memory.Description,
		Price:       memory.Price,
		Owner:       memory.Owner,
		CreatedAt:   memory.CreatedAt,
	}); err != nil {
		s.log.Error("sql create memory failed",
			zap.String("memory_id", memory.MemoryID),
			zap.String("owner", memory.Owner),
			zap.Int64("sequence", memory.Sequence),
			zap.Error(err),
		)
		return model.Memory{}, fmt.Errorf("create memory: %w", err)
	}

	result, err := q.UpsertMemoryOwner(ctx, memory.Owner)
	if err != nil {
		s.log.Error("sql upsert memory owner failed", zap.String("owner", memory.Owner), zap.Error(err))
		return model.Memory{}, fmt.Errorf("upsert memory owner: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		s.log.Error("sql rows affected failed", zap.Error(err))
		return model.Memory{}, err
	}
	// ON DUPLICATE KEY UPDATE reports 1 for an insert and 2 for an update.
	var newOwners int64
	if affected == 1 {
		newOwners = 1
	}

	if err := q.IncrementMemoryStats(ctx, newOwners); err != nil {
		s.log.Error("sql increment memory stats failed", zap.Error(err))
		return model.Memory{}, fmt.Errorf("increment memory stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("sql commit failed", zap.Error(err))
		return model.Memory{}, err
	}
	return memory, nil
}

func (s *Store) CountMemories(ctx context.Context) (int64, error) {
	stats, err := s.queries.GetMemoryStats(ctx)
	if err != nil {
		s.log.Error("sql get memory stats failed", zap.Error(err))
		return 0, err
	}
	return stats.Memories, nil
}

func (s *Store) CountOwners(ctx context.Context) (int64, error) {
	stats, err := s.queries.GetMemoryStats(ctx)
	if err != nil {
		s.log.Error("sql get memory stats failed", zap.Error(err))
		return 0, err
	}
	return stats.Owners, nil
}

func (s *Store) LatestMemories(ctx context.Context) ([]model.Memory, error) {
	rows, err := s.queries.ListLatestMemories(ctx, int32(domain.LatestCapacity))
	if err != nil {
		s.log.Error("sql list latest memories failed", zap.Error(err))
		return nil, err
	}

	result := make([]model.Memory, len(rows))
	for i, row := range rows {
		result[len(rows)-1-i] = toModel(row)
	}
	return result, nil
}

func (s *Store) CountOwnerMemories(ctx context.Context, owner string) (int64, error) {
	count, err := s.queries.GetOwnerMemoryCount(ctx, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		s.log.Error("sql get owner memory count failed", zap.String("owner", owner), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *Store) ListOwnerMemories(ctx context.Context, owner string) ([]model.Memory, error) {
	rows, err := s.queries.ListOwnerMemories(ctx, owner)
	if err != nil {
		s.log.Error("sql list owner memories failed", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}

	result := make([]model.Memory, 0, len(rows))
	for _, row := range rows {
		result = append(result, toModel(row))
	}
	return result, nil
}

func toModel(row db.Memory) model.Memory {
	return model.Memory{
		Sequence:    row.Sequence,
		MemoryID:    row.MemoryID,
		Description: row.Description,
		Price:       row.Price,
		Owner:       row.Owner,
		CreatedAt:   row.CreatedAt,
	}
}
