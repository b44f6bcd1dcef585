package repository

import (
	"context"

	"memory_mapping/internal/model"
)

type MemoryRepository interface {
	AddMemory(ctx context.Context, memory model.Memory) (model.Memory, error)
	CountMemories(ctx context.Context) (int64, error)
	CountOwners(ctx context.Context) (int64, error)
	LatestMemories(ctx context.Context) ([]model.Memory, error)
	CountOwnerMemories(ctx context.Context, owner string) (int64, error)
	ListOwnerMemories(ctx context.Context, owner string) ([]model.Memory, error)
}
