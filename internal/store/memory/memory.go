package memory

import (
	"sync"

	"go.uber.org/zap"
	"memory_mapping/internal/recordstore"
)

type Store struct {
	mu      sync.Mutex
	records *recordstore.Store
	log     *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{records: recordstore.New(), log: logger}
}
