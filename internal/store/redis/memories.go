package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"memory_mapping/internal/domain"
	"memory_mapping/internal/model"
)

// KEYS: log, latest, owner index, owners set.
// ARGV: encoded memory, window capacity, owner.
var addScript = goredis.NewScript(`
local seq = redis.call('RPUSH', KEYS[1], ARGV[1]) - 1
redis.call('RPUSH', KEYS[2], seq)
redis.call('LTRIM', KEYS[2], -tonumber(ARGV[2]), -1)
redis.call('RPUSH', KEYS[3], seq)
redis.call('SADD', KEYS[4], ARGV[3])
return seq
`)

type storedMemory struct {
	MemoryID    string    `json:"memory_id"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Store) AddMemory(ctx context.Context, memory model.Memory) (model.Memory, error) {
	if err := domain.Validate(memory); err != nil {
		return model.Memory{}, err
	}
	if memory.CreatedAt.IsZero() {
		memory.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(storedMemory{
		MemoryID:    memory.MemoryID,
		Description: memory.Description,
		Price:       memory.Price,
		Owner:       memory.Owner,
		CreatedAt:   memory.CreatedAt,
	})
	if err != nil {
		return model.Memory{}, err
	}

	keys := []string{s.logKey, s.latestKey, s.ownerKey(memory.Owner), s.ownersKey}
	seq, err := addScript.Run(ctx, s.client, keys, payload, domain.LatestCapacity, memory.Owner).Int64()
	if err != nil {
		s.log.Error("redis add memory failed",
			zap.String("memory_id", memory.MemoryID),
			zap.String("owner", memory.Owner),
			zap.Error(err),
		)
		return model.Memory{}, fmt.Errorf("redis add memory: %w", err)
	}
	memory.Sequence = seq
	return memory, nil
}

func (s *Store) CountMemories(ctx context.Context) (int64, error) {
	n, err := s.client.LLen(ctx, s.logKey).Result()
	if err != nil {
		s.log.Error("redis count memories failed", zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (s *Store) CountOwners(ctx context.Context) (int64, error) {
	n, err := s.client.SCard(ctx, s.ownersKey).Result()
	if err != nil {
		s.log.Error("redis count owners failed", zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (s *Store) LatestMemories(ctx context.Context) ([]model.Memory, error) {
	sequences, err := s.client.LRange(ctx, s.latestKey, 0, -1).Result()
	if err != nil {
		s.log.Error("redis list latest failed", zap.Error(err))
		return nil, err
	}
	return s.resolve(ctx, sequences)
}

func (s *Store) CountOwnerMemories(ctx context.Context, owner string) (int64, error) {
	n, err := s.client.LLen(ctx, s.ownerKey(owner)).Result()
	if err != nil {
		s.log.Error("redis count owner memories failed", zap.String("owner", owner), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (s *Store) ListOwnerMemories(ctx context.Context, owner string) ([]model.Memory, error) {
	sequences, err := s.client.LRange(ctx, s.ownerKey(owner), 0, -1).Result()
	if err != nil {
		s.log.Error("redis list owner memories failed", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}
	return s.resolve(ctx, sequences)
}

// resolve looks up each sequence in the log with one pipelined round trip.
func (s *Store) resolve(ctx context.Context, sequences []string) ([]model.Memory, error) {
	result := make([]model.Memory, 0, len(sequences))
	if len(sequences) == 0 {
		return result, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*goredis.StringCmd, len(sequences))
	indexes := make([]int64, len(sequences))
	for i, raw := range sequences {
		seq, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis corrupt sequence %q: %w", raw, err)
		}
		indexes[i] = seq
		cmds[i] = pipe.LIndex(ctx, s.logKey, seq)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error("redis resolve memories failed", zap.Int("count", len(sequences)), zap.Error(err))
		return nil, err
	}

	for i, cmd := range cmds {
		var stored storedMemory
		if err := json.Unmarshal([]byte(cmd.Val()), &stored); err != nil {
			return nil, fmt.Errorf("redis decode memory %d: %w", indexes[i], err)
		}
		result = append(result, model.Memory{
			Sequence:    indexes[i],
			MemoryID:    stored.MemoryID,
			Description: stored.Description,
			Price:       stored.Price,
			Owner:       stored.Owner,
			CreatedAt:   stored.CreatedAt,
		})
	}
	return result, nil
}
