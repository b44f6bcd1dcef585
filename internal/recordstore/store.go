package recordstore

import (
	"time"

	"memory_mapping/internal/domain"
	"memory_mapping/internal/model"
)

type Store struct {
	log    []model.Memory
	latest *window
	owners *ownerIndex
	now    func() time.Time
}

func New() *Store {
	return &Store{
		latest: newWindow(domain.LatestCapacity),
		owners: newOwnerIndex(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Add appends memory to the log and updates the latest window and the owner
// index. Invalid input leaves the store untouched.
func (s *Store) Add(memory model.Memory) (model.Memory, error) {
	if err := domain.Validate(memory); err != nil {
		return model.Memory{}, err
	}
	memory.Sequence = int64(len(s.log))
	if memory.CreatedAt.IsZero() {
		memory.CreatedAt = s.now()
	}

	s.log = append(s.log, memory)
	s.latest.push(memory)
	s.owners.append(memory.Owner, memory.Sequence)
	return memory, nil
}

func (s *Store) Len() int {
	return len(s.log)
}

// Owners returns the number of distinct owners with at least one memory.
func (s *Store) Owners() int {
	return s.owners.owners
}

// Latest returns a copy of the latest window, oldest first.
func (s *Store) Latest() []model.Memory {
	return s.latest.snapshot()
}

func (s *Store) Get(sequence int64) (model.Memory, bool) {
	if sequence < 0 || sequence >= int64(len(s.log)) {
		return model.Memory{}, false
	}
	return s.log[sequence], true
}

func (s *Store) OwnerLen(owner string) int {
	return s.owners.count(owner)
}

// OwnerRecords resolves the owner's index against the log. Unknown owners
// yield an empty slice.
func (s *Store) OwnerRecords(owner string) []model.Memory {
	sequences := s.owners.lookup(owner)
	result := make([]model.Memory, 0, len(sequences))
	for _, seq := range sequences {
		result = append(result, s.log[seq])
	}
	return result
}
