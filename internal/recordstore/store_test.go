package recordstore

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"memory_mapping/internal/domain"
	"memory_mapping/internal/model"
)

const (
	uploader1 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	uploader2 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func addN(t *testing.T, s *Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		owner := uploader1
		if i%2 == 1 {
			owner = uploader2
		}
		_, err := s.Add(model.Memory{
			MemoryID:    fmt.Sprintf("testMemoryId%d", i+1),
			Description: fmt.Sprintf("testDescription%d", i+1),
			Price:       fmt.Sprintf("%d ETH", i),
			Owner:       owner,
		})
		require.NoError(t, err)
	}
}

func TestStoreAdd(t *testing.T) {
	t.Run("assigns sequences", func(t *testing.T) {
		s := New()
		first, err := s.Add(model.Memory{MemoryID: "a", Owner: uploader1})
		require.NoError(t, err)
		second, err := s.Add(model.Memory{MemoryID: "b", Owner: uploader1})
		require.NoError(t, err)

		require.Equal(t, int64(0), first.Sequence)
		require.Equal(t, int64(1), second.Sequence)
		require.False(t, first.CreatedAt.IsZero())
	})

	t.Run("keeps created at", func(t *testing.T) {
		s := New()
		at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		created, err := s.Add(model.Memory{MemoryID: "a", Owner: uploader1, CreatedAt: at})
		require.NoError(t, err)
		require.Equal(t, at, created.CreatedAt)
	})

	t.Run("invalid input does not mutate", func(t *testing.T) {
		s := New()
		addN(t, s, 3)

		_, err := s.Add(model.Memory{Owner: uploader1})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = s.Add(model.Memory{MemoryID: "x"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = s.Add(model.Memory{MemoryID: "x", Owner: "0x\xff"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)

		require.Equal(t, 3, s.Len())
		require.Equal(t, 2, s.Owners())
		require.Len(t, s.Latest(), 3)
		require.Equal(t, 2, s.OwnerLen(uploader1))
		require.Equal(t, 0, s.OwnerLen(""))
	})

	t.Run("price and description are opaque", func(t *testing.T) {
		s := New()
		created, err := s.Add(model.Memory{MemoryID: "m", Description: "", Price: "free?", Owner: uploader1})
		require.NoError(t, err)
		require.Equal(t, "free?", created.Price)
	})
}

func TestStoreMemoriesAmount(t *testing.T) {
	s := New()
	require.Equal(t, 0, s.Len())

	_, err := s.Add(model.Memory{MemoryID: "testMemory1", Description: "testArweave1", Price: "0 ETH", Owner: uploader1})
	require.NoError(t, err)
	_, err = s.Add(model.Memory{MemoryID: "testMemory2", Description: "testArweave2", Price: "1 ETH", Owner: uploader2})
	require.NoError(t, err)

	require.Equal(t, 2, s.Len())
	require.Equal(t, 2, s.Owners())
}

func TestStoreLatest(t *testing.T) {
	t.Run("below capacity", func(t *testing.T) {
		s := New()
		require.Empty(t, s.Latest())

		addN(t, s, 2)
		latest := s.Latest()
		require.Len(t, latest, 2)
		require.Equal(t, "testMemoryId1", latest[0].MemoryID)
		require.Equal(t, "0 ETH", latest[0].Price)
		require.Equal(t, "testDescription1", latest[0].Description)
		require.Equal(t, uploader1, latest[0].Owner)
		require.Equal(t, "testMemoryId2", latest[1].MemoryID)
		require.Equal(t, "1 ETH", latest[1].Price)
		require.Equal(t, uploader2, latest[1].Owner)
	})

	t.Run("overwrites after capacity", func(t *testing.T) {
		s := New()
		addN(t, s, 33)

		require.Equal(t, 2, s.Owners())
		require.Equal(t, 33, s.Len())

		latest := s.Latest()
		require.Len(t, latest, domain.LatestCapacity)
		require.Equal(t, "testMemoryId4", latest[0].MemoryID)
		require.Equal(t, "testMemoryId31", latest[27].MemoryID)
		require.Equal(t, "30 ETH", latest[27].Price)
		require.Equal(t, "testDescription31", latest[27].Description)
		require.Equal(t, "testMemoryId32", latest[28].MemoryID)
		require.Equal(t, "testMemoryId33", latest[29].MemoryID)
		require.Equal(t, "32 ETH", latest[29].Price)
	})

	t.Run("window holds last sequences in order", func(t *testing.T) {
		for _, n := range []int{1, 29, 30, 31, 59, 60, 61, 100} {
			s := New()
			addN(t, s, n)

			latest := s.Latest()
			want := n
			if want > domain.LatestCapacity {
				want = domain.LatestCapacity
			}
			require.Len(t, latest, want, "n=%d", n)
			for i, m := range latest {
				require.Equal(t, int64(n-want+i), m.Sequence, "n=%d i=%d", n, i)
			}
		}
	})

	t.Run("snapshot is detached", func(t *testing.T) {
		s := New()
		addN(t, s, 30)
		before := s.Latest()
		first := before[0]

		addN(t, s, 5)
		require.Equal(t, first, before[0])
		require.NotEqual(t, first.Sequence, s.Latest()[0].Sequence)
	})
}

func TestStoreOwnerIndex(t *testing.T) {
	t.Run("per owner counts and records", func(t *testing.T) {
		s := New()

		_, err := s.Add(model.Memory{MemoryID: "testMemoryId1", Description: "testDescription1", Price: "0 ETH", Owner: uploader1})
		require.NoError(t, err)
		require.Equal(t, 1, s.Owners())

		_, err = s.Add(model.Memory{MemoryID: "testMemoryId2", Description: "testDescription2", Price: "1 ETH", Owner: uploader2})
		require.NoError(t, err)
		_, err = s.Add(model.Memory{MemoryID: "testMemoryId3", Description: "testDescription3", Price: "2 ETH", Owner: uploader2})
		require.NoError(t, err)
		require.Equal(t, 2, s.Owners())

		require.Equal(t, 1, s.OwnerLen(uploader1))
		require.Equal(t, 2, s.OwnerLen(uploader2))

		first := s.OwnerRecords(uploader1)
		require.Len(t, first, 1)
		require.Equal(t, "testMemoryId1", first[0].MemoryID)
		require.Equal(t, "0 ETH", first[0].Price)

		second := s.OwnerRecords(uploader2)
		require.Len(t, second, 2)
		require.Equal(t, "testMemoryId2", second[0].MemoryID)
		require.Equal(t, "1 ETH", second[0].Price)
		require.Equal(t, "testMemoryId3", second[1].MemoryID)
		require.Equal(t, "testDescription3", second[1].Description)
	})

	t.Run("unknown owner", func(t *testing.T) {
		s := New()
		addN(t, s, 4)

		records := s.OwnerRecords("0xdead")
		require.NotNil(t, records)
		require.Empty(t, records)
		require.Equal(t, 0, s.OwnerLen("0xdead"))
	})

	t.Run("identity is exact", func(t *testing.T) {
		s := New()
		_, err := s.Add(model.Memory{MemoryID: "a", Owner: "0xABC"})
		require.NoError(t, err)
		_, err = s.Add(model.Memory{MemoryID: "b", Owner: "0xabc"})
		require.NoError(t, err)

		require.Equal(t, 2, s.Owners())
		require.Equal(t, 1, s.OwnerLen("0xABC"))
	})

	t.Run("index survives window eviction", func(t *testing.T) {
		s := New()
		addN(t, s, 70)

		records := s.OwnerRecords(uploader1)
		require.Len(t, records, 35)
		for i, m := range records {
			require.Equal(t, int64(i*2), m.Sequence)
			require.Equal(t, uploader1, m.Owner)
		}
	})
}

func TestStoreGet(t *testing.T) {
	s := New()
	addN(t, s, 3)

	got, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "testMemoryId2", got.MemoryID)

	_, ok = s.Get(3)
	require.False(t, ok)
	_, ok = s.Get(-1)
	require.False(t, ok)
}

func TestStoreReadsAreRepeatable(t *testing.T) {
	s := New()
	addN(t, s, 41)

	require.Equal(t, s.Latest(), s.Latest())
	require.Equal(t, s.OwnerRecords(uploader2), s.OwnerRecords(uploader2))
	require.Equal(t, s.Len(), s.Len())
	require.Equal(t, s.Owners(), s.Owners())
}
