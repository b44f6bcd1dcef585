package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"memory_mapping/internal/model"
)

func receive(t *testing.T, ch chan model.Memory) model.Memory {
	t.Helper()
	select {
	case got := <-ch:
		return got
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("expected memory on channel")
		return model.Memory{}
	}
}

func TestHubFeeds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	all := &Client{Ch: make(chan model.Memory, 4)}
	ownerA := &Client{Owner: "0xa", Ch: make(chan model.Memory, 4)}
	ownerB := &Client{Owner: "0xb", Ch: make(chan model.Memory, 4)}
	hub.Register(all)
	hub.Register(ownerA)
	hub.Register(ownerB)

	hub.Broadcast(model.Memory{Sequence: 0, MemoryID: "m1", Owner: "0xa"})

	require.Equal(t, "m1", receive(t, all.Ch).MemoryID)
	require.Equal(t, "m1", receive(t, ownerA.Ch).MemoryID)
	select {
	case got := <-ownerB.Ch:
		t.Fatalf("unexpected memory for other owner: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister(all)
	hub.Broadcast(model.Memory{Sequence: 1, MemoryID: "m2", Owner: "0xb"})
	require.Equal(t, "m2", receive(t, ownerB.Ch).MemoryID)
	select {
	case got := <-all.Ch:
		t.Fatalf("unexpected memory after unregister: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	slow := &Client{Ch: make(chan model.Memory, 1)}
	marker := &Client{Owner: "0xsync", Ch: make(chan model.Memory, 1)}
	hub.Register(slow)
	hub.Register(marker)

	hub.Broadcast(model.Memory{MemoryID: "m1", Owner: "0xa"})
	hub.Broadcast(model.Memory{MemoryID: "m2", Owner: "0xa"})
	// Broadcasts are handled in order, so the sentinel arrives after m2 was dropped.
	hub.Broadcast(model.Memory{MemoryID: "sentinel", Owner: "0xsync"})
	require.Equal(t, "sentinel", receive(t, marker.Ch).MemoryID)

	require.Equal(t, "m1", receive(t, slow.Ch).MemoryID)
	select {
	case got := <-slow.Ch:
		t.Fatalf("expected later memories to be dropped, got %+v", got)
	default:
	}
}

func TestHubCallsReturnAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := &Client{Ch: make(chan model.Memory, 1)}
	hub.Register(client)
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		hub.Unregister(client)
		for i := 0; i < 100; i++ {
			hub.Broadcast(model.Memory{MemoryID: "late"})
		}
		hub.Register(&Client{Ch: make(chan model.Memory, 1)})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub calls blocked after Run returned")
	}
}
