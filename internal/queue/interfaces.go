package queue

import "context"

type Consumer interface {
	Start(ctx context.Context) error
}

type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}

// MemoryMessage is the wire form of a memory submitted through the queue.
type MemoryMessage struct {
	MemoryID    string `json:"memory_id"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Owner       string `json:"owner"`
}
