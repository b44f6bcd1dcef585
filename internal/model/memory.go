package model

import "time"

type Memory struct {
	Sequence    int64     `json:"sequence"`
	MemoryID    string    `json:"memory_id"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}
