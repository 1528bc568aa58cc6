package repository

import (
	"context"
	"sync"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
)

// MemoryHistory keeps the most recent movers in a fixed ring.
type MemoryHistory struct {
	mu   sync.Mutex
	buf  []models.MoverRecord
	next int
	size int
}

func NewMemoryHistory(capacity int) repository.MoverHistory {
	if capacity <= 0 {
		capacity = 50
	}
	return &MemoryHistory{buf: make([]models.MoverRecord, capacity)}
}

func (h *MemoryHistory) Append(_ context.Context, rec models.MoverRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.next] = rec
	h.next = (h.next + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
	return nil
}

func (h *MemoryHistory) Recent(_ context.Context, limit int) ([]models.MoverRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit <= 0 || limit > h.size {
		limit = h.size
	}
	out := make([]models.MoverRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		out = append(out, h.buf[(h.next-i+len(h.buf))%len(h.buf)])
	}
	return out, nil
}
