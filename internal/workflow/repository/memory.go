package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// MemoryRepository is the in-process store used in tests and as the
// demotion target when the remote gateway fails.
type MemoryRepository struct {
	mu        sync.RWMutex
	intents   map[string]json.RawMessage
	histories map[string][]workflow.HistoryEntry
}

var _ IRepository = (*MemoryRepository)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		intents:   make(map[string]json.RawMessage),
		histories: make(map[string][]workflow.HistoryEntry),
	}
}

func memoryKey(scope model.Scope, kind model.WorkflowKind) string {
	return fmt.Sprintf("%s:%s", kind, scope.Key())
}

func (r *MemoryRepository) SaveIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind, intent json.RawMessage) error {
	stored := make(json.RawMessage, len(intent))
	copy(stored, intent)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents[memoryKey(scope, kind)] = stored
	return nil
}

func (r *MemoryRepository) LoadIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind) (json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	intent, ok := r.intents[memoryKey(scope, kind)]
	if !ok {
		return nil, ErrIntentNotFound
	}

	out := make(json.RawMessage, len(intent))
	copy(out, intent)
	return out, nil
}

func (r *MemoryRepository) DeleteIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.intents, memoryKey(scope, kind))
	return nil
}

func (r *MemoryRepository) AppendHistory(ctx context.Context, scope model.Scope, kind model.WorkflowKind, entry workflow.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := memoryKey(scope, kind)
	entries := append([]workflow.HistoryEntry{entry}, r.histories[key]...)
	if len(entries) > workflow.HistoryLimit {
		entries = entries[:workflow.HistoryLimit]
	}
	r.histories[key] = entries
	return nil
}

func (r *MemoryRepository) ListHistory(ctx context.Context, scope model.Scope, kind model.WorkflowKind, limit int) ([]workflow.HistoryEntry, error) {
	if limit <= 0 || limit > workflow.HistoryLimit {
		limit = workflow.HistoryLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.histories[memoryKey(scope, kind)]
	if len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]workflow.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}
