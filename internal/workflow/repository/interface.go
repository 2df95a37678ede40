package repository

import (
	"context"
	"encoding/json"

	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// IRepository persists workflow intents and bounded history per
// (user, conversation, kind). Implementations are safe for concurrent use.
type IRepository interface {
	SaveIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind, intent json.RawMessage) error
	LoadIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind) (json.RawMessage, error)
	DeleteIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind) error
	AppendHistory(ctx context.Context, scope model.Scope, kind model.WorkflowKind, entry workflow.HistoryEntry) error
	ListHistory(ctx context.Context, scope model.Scope, kind model.WorkflowKind, limit int) ([]workflow.HistoryEntry, error)
}
