package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/gateway"
)

// GatewayRepository stores intents and history in the remote data gateway.
// Sessions live in "<kind>-sessions", history in "<kind>-histories", both
// keyed by "userId:conversationId".
type GatewayRepository struct {
	gw gateway.IGateway
}

var _ IRepository = (*GatewayRepository)(nil)

// NewGateway creates a gateway-backed repository.
func NewGateway(gw gateway.IGateway) *GatewayRepository {
	return &GatewayRepository{gw: gw}
}

func sessionsEntity(kind model.WorkflowKind) string {
	return fmt.Sprintf("%s-sessions", kind)
}

func historiesEntity(kind model.WorkflowKind) string {
	return fmt.Sprintf("%s-histories", kind)
}

func (r *GatewayRepository) SaveIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind, intent json.RawMessage) error {
	if err := r.gw.PutRecord(ctx, sessionsEntity(kind), scope.Key(), intent); err != nil {
		return fmt.Errorf("saving %s intent: %w", kind, err)
	}
	return nil
}

func (r *GatewayRepository) LoadIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind) (json.RawMessage, error) {
	record, err := r.gw.GetRecord(ctx, sessionsEntity(kind), scope.Key())
	if err != nil {
		if errors.Is(err, gateway.ErrRecordNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("loading %s intent: %w", kind, err)
	}
	return record.Data, nil
}

func (r *GatewayRepository) DeleteIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind) error {
	if err := r.gw.DeleteRecord(ctx, sessionsEntity(kind), scope.Key()); err != nil {
		return fmt.Errorf("deleting %s intent: %w", kind, err)
	}
	return nil
}

func (r *GatewayRepository) AppendHistory(ctx context.Context, scope model.Scope, kind model.WorkflowKind, entry workflow.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling %s history entry: %w", kind, err)
	}
	if err := r.gw.AppendRecord(ctx, historiesEntity(kind), scope.Key(), data); err != nil {
		return fmt.Errorf("appending %s history: %w", kind, err)
	}
	return nil
}

func (r *GatewayRepository) ListHistory(ctx context.Context, scope model.Scope, kind model.WorkflowKind, limit int) ([]workflow.HistoryEntry, error) {
	if limit <= 0 {
		limit = workflow.HistoryLimit
	}

	records, err := r.gw.ListRecords(ctx, historiesEntity(kind), scope.Key(), limit)
	if err != nil {
		return nil, fmt.Errorf("listing %s history: %w", kind, err)
	}

	entries := make([]workflow.HistoryEntry, 0, len(records))
	for _, record := range records {
		var entry workflow.HistoryEntry
		if err := json.Unmarshal(record.Data, &entry); err != nil {
			return nil, fmt.Errorf("decoding %s history entry: %w", kind, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
