package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// FallbackRepository demotes from the remote store to an in-memory one on
// the first remote failure, for the remainder of the process lifetime.
// The demotion is logged exactly once. Expected conditions such as
// ErrIntentNotFound never trigger demotion.
type FallbackRepository struct {
	remote  IRepository
	local   IRepository
	logger  log.Logger
	demoted atomic.Bool
	logOnce sync.Once
}

var _ IRepository = (*FallbackRepository)(nil)

// NewFallback wraps remote with a local demotion target.
func NewFallback(remote, local IRepository, logger log.Logger) *FallbackRepository {
	return &FallbackRepository{
		remote: remote,
		local:  local,
		logger: logger,
	}
}

// Demoted reports whether the repository has switched to local storage.
func (r *FallbackRepository) Demoted() bool {
	return r.demoted.Load()
}

func (r *FallbackRepository) demote(ctx context.Context, err error) {
	r.demoted.Store(true)
	r.logOnce.Do(func() {
		r.logger.Warn(ctx, "workflow store demoted to in-memory for process lifetime",
			"error", err.Error(),
		)
	})
}

func (r *FallbackRepository) SaveIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind, intent json.RawMessage) error {
	if !r.demoted.Load() {
		err := r.remote.SaveIntent(ctx, scope, kind, intent)
		if err == nil {
			return nil
		}
		r.demote(ctx, err)
	}
	return r.local.SaveIntent(ctx, scope, kind, intent)
}

func (r *FallbackRepository) LoadIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind) (json.RawMessage, error) {
	if !r.demoted.Load() {
		intent, err := r.remote.LoadIntent(ctx, scope, kind)
		if err == nil || errors.Is(err, ErrIntentNotFound) {
			return intent, err
		}
		r.demote(ctx, err)
	}
	return r.local.LoadIntent(ctx, scope, kind)
}

func (r *FallbackRepository) DeleteIntent(ctx context.Context, scope model.Scope, kind model.WorkflowKind) error {
	if !r.demoted.Load() {
		err := r.remote.DeleteIntent(ctx, scope, kind)
		if err == nil {
			return nil
		}
		r.demote(ctx, err)
	}
	return r.local.DeleteIntent(ctx, scope, kind)
}

func (r *FallbackRepository) AppendHistory(ctx context.Context, scope model.Scope, kind model.WorkflowKind, entry workflow.HistoryEntry) error {
	if !r.demoted.Load() {
		err := r.remote.AppendHistory(ctx, scope, kind, entry)
		if err == nil {
			return nil
		}
		r.demote(ctx, err)
	}
	return r.local.AppendHistory(ctx, scope, kind, entry)
}

func (r *FallbackRepository) ListHistory(ctx context.Context, scope model.Scope, kind model.WorkflowKind, limit int) ([]workflow.HistoryEntry, error) {
	if !r.demoted.Load() {
		entries, err := r.remote.ListHistory(ctx, scope, kind, limit)
		if err == nil {
			return entries, nil
		}
		r.demote(ctx, err)
	}
	return r.local.ListHistory(ctx, scope, kind, limit)
}
