package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrRecordNotFound is returned when (entity, key) has no record.
var ErrRecordNotFound = errors.New("gateway: record not found")

// Record is a stored gateway record.
type Record struct {
	ID         string          `json:"id"`
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
	RecordedAt time.Time       `json:"recordedAt"`
}

// IGateway defines the record operations used by repositories.
// Implementations are safe for concurrent use.
type IGateway interface {
	PutRecord(ctx context.Context, entity, key string, data json.RawMessage) error
	AppendRecord(ctx context.Context, entity, key string, data json.RawMessage) error
	GetRecord(ctx context.Context, entity, key string) (*Record, error)
	ListRecords(ctx context.Context, entity, key string, limit int) ([]Record, error)
	DeleteRecord(ctx context.Context, entity, key string) error
}
