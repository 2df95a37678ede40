// Package workflow holds the shared vocabulary of the slot-filling
// workflows: stages, the structured per-turn result, and history entries.
package workflow

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
)

// Stage is a named point in a workflow's progress.
type Stage string

const (
	StageCollecting   Stage = "collecting"
	StageConsulting   Stage = "consulting"
	StageRecommending Stage = "recommending"
	StageConfirming   Stage = "confirming"
	StageReady        Stage = "ready"
)

// StagesFor returns the ordered stage sequence for a kind. Simple kinds
// collect then complete; the recurring-purchase kind walks a longer path.
func StagesFor(kind model.WorkflowKind) []Stage {
	if kind == model.KindDCA {
		return []Stage{StageConsulting, StageRecommending, StageConfirming, StageReady}
	}
	return []Stage{StageCollecting, StageReady}
}

// StageRank returns the position of s in the kind's stage order, or -1
// when s does not belong to the kind.
func StageRank(kind model.WorkflowKind, s Stage) int {
	for i, stage := range StagesFor(kind) {
		if stage == s {
			return i
		}
	}
	return -1
}

// PendingEvent names the structured result event while fields are missing.
func PendingEvent(kind model.WorkflowKind) string {
	return fmt.Sprintf("%s_intent_pending", kind)
}

// ReadyEvent names the structured result event when the intent completes.
func ReadyEvent(kind model.WorkflowKind) string {
	return fmt.Sprintf("%s_intent_ready", kind)
}

// Result is the JSON-serializable outcome of one workflow turn. Key names
// are stable; external callers depend on them.
type Result struct {
	Event           string                 `json:"event"`
	Stage           Stage                  `json:"stage"`
	MissingFields   []string               `json:"missing_fields"`
	NextField       string                 `json:"next_field,omitempty"`
	PendingQuestion string                 `json:"pending_question,omitempty"`
	Choices         []string               `json:"choices,omitempty"`
	Error           string                 `json:"error,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	Intent          interface{}            `json:"intent,omitempty"`
	History         []HistoryEntry         `json:"history,omitempty"`
}

// History status values.
const (
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// HistoryLimit bounds stored history entries per conversation and kind.
const HistoryLimit = 10

// HistoryEntry is an immutable snapshot appended when a workflow reaches
// its terminal stage or is abandoned.
type HistoryEntry struct {
	Status    string             `json:"status"`
	Kind      model.WorkflowKind `json:"kind"`
	Fields    json.RawMessage    `json:"fields,omitempty"`
	Error     string             `json:"error,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}
