package router

import "github.com/Panorama-Block/zico-agents-sub000/internal/model"

// Category is a coarse topic used to pick a handler.
type Category string

const (
	CategorySwap       Category = "swap"
	CategoryLending    Category = "lending"
	CategoryStaking    Category = "staking"
	CategoryDCA        Category = "dca"
	CategoryMarketData Category = "market_data"
	CategoryPortfolio  Category = "portfolio"
	CategoryEducation  Category = "education"
	CategorySearch     Category = "search"
	CategoryGeneral    Category = "general"
)

// RouteDecision is produced once per turn and never persisted.
type RouteDecision struct {
	IntentCategory    Category
	Confidence        float64
	TargetHandler     string
	NeedsConfirmation bool
}

// State carries the already-computed per-turn fields the decision engine
// evaluates. It is assembled by the pipeline, never by handlers.
type State struct {
	Text            string
	PreflightErrors []string

	// ActiveKind is set when a workflow has a live intent in a
	// non-terminal, non-initial stage.
	ActiveKind model.WorkflowKind

	// AwaitingKind is set when the previous turn left a workflow
	// waiting for an explicit user confirmation.
	AwaitingKind model.WorkflowKind

	Category   Category
	Confidence float64
}
