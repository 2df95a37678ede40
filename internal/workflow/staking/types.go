package staking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// Intent is the live slot-filling record for one staking conversation.
// Venue and network are fixed (Lido on Ethereum mainnet); only the action
// and, when applicable, the amount are collected.
type Intent struct {
	Stage          workflow.Stage   `json:"stage"`
	Action         string           `json:"action,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Confirmed      bool             `json:"confirmed"`
	RequiresAction bool             `json:"requires_action"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
