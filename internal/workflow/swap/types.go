package swap

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// Intent is the live slot-filling record for one swap conversation.
type Intent struct {
	Stage          workflow.Stage   `json:"stage"`
	FromNetwork    string           `json:"from_network,omitempty"`
	FromToken      string           `json:"from_token,omitempty"`
	ToNetwork      string           `json:"to_network,omitempty"`
	ToToken        string           `json:"to_token,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Confirmed      bool             `json:"confirmed"`
	RequiresAction bool             `json:"requires_action"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
