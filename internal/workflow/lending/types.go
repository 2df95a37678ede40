package lending

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// Intent is the live slot-filling record for one lending conversation.
type Intent struct {
	Stage          workflow.Stage   `json:"stage"`
	Action         string           `json:"action,omitempty"`
	Network        string           `json:"network,omitempty"`
	Asset          string           `json:"asset,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Confirmed      bool             `json:"confirmed"`
	RequiresAction bool             `json:"requires_action"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
