package dca

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// Intent is the live record for one recurring-purchase conversation. It
// walks consulting -> recommending -> confirming -> ready.
type Intent struct {
	Stage          workflow.Stage   `json:"stage"`
	StrategyID     string           `json:"strategy_id,omitempty"`
	FromToken      string           `json:"from_token,omitempty"`
	ToToken        string           `json:"to_token,omitempty"`
	Cadence        string           `json:"cadence,omitempty"`
	StartOn        string           `json:"start_on,omitempty"`
	Iterations     int              `json:"iterations,omitempty"`
	PerCycleAmount *decimal.Decimal `json:"per_cycle_amount,omitempty"`
	Venue          string           `json:"venue,omitempty"`
	SlippageBps    int              `json:"slippage_bps,omitempty"`
	Confirmed      bool             `json:"confirmed"`
	RequiresAction bool             `json:"requires_action"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// AdvanceStage moves the intent to target. Same-stage moves are no-ops,
// ready is rejected until the user confirmed, and backward movement is
// allowed so earlier answers can be revised.
func (i *Intent) AdvanceStage(target workflow.Stage) error {
	if target == i.Stage {
		return nil
	}
	if workflow.StageRank(model.KindDCA, target) < 0 {
		return fmt.Errorf("stage %q does not belong to the recurring-purchase workflow", target)
	}
	if target == workflow.StageReady && !i.Confirmed {
		return fmt.Errorf("cannot reach ready without explicit confirmation")
	}
	i.Stage = target
	return nil
}

// Strategy is a curated recurring-purchase template.
type Strategy struct {
	ID          string
	Name        string
	Description string
	Venue       string
	Cadence     string
	SlippageBps int
}
