package extract

import "github.com/shopspring/decimal"

// Hint narrows which pattern table runs first.
type Hint string

const (
	HintNone    Hint = ""
	HintSwap    Hint = "swap"
	HintLending Hint = "lending"
	HintStaking Hint = "staking"
	HintDCA     Hint = "dca"
)

// Params is the sparse record of fields found in raw text.
// Absence of a field is never an error, only missing information.
type Params struct {
	Amount      *decimal.Decimal
	FromToken   string
	ToToken     string
	FromNetwork string
	ToNetwork   string
	Action      string
}

// IsEmpty reports whether no field was extracted.
func (p Params) IsEmpty() bool {
	return p.Amount == nil &&
		p.FromToken == "" &&
		p.ToToken == "" &&
		p.FromNetwork == "" &&
		p.ToNetwork == "" &&
		p.Action == ""
}
