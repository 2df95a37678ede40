package dca

// Field names grouped by the stage that asks for them.
const (
	FieldStrategy   = "strategy_id"
	FieldFromToken  = "from_token"
	FieldToToken    = "to_token"
	FieldCadence    = "cadence"
	FieldStartOn    = "start_on"
	FieldIterations = "iterations"
	FieldAmount     = "amount"
	FieldVenue      = "venue"
	FieldSlippage   = "slippage_bps"
	FieldConfirm    = "confirmation"
)

// DefaultSlippageBps is applied when the chosen strategy does not override it.
const DefaultSlippageBps = 50

var questions = map[string]string{
	FieldFromToken:  "Which token will you spend on each purchase?",
	FieldToToken:    "Which token do you want to accumulate?",
	FieldCadence:    "How often should I buy: daily, weekly, biweekly or monthly?",
	FieldStartOn:    "When should the plan start? (e.g. tomorrow, next monday, 2026-09-15)",
	FieldIterations: "How many purchases should the plan run for?",
	FieldAmount:     "How much should each purchase spend?",
	FieldVenue:      "Which venue should execute the purchases?",
	FieldConfirm:    "Shall I lock this plan in? (yes/no)",
}

// spendTokens are the suggested budget tokens for recurring purchases.
var spendTokens = []string{"USDC", "USDT", "DAI"}

var confirmWords = []string{"yes", "confirm", "confirmed", "sim", "confirmo", "go ahead", "lock it in", "sounds good"}

var denyWords = []string{"no", "não", "nao", "change", "not yet", "wait"}
