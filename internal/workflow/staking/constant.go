package staking

const (
	FieldAction = "action"
	FieldAmount = "amount"
)

const (
	ActionStake   = "stake"
	ActionUnstake = "unstake"
	ActionClaim   = "claim"
)

var actions = []string{ActionStake, ActionUnstake, ActionClaim}

var actionSynonyms = map[string]string{
	"restake": ActionStake,
}

var questions = map[string]string{
	FieldAction: "Would you like to stake, unstake or claim rewards?",
	FieldAmount: "How much?",
}
