package lending

// Field names in the order they are asked for.
const (
	FieldAction  = "action"
	FieldNetwork = "network"
	FieldAsset   = "asset"
	FieldAmount  = "amount"
)

var actions = []string{"supply", "withdraw", "borrow", "repay"}

// actionSynonyms folds common verbs into the canonical vocabulary.
var actionSynonyms = map[string]string{
	"deposit": "supply",
	"lend":    "supply",
}

var questions = map[string]string{
	FieldAction:  "What would you like to do: supply, withdraw, borrow or repay?",
	FieldNetwork: "On which network?",
	FieldAsset:   "Which asset?",
	FieldAmount:  "How much?",
}
