package swap

// Field names in the order they are asked for. The destination network is
// only asked once the source network is known, because its choices depend
// on the available routes.
const (
	FieldFromNetwork = "from_network"
	FieldFromToken   = "from_token"
	FieldToNetwork   = "to_network"
	FieldToToken     = "to_token"
	FieldAmount      = "amount"
)

var questions = map[string]string{
	FieldFromNetwork: "Which network are you swapping from?",
	FieldFromToken:   "Which token do you want to swap?",
	FieldToNetwork:   "Which network should receive the tokens?",
	FieldToToken:     "Which token do you want to receive?",
	FieldAmount:      "How much do you want to swap?",
}
