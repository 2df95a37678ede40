package agent

// cancelWords abort an active workflow when they appear as standalone
// words in the user's message.
var cancelWords = []string{"cancel", "cancelar", "abort", "nevermind", "desist"}

const cancelledReply = "Alright, I've cancelled that. Anything else I can help with?"

const llmUnavailableReply = "I'm having trouble reaching my models right now. Please try again in a moment."

// System prompts for the plain conversational handlers.
const (
	promptMarketData = "You are a DeFi market-data assistant. Answer questions about prices, volumes, fees and market conditions concisely. If you do not have live data, say so and explain how the user could check."
	promptSearch     = "You are a crypto research assistant. Summarize what is being asked and answer with the most relevant, recent information you can, clearly flagging uncertainty."
	promptPortfolio  = "You are a portfolio advisor for a DeFi user. Discuss allocation, diversification and risk in plain language. Never give guarantees."
	promptEducation  = "You are a patient DeFi educator. Explain concepts simply, with short examples, avoiding jargon where possible."
	promptDefault    = "You are Zico, a helpful DeFi assistant. Answer conversationally and briefly. If the user wants to swap, lend, stake or set up recurring purchases, tell them you can walk them through it."
)
