package router

import "github.com/Panorama-Block/zico-agents-sub000/internal/model"

// Confidence thresholds for embedding-similarity classification.
const (
	HighConfidence = 0.78
	LowConfidence  = 0.50
)

// Handler names form the fixed dispatch vocabulary. Model output is only
// ever used as a string key validated against this set.
const (
	HandlerSwap       = "swap_agent"
	HandlerLending    = "lending_agent"
	HandlerStaking    = "staking_agent"
	HandlerDCA        = "dca_agent"
	HandlerMarketData = "market_data_agent"
	HandlerPortfolio  = "portfolio_advisor"
	HandlerEducation  = "education_agent"
	HandlerSearch     = "search_agent"
	HandlerDefault    = "default_agent"
	HandlerError      = "error_handler"
)

var handlerForCategory = map[Category]string{
	CategorySwap:       HandlerSwap,
	CategoryLending:    HandlerLending,
	CategoryStaking:    HandlerStaking,
	CategoryDCA:        HandlerDCA,
	CategoryMarketData: HandlerMarketData,
	CategoryPortfolio:  HandlerPortfolio,
	CategoryEducation:  HandlerEducation,
	CategorySearch:     HandlerSearch,
	CategoryGeneral:    HandlerDefault,
}

var handlerForKind = map[model.WorkflowKind]string{
	model.KindSwap:    HandlerSwap,
	model.KindLending: HandlerLending,
	model.KindStaking: HandlerStaking,
	model.KindDCA:     HandlerDCA,
}

// statefulCategories map to slot-filling workflows; medium confidence is
// acceptable for them because the workflow asks a clarifying question
// immediately when data is thin.
var statefulCategories = map[Category]bool{
	CategorySwap:    true,
	CategoryLending: true,
	CategoryStaking: true,
	CategoryDCA:     true,
}

// HandlerNames returns every routable handler name. The dispatch table is
// validated against this set at startup.
func HandlerNames() []string {
	return []string{
		HandlerSwap,
		HandlerLending,
		HandlerStaking,
		HandlerDCA,
		HandlerMarketData,
		HandlerPortfolio,
		HandlerEducation,
		HandlerSearch,
		HandlerDefault,
		HandlerError,
	}
}

// KindForCategory maps a stateful category to its workflow kind.
func KindForCategory(category Category) (model.WorkflowKind, bool) {
	switch category {
	case CategorySwap:
		return model.KindSwap, true
	case CategoryLending:
		return model.KindLending, true
	case CategoryStaking:
		return model.KindStaking, true
	case CategoryDCA:
		return model.KindDCA, true
	default:
		return "", false
	}
}

// ValidHandler reports whether name is part of the dispatch vocabulary.
func ValidHandler(name string) bool {
	for _, known := range HandlerNames() {
		if name == known {
			return true
		}
	}
	return false
}

// HandlerFor maps a category to its handler name.
func HandlerFor(category Category) string {
	if h, ok := handlerForCategory[category]; ok {
		return h
	}
	return HandlerDefault
}

// exemplars is the versionable classification table. Changing it requires
// only re-warming embeddings, no code change.
var exemplars = map[Category][]string{
	CategorySwap: {
		"swap 10 USDC for AVAX",
		"I want to trade my ETH for USDT",
		"exchange 0.5 WETH to DAI on arbitrum",
		"convert my tokens to stablecoins",
		"bridge 100 USDC from ethereum to base",
		"can you swap some AVAX for me",
		"trocar 25 USDT por ETH",
		"I'd like to move my WBTC into ETH",
		"swap tokens between networks",
		"change 50 DAI into USDC on polygon",
		"quero trocar meus tokens",
	},
	CategoryLending: {
		"supply 100 USDC to the lending pool",
		"I want to deposit DAI and earn interest",
		"borrow 50 USDT against my collateral",
		"withdraw my supplied AVAX",
		"repay my loan",
		"what can I lend on avalanche",
		"depositar 200 USDC para render juros",
		"take out a loan in stablecoins",
		"lend my tokens for yield",
		"how much can I borrow",
	},
	CategoryStaking: {
		"stake 2 ETH with lido",
		"I want to stake my ether",
		"unstake my position",
		"claim my staking rewards",
		"how do I stake ETH for stETH",
		"fazer staking de ETH",
		"restake my rewards",
		"stop staking and withdraw",
		"stake everything I have",
		"what are the staking rewards right now",
	},
	CategoryDCA: {
		"set up a recurring buy of ETH every week",
		"I want to dollar cost average into bitcoin",
		"buy 50 USDC of AVAX every month",
		"create a DCA plan for me",
		"schedule automatic purchases of ETH",
		"comprar ETH toda semana automaticamente",
		"invest a fixed amount weekly",
		"recurring purchase of WBTC",
		"help me build a DCA strategy",
		"automate my monthly crypto buys",
	},
	CategoryMarketData: {
		"what is the price of ETH",
		"how is AVAX doing today",
		"show me the top gainers",
		"what's the market cap of bitcoin",
		"ETH price chart for the last week",
		"qual o preço do bitcoin hoje",
		"is the market up or down",
		"current gas fees on ethereum",
		"trading volume of USDC",
		"price of stETH versus ETH",
	},
	CategoryPortfolio: {
		"how is my portfolio doing",
		"show my current holdings",
		"what's my balance across chains",
		"analyze my portfolio allocation",
		"am I too exposed to stablecoins",
		"como está minha carteira",
		"what should I rebalance",
		"my profit and loss this month",
		"portfolio performance summary",
		"review my asset distribution",
	},
	CategoryEducation: {
		"what is impermanent loss",
		"explain how staking works",
		"what does APY mean",
		"how do bridges work",
		"what is a liquidity pool",
		"o que é DeFi",
		"explain slippage to me",
		"difference between APR and APY",
		"what are wrapped tokens",
		"how does lending collateral work",
	},
	CategorySearch: {
		"search for news about ethereum",
		"find recent articles on DeFi regulation",
		"look up the latest on avalanche upgrades",
		"any news about lido today",
		"search the web for stablecoin depegs",
		"procurar notícias sobre cripto",
		"what happened with the market this week",
		"find information about this protocol",
		"latest headlines in crypto",
		"search for airdrop announcements",
	},
	CategoryGeneral: {
		"hello",
		"thanks for the help",
		"who are you",
		"what can you do",
		"good morning",
		"olá, tudo bem?",
		"never mind",
		"tell me a joke",
		"ok sounds good",
		"help",
	},
}
