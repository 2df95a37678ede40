package router

import "strings"

// keywordTable backs the zero-cost fallback used when classification is
// unavailable. Order matters: first category with a hit wins.
var keywordTable = []struct {
	category Category
	terms    []string
}{
	{CategorySwap, []string{"swap", "trocar", "troque", "bridge", "exchange", "convert"}},
	{CategoryLending, []string{"lend", "supply", "borrow", "repay", "deposit", "depositar", "emprestar", "withdraw", "sacar"}},
	{CategoryStaking, []string{"stake", "staking", "unstake", "lido", "steth"}},
	{CategoryDCA, []string{"dca", "recurring", "dollar cost", "every week", "every month", "toda semana", "todo mês"}},
	{CategoryMarketData, []string{"price", "preço", "market cap", "gas fee", "volume", "chart"}},
	{CategoryPortfolio, []string{"portfolio", "carteira", "holdings", "balance", "rebalance"}},
	{CategorySearch, []string{"search", "news", "notícias", "find", "procurar", "look up"}},
	{CategoryEducation, []string{"what is", "explain", "how does", "o que é", "difference between"}},
}

// keywordRoute matches text against small per-category term lists.
func keywordRoute(text string) (Category, bool) {
	t := strings.ToLower(text)
	for _, entry := range keywordTable {
		for _, term := range entry.terms {
			if strings.Contains(t, term) {
				return entry.category, true
			}
		}
	}
	return "", false
}
