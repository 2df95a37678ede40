package dca

import (
	"context"
	"fmt"
	"strings"

	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/qdrant"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/voyage"
)

// StrategyCollection is the Qdrant collection holding strategy embeddings.
const StrategyCollection = "dca-strategies"

const vectorSize = 1024 // voyage-3

// catalog is the curated strategy table. Recommendation picks from it;
// the vector index only ranks it.
var catalog = []Strategy{
	{
		ID:          "steady-weekly",
		Name:        "Steady weekly accumulation",
		Description: "Buy a fixed amount every week regardless of price. Calm, low-maintenance accumulation for long-term holders.",
		Venue:       "uniswap",
		Cadence:     "weekly",
		SlippageBps: 50,
	},
	{
		ID:          "aggressive-daily",
		Name:        "Aggressive daily entries",
		Description: "Small daily purchases to smooth out volatility aggressively. Suited to short horizons and active traders.",
		Venue:       "traderjoe",
		Cadence:     "daily",
		SlippageBps: 80,
	},
	{
		ID:          "patient-monthly",
		Name:        "Patient monthly builder",
		Description: "One larger purchase per month, minimizing fees. Best for salaried budgets and multi-year patient horizons.",
		Venue:       "uniswap",
		Cadence:     "monthly",
		SlippageBps: 30,
	},
	{
		ID:          "balanced-biweekly",
		Name:        "Balanced biweekly plan",
		Description: "Purchases every two weeks balancing fee cost against volatility smoothing. A middle ground default.",
		Venue:       "aerodrome",
		Cadence:     "biweekly",
		SlippageBps: 50,
	},
}

// CatalogStrategy looks up a strategy by id.
func CatalogStrategy(id string) (Strategy, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Strategy{}, false
}

// StrategyIDs returns the catalog ids in order.
func StrategyIDs() []string {
	out := make([]string, len(catalog))
	for i, s := range catalog {
		out[i] = s.ID
	}
	return out
}

// Retriever recommends a strategy for free-form user text.
// Implementations never fail; they degrade to a deterministic pick.
type Retriever interface {
	Recommend(ctx context.Context, text string) Strategy
}

// VectorStore is the subset of the Qdrant client the retriever uses.
type VectorStore interface {
	CreateCollection(ctx context.Context, req qdrant.CreateCollectionRequest) error
	UpsertPoints(ctx context.Context, collectionName string, req qdrant.UpsertPointsRequest) error
	SearchPoints(ctx context.Context, collectionName string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error)
}

// VectorRetriever ranks the catalog by embedding similarity, falling back
// to keyword overlap whenever the vector backend is unavailable.
type VectorRetriever struct {
	embedder voyage.IVoyage
	store    VectorStore
	logger   log.Logger
	warmed   bool
}

var _ Retriever = (*VectorRetriever)(nil)

// NewVectorRetriever creates a retriever. Call Warm at startup; until it
// succeeds, recommendations use keyword overlap only.
func NewVectorRetriever(embedder voyage.IVoyage, store VectorStore, logger log.Logger) *VectorRetriever {
	return &VectorRetriever{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Warm creates the strategy collection and indexes the catalog.
func (r *VectorRetriever) Warm(ctx context.Context) error {
	if err := r.store.CreateCollection(ctx, qdrant.CreateCollectionRequest{
		Name:    StrategyCollection,
		Vectors: qdrant.VectorConfig{Size: vectorSize, Distance: "Cosine"},
	}); err != nil {
		// The collection usually already exists on restart.
		r.logger.Debug(ctx, "strategy collection create skipped", "error", err.Error())
	}

	texts := make([]string, len(catalog))
	for i, s := range catalog {
		texts[i] = s.Name + ". " + s.Description
	}
	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(catalog) {
		return fmt.Errorf("got %d vectors for %d strategies", len(vectors), len(catalog))
	}

	points := make([]qdrant.Point, len(catalog))
	for i, s := range catalog {
		points[i] = qdrant.Point{
			ID:      uint64(i + 1),
			Vector:  vectors[i],
			Payload: map[string]interface{}{"strategy_id": s.ID},
		}
	}
	if err := r.store.UpsertPoints(ctx, StrategyCollection, qdrant.UpsertPointsRequest{Points: points}); err != nil {
		return err
	}

	r.warmed = true
	return nil
}

// Recommend returns the best-matching strategy for the text.
func (r *VectorRetriever) Recommend(ctx context.Context, text string) Strategy {
	if !r.warmed {
		return keywordRecommend(text)
	}

	vectors, err := r.embedder.Embed(ctx, []string{text})
	if err != nil || len(vectors) != 1 {
		r.logger.Warn(ctx, "strategy embedding failed, using keyword fallback", "error", errString(err))
		return keywordRecommend(text)
	}

	resp, err := r.store.SearchPoints(ctx, StrategyCollection, qdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       1,
		WithPayload: true,
	})
	if err != nil || len(resp.Result) == 0 {
		r.logger.Warn(ctx, "strategy search failed, using keyword fallback", "error", errString(err))
		return keywordRecommend(text)
	}

	id, _ := resp.Result[0].Payload["strategy_id"].(string)
	if s, ok := CatalogStrategy(id); ok {
		return s
	}
	return keywordRecommend(text)
}

// KeywordRetriever is the deterministic overlap-based retriever, usable
// standalone when no vector backend is configured.
type KeywordRetriever struct{}

var _ Retriever = KeywordRetriever{}

func (KeywordRetriever) Recommend(ctx context.Context, text string) Strategy {
	return keywordRecommend(text)
}

// keywordRecommend scores the catalog by word overlap with the text and
// returns the best entry, first catalog entry on a total miss.
func keywordRecommend(text string) Strategy {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[strings.Trim(w, ".,!?")] = true
	}

	best := catalog[0]
	bestScore := 0
	for _, s := range catalog {
		score := 0
		for _, w := range strings.Fields(strings.ToLower(s.Name + " " + s.Description + " " + s.Cadence)) {
			if words[strings.Trim(w, ".,")] {
				score++
			}
		}
		if score > bestScore {
			best = s
			bestScore = score
		}
	}
	return best
}

func errString(err error) string {
	if err == nil {
		return "empty result"
	}
	return err.Error()
}
