package router

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/voyage"
)

// Classifier maps an utterance to a category by cosine similarity against
// a warmed table of exemplar embeddings. The exemplar vectors are built
// once at startup and read-only afterwards.
type Classifier struct {
	embedder voyage.IVoyage
	logger   log.Logger
	cache    *expirable.LRU[string, []float32]

	warmed    []warmedExemplar
	warmedSet bool
}

type warmedExemplar struct {
	category Category
	text     string
	vector   []float32
}

// ClassifierConfig tunes the utterance embedding cache.
type ClassifierConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

// NewClassifier creates a classifier. Call Warm before Classify.
func NewClassifier(embedder voyage.IVoyage, cfg ClassifierConfig, logger log.Logger) *Classifier {
	size := cfg.CacheSize
	if size <= 0 {
		size = 512
	}
	return &Classifier{
		embedder: embedder,
		logger:   logger,
		cache:    expirable.NewLRU[string, []float32](size, nil, cfg.CacheTTL),
	}
}

// Warm embeds the exemplar table. Classification degrades to GENERAL with
// confidence 0.0 until this succeeds.
func (c *Classifier) Warm(ctx context.Context) error {
	var texts []string
	var categories []Category
	for _, category := range categoryOrder() {
		for _, text := range exemplars[category] {
			texts = append(texts, text)
			categories = append(categories, category)
		}
	}

	vectors, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("warming exemplar embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("warming exemplar embeddings: got %d vectors for %d texts", len(vectors), len(texts))
	}

	warmed := make([]warmedExemplar, len(texts))
	for i := range texts {
		warmed[i] = warmedExemplar{category: categories[i], text: texts[i], vector: vectors[i]}
	}
	c.warmed = warmed
	c.warmedSet = true

	c.logger.Info(ctx, "classifier warmed", "exemplars", len(warmed))
	return nil
}

// Classify returns the category of the single best-matching exemplar and
// the similarity score. It never fails: when the embedding backend is
// unavailable it returns GENERAL with confidence 0.0 so the caller defers
// to its fallback chain.
func (c *Classifier) Classify(ctx context.Context, utterance string) RouteDecision {
	fallback := RouteDecision{
		IntentCategory: CategoryGeneral,
		Confidence:     0.0,
		TargetHandler:  HandlerDefault,
	}

	if !c.warmedSet {
		return fallback
	}

	vector, err := c.embedUtterance(ctx, utterance)
	if err != nil {
		c.logger.Warn(ctx, "utterance embedding failed, deferring to fallback routing", "error", err.Error())
		return fallback
	}

	best := fallback
	for _, ex := range c.warmed {
		score := cosine(vector, ex.vector)
		if score > best.Confidence {
			best = RouteDecision{
				IntentCategory: ex.category,
				Confidence:     score,
				TargetHandler:  HandlerFor(ex.category),
			}
		}
	}

	best.NeedsConfirmation = best.Confidence >= LowConfidence && best.Confidence < HighConfidence
	return best
}

func (c *Classifier) embedUtterance(ctx context.Context, utterance string) ([]float32, error) {
	key := strings.ToLower(strings.TrimSpace(utterance))
	if vector, ok := c.cache.Get(key); ok {
		return vector, nil
	}

	vectors, err := c.embedder.Embed(ctx, []string{utterance})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 vector, got %d", len(vectors))
	}

	c.cache.Add(key, vectors[0])
	return vectors[0], nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func categoryOrder() []Category {
	return []Category{
		CategorySwap,
		CategoryLending,
		CategoryStaking,
		CategoryDCA,
		CategoryMarketData,
		CategoryPortfolio,
		CategoryEducation,
		CategorySearch,
		CategoryGeneral,
	}
}
