package router

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...interface{})                    {}
func (mockLogger) Debugf(ctx context.Context, template string, args ...interface{})  {}
func (mockLogger) Info(ctx context.Context, args ...interface{})                     {}
func (mockLogger) Infof(ctx context.Context, template string, args ...interface{})   {}
func (mockLogger) Warn(ctx context.Context, args ...interface{})                     {}
func (mockLogger) Warnf(ctx context.Context, template string, args ...interface{})   {}
func (mockLogger) Error(ctx context.Context, args ...interface{})                    {}
func (mockLogger) Errorf(ctx context.Context, template string, args ...interface{})  {}
func (mockLogger) Fatal(ctx context.Context, args ...interface{})                    {}
func (mockLogger) Fatalf(ctx context.Context, template string, args ...interface{})  {}
func (mockLogger) DPanic(ctx context.Context, args ...interface{})                   {}
func (mockLogger) DPanicf(ctx context.Context, template string, args ...interface{}) {}
func (mockLogger) Panic(ctx context.Context, args ...interface{})                    {}
func (mockLogger) Panicf(ctx context.Context, template string, args ...interface{})  {}

type mockEmbedder struct {
	embed func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return m.embed(ctx, texts)
}

// axisEmbedder maps each text to a one-hot vector on the axis of the first
// exemplar category whose terms appear in it, so similarity is exact.
func axisEmbedder() *mockEmbedder {
	order := categoryOrder()
	axis := func(text string) []float32 {
		v := make([]float32, len(order))
		for i, category := range order {
			for _, ex := range exemplars[category] {
				if strings.EqualFold(ex, text) {
					v[i] = 1
					return v
				}
			}
		}
		// Unknown utterances are uniform across all axes, so the best
		// cosine score stays well below the low threshold.
		for i := range v {
			v[i] = 1
		}
		return v
	}
	return &mockEmbedder{
		embed: func(ctx context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, t := range texts {
				out[i] = axis(t)
			}
			return out, nil
		},
	}
}

func newWarmedClassifier(t *testing.T) *Classifier {
	t.Helper()
	c := NewClassifier(axisEmbedder(), ClassifierConfig{CacheSize: 16}, mockLogger{})
	if err := c.Warm(context.Background()); err != nil {
		t.Fatalf("warm: %v", err)
	}
	return c
}

func TestClassify(t *testing.T) {
	t.Run("exact exemplar match is high confidence", func(t *testing.T) {
		c := newWarmedClassifier(t)
		d := c.Classify(context.Background(), "swap 10 USDC for AVAX")
		if d.IntentCategory != CategorySwap {
			t.Errorf("expected swap, got %s", d.IntentCategory)
		}
		if d.Confidence < HighConfidence {
			t.Errorf("expected high confidence, got %f", d.Confidence)
		}
		if d.NeedsConfirmation {
			t.Error("high confidence must not need confirmation")
		}
	})

	t.Run("unwarmed classifier degrades to general", func(t *testing.T) {
		c := NewClassifier(axisEmbedder(), ClassifierConfig{}, mockLogger{})
		d := c.Classify(context.Background(), "swap 10 USDC for AVAX")
		if d.IntentCategory != CategoryGeneral || d.Confidence != 0.0 {
			t.Errorf("expected general/0.0, got %s/%f", d.IntentCategory, d.Confidence)
		}
	})

	t.Run("embedding failure degrades to general", func(t *testing.T) {
		calls := 0
		c := NewClassifier(&mockEmbedder{
			embed: func(ctx context.Context, texts []string) ([][]float32, error) {
				calls++
				if calls == 1 {
					return axisEmbedder().embed(ctx, texts)
				}
				return nil, errors.New("backend down")
			},
		}, ClassifierConfig{}, mockLogger{})
		if err := c.Warm(context.Background()); err != nil {
			t.Fatalf("warm: %v", err)
		}
		d := c.Classify(context.Background(), "anything")
		if d.IntentCategory != CategoryGeneral || d.Confidence != 0.0 {
			t.Errorf("expected general/0.0, got %s/%f", d.IntentCategory, d.Confidence)
		}
	})

	t.Run("utterance cache avoids second embed call", func(t *testing.T) {
		embedCalls := 0
		base := axisEmbedder()
		c := NewClassifier(&mockEmbedder{
			embed: func(ctx context.Context, texts []string) ([][]float32, error) {
				embedCalls++
				return base.embed(ctx, texts)
			},
		}, ClassifierConfig{CacheSize: 16}, mockLogger{})
		if err := c.Warm(context.Background()); err != nil {
			t.Fatalf("warm: %v", err)
		}
		c.Classify(context.Background(), "hello")
		c.Classify(context.Background(), "hello")
		if embedCalls != 2 { // warm + first classify
			t.Errorf("expected 2 embed calls, got %d", embedCalls)
		}
	})

	t.Run("warm failure returns error", func(t *testing.T) {
		c := NewClassifier(&mockEmbedder{
			embed: func(ctx context.Context, texts []string) ([][]float32, error) {
				return nil, errors.New("backend down")
			},
		}, ClassifierConfig{}, mockLogger{})
		if err := c.Warm(context.Background()); err == nil {
			t.Error("expected warm error")
		}
	})
}

func TestCosine(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"mismatched length", []float32{1}, []float32{1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cosine(tc.a, tc.b); got != tc.want {
				t.Errorf("cosine = %f, want %f", got, tc.want)
			}
		})
	}
}
