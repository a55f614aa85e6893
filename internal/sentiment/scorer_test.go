package sentiment

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mzelenka/debate-pulse/internal/models"
)

func TestClassifyThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  models.Label
	}{
		{0.9, models.Positive},
		{0.051, models.Positive},
		{0.05, models.Neutral},  // strictly greater required
		{-0.05, models.Neutral}, // strictly less required
		{-0.051, models.Negative},
		{-1, models.Negative},
		{0, models.Neutral},
		{1, models.Positive},
	}
	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Fatalf("Classify(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	t.Parallel()

	// every score maps to exactly one of the three labels
	for score := -1.0; score <= 1.0; score += 0.001 {
		matches := 0
		for _, l := range []models.Label{models.Positive, models.Negative, models.Neutral} {
			if Classify(score) == l {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("score %v matched %d labels", score, matches)
		}
	}
}

func TestVADERScorerPolarity(t *testing.T) {
	t.Parallel()

	scorer, err := NewVADERScorer()
	if err != nil {
		t.Fatalf("NewVADERScorer: %v", err)
	}
	ctx := context.Background()

	pos, err := scorer.Score(ctx, "I love this, great great great")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if pos <= 0.05 {
		t.Fatalf("clearly positive text scored %v", pos)
	}

	neg, err := scorer.Score(ctx, "terrible awful bad")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if neg >= -0.05 {
		t.Fatalf("clearly negative text scored %v", neg)
	}

	if _, err := scorer.Score(ctx, ""); err != nil {
		t.Fatalf("empty text must not error: %v", err)
	}
}

type failingScorer struct{}

func (failingScorer) Score(context.Context, string) (float64, error) {
	return 0, errors.New("oracle outage")
}

func TestClassifierDegradesToNeutral(t *testing.T) {
	t.Parallel()

	c := NewClassifier(failingScorer{}, 0, zap.NewNop())
	label, score := c.ClassifyText(context.Background(), "anything")
	if label != models.Neutral || score != 0 {
		t.Fatalf("failed scoring must yield (neutral, 0), got (%v, %v)", label, score)
	}
}

func TestCountsSumToCorpusSize(t *testing.T) {
	t.Parallel()

	scorer, err := NewVADERScorer()
	if err != nil {
		t.Fatalf("NewVADERScorer: %v", err)
	}
	c := NewClassifier(scorer, 0, zap.NewNop())

	texts := []string{
		"I love this, great great great",
		"terrible awful bad",
		"no comment",
		"",
		"the debate happened on thursday",
	}
	var counts models.SentimentCounts
	for _, text := range texts {
		label, _ := c.ClassifyText(context.Background(), text)
		counts.Add(label)
	}
	if counts.Total() != len(texts) {
		t.Fatalf("label counts sum %d, corpus size %d", counts.Total(), len(texts))
	}
}
