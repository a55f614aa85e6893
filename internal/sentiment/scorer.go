package sentiment

import (
	"context"
	"errors"
	"time"

	"github.com/jonreiter/govader"
	"go.uber.org/zap"

	"github.com/mzelenka/debate-pulse/internal/models"
)

// Fixed threshold policy. Strict comparisons: a score of exactly 0.05 or
// -0.05 is neutral.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer produces a compound polarity score in [-1, 1] for raw message text.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// Classify maps a compound score to exactly one label.
func Classify(score float64) models.Label {
	switch {
	case score > positiveThreshold:
		return models.Positive
	case score < negativeThreshold:
		return models.Negative
	default:
		return models.Neutral
	}
}

// VADERScorer wraps the VADER lexicon analyzer. Construction loads the
// lexicon once; scoring afterwards is pure and stateless.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADERScorer initializes the lexicon analyzer. A nil analyzer is a
// configuration failure the caller must treat as fatal.
func NewVADERScorer() (*VADERScorer, error) {
	a := govader.NewSentimentIntensityAnalyzer()
	if a == nil {
		return nil, errors.New("sentiment: vader lexicon failed to initialize")
	}
	return &VADERScorer{analyzer: a}, nil
}

func (s *VADERScorer) Score(_ context.Context, text string) (float64, error) {
	return s.analyzer.PolarityScores(text).Compound, nil
}

// Classifier applies the threshold policy on top of a Scorer, degrading
// scoring failures and timeouts to neutral instead of failing the batch.
type Classifier struct {
	scorer  Scorer
	timeout time.Duration
	logger  *zap.Logger
}

// NewClassifier wires a Scorer with an optional per-call timeout (zero means
// unbounded).
func NewClassifier(scorer Scorer, timeout time.Duration, logger *zap.Logger) *Classifier {
	return &Classifier{scorer: scorer, timeout: timeout, logger: logger}
}

// ClassifyText scores one message and maps it to a label. A scorer error or
// expired timeout yields (neutral, 0) and a log entry, never an error.
func (c *Classifier) ClassifyText(ctx context.Context, text string) (models.Label, float64) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	score, err := c.scorer.Score(ctx, text)
	if err != nil {
		c.logger.Warn("scoring failed, treating message as neutral", zap.Error(err))
		return models.Neutral, 0
	}
	return Classify(score), score
}
