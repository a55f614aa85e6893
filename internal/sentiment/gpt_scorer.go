package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// GPTScorer asks a chat-completion model for a compound polarity score. It
// is an alternative Scorer backend selected by configuration; the batch
// semantics are identical to the lexicon scorer.
type GPTScorer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewGPTScorer(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTScorer {
	return &GPTScorer{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

const scorePrompt = `Rate the overall sentiment of the following social media message as a single decimal number between -1.0 (extremely negative) and 1.0 (extremely positive), with 0.0 meaning neutral. Respond with the number only, no other text.

Message: %s`

func (s *GPTScorer) Score(ctx context.Context, text string) (float64, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(scorePrompt, text),
				},
			},
			MaxTokens:   s.maxTokens,
			Temperature: float32(s.temperature),
		},
	)
	if err != nil {
		return 0, fmt.Errorf("gpt scorer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("gpt scorer: empty response")
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.Warn("unparseable score from model", zap.String("response", raw))
		return 0, fmt.Errorf("gpt scorer: parse %q: %w", raw, err)
	}
	// clamp out-of-range model output into the documented interval
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score, nil
}
