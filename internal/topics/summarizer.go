package topics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mzelenka/debate-pulse/internal/models"
)

// Config holds the summary shape knobs.
type Config struct {
	TopN               int // ranked terms kept in the summary
	CollocationCount   int // significant bigrams kept
	CollocationMinFreq int // a bigram below this count is noise
	ConcordanceTerms   int // leading terms that get context lines
	ConcordanceLines   int // max context lines per term
	ConcordanceWindow  int // tokens of context on each side
}

// DefaultConfig matches the report defaults: top 10 terms, top 5
// collocations with a floor of 2, context for the top 3 terms with 5 lines
// of ±4 tokens.
func DefaultConfig() Config {
	return Config{
		TopN:               10,
		CollocationCount:   5,
		CollocationMinFreq: 2,
		ConcordanceTerms:   3,
		ConcordanceLines:   5,
		ConcordanceWindow:  4,
	}
}

// Summarizer derives lexical summaries from normalized token streams. It is
// exploratory and best-effort: a failure inside one sub-step drops that
// section of the summary and keeps the rest.
type Summarizer struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Summarizer {
	if cfg.TopN <= 0 {
		cfg = DefaultConfig()
	}
	return &Summarizer{cfg: cfg, logger: logger}
}

// Summarize builds the frequency table, top terms, collocations and
// concordance for one token stream. An empty stream yields an empty summary,
// which callers must treat as "no topics" rather than a failure.
func (s *Summarizer) Summarize(tokens []string) models.TopicSummary {
	if len(tokens) == 0 {
		return models.TopicSummary{}
	}

	freqs, order := frequencies(tokens)
	summary := models.TopicSummary{
		Frequencies: freqs,
		TopTerms:    topTerms(freqs, order, s.cfg.TopN),
	}

	if err := guard(func() {
		summary.Collocations = s.collocations(tokens, freqs)
	}); err != nil {
		s.logger.Warn("collocation step skipped", zap.Error(err))
	}

	if err := guard(func() {
		summary.Contexts = s.contexts(tokens, summary.TopTerms)
	}); err != nil {
		s.logger.Warn("concordance step skipped", zap.Error(err))
	}

	return summary
}

// frequencies counts each distinct token and records the index of its first
// encounter, which is the documented tie-break for equal counts.
func frequencies(tokens []string) (map[string]int, map[string]int) {
	freqs := make(map[string]int, len(tokens))
	order := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if _, seen := order[tok]; !seen {
			order[tok] = i
		}
		freqs[tok]++
	}
	return freqs, order
}

// topTerms ranks terms by count descending; at equal counts the term first
// seen earlier in the stream ranks higher. The ordering is fully
// deterministic for a given token stream.
func topTerms(freqs, order map[string]int, n int) []models.TermCount {
	ranked := make([]models.TermCount, 0, len(freqs))
	for term, count := range freqs {
		ranked = append(ranked, models.TermCount{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return order[ranked[i].Term] < order[ranked[j].Term]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// collocations scores adjacent bigrams with the Dunning log-likelihood
// ratio over bigram/unigram frequencies. Bigrams below the frequency floor
// are discarded before scoring.
func (s *Summarizer) collocations(tokens []string, unigrams map[string]int) []models.Collocation {
	if len(tokens) < 2 {
		return nil
	}
	type bigram struct{ first, second string }
	counts := make(map[bigram]int, len(tokens))
	order := make(map[bigram]int, len(tokens))
	for i := 0; i+1 < len(tokens); i++ {
		b := bigram{tokens[i], tokens[i+1]}
		if _, seen := order[b]; !seen {
			order[b] = i
		}
		counts[b]++
	}

	total := float64(len(tokens) - 1)
	scored := make([]models.Collocation, 0, len(counts))
	for b, c12 := range counts {
		if c12 < s.cfg.CollocationMinFreq {
			continue
		}
		score := logLikelihood(float64(c12), float64(unigrams[b.first]), float64(unigrams[b.second]), total)
		scored = append(scored, models.Collocation{First: b.first, Second: b.second, Score: score})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return order[bigram{scored[i].First, scored[i].Second}] < order[bigram{scored[j].First, scored[j].Second}]
	})
	if len(scored) > s.cfg.CollocationCount {
		scored = scored[:s.cfg.CollocationCount]
	}
	return scored
}

// logLikelihood is the 2x2 contingency G² statistic for a bigram: observed
// co-occurrence against independence of the two unigrams.
func logLikelihood(c12, c1, c2, n float64) float64 {
	obs := [4]float64{
		c12,
		c1 - c12,
		c2 - c12,
		n - c1 - c2 + c12,
	}
	rowSums := [2]float64{c1, n - c1}
	colSums := [2]float64{c2, n - c2}
	var g2 float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			o := obs[i*2+j]
			if o <= 0 {
				continue
			}
			e := rowSums[i] * colSums[j] / n
			if e <= 0 {
				continue
			}
			g2 += o * math.Log(o/e)
		}
	}
	return 2 * g2
}

// contexts collects up to the configured number of occurrence snippets for
// each leading term, with a fixed token window on each side.
func (s *Summarizer) contexts(tokens []string, top []models.TermCount) map[string][]string {
	terms := top
	if len(terms) > s.cfg.ConcordanceTerms {
		terms = terms[:s.cfg.ConcordanceTerms]
	}
	if len(terms) == 0 {
		return nil
	}
	out := make(map[string][]string, len(terms))
	for _, tc := range terms {
		lines := make([]string, 0, s.cfg.ConcordanceLines)
		for i, tok := range tokens {
			if tok != tc.Term {
				continue
			}
			lines = append(lines, snippet(tokens, i, s.cfg.ConcordanceWindow))
			if len(lines) >= s.cfg.ConcordanceLines {
				break
			}
		}
		out[tc.Term] = lines
	}
	return out
}

func snippet(tokens []string, at, window int) string {
	lo := at - window
	if lo < 0 {
		lo = 0
	}
	hi := at + window + 1
	if hi > len(tokens) {
		hi = len(tokens)
	}
	return strings.Join(tokens[lo:hi], " ")
}

// guard converts a panic inside a best-effort sub-step into an error so one
// broken section cannot abort the whole summary.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("summary sub-step panic: %v", r)
		}
	}()
	fn()
	return nil
}
