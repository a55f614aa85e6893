package models

import "time"

// Message is one row of the input corpus: a tweet attributed to a candidate.
// Timestamp and Timezone are optional; a zero Timestamp means the row had no
// parseable creation time.
type Message struct {
	Candidate string    `json:"candidate"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`
}

// HasTimestamp reports whether the message carried a parseable creation time.
func (m Message) HasTimestamp() bool { return !m.Timestamp.IsZero() }

// Label is a sentiment class derived from a compound polarity score.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// SentimentCounts holds per-label message counts for one sub-corpus.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the number of classified messages.
func (c SentimentCounts) Total() int { return c.Positive + c.Negative + c.Neutral }

// Add increments the counter matching the given label.
func (c *SentimentCounts) Add(l Label) {
	switch l {
	case Positive:
		c.Positive++
	case Negative:
		c.Negative++
	default:
		c.Neutral++
	}
}

// PositiveFraction returns positive/total, or 0 for an empty group.
func (c SentimentCounts) PositiveFraction() float64 {
	if t := c.Total(); t > 0 {
		return float64(c.Positive) / float64(t)
	}
	return 0
}

// ScoredMessage is a message with its polarity score and derived label.
// Scoring happens once per message; every downstream count reuses the same
// label, so the threshold policy cannot drift between views.
type ScoredMessage struct {
	Message
	Score float64 `json:"score"`
	Label Label   `json:"label"`
}

// TermCount is one ranked entry of a frequency table.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Collocation is an adjacent bigram with its association score.
type Collocation struct {
	First  string  `json:"first"`
	Second string  `json:"second"`
	Score  float64 `json:"score"`
}

// TopicSummary is the lexical summary of one token stream: frequency table,
// ranked top terms, significant bigrams, and concordance lines for the
// leading terms. Any section may be empty when its sub-step had nothing to
// work with or was skipped after a failure.
type TopicSummary struct {
	Frequencies  map[string]int      `json:"frequencies"`
	TopTerms     []TermCount         `json:"top_terms"`
	Collocations []Collocation       `json:"collocations"`
	Contexts     map[string][]string `json:"contexts"`
}

// Empty reports whether the summary carries no information at all.
func (s TopicSummary) Empty() bool {
	return len(s.Frequencies) == 0 && len(s.TopTerms) == 0 &&
		len(s.Collocations) == 0 && len(s.Contexts) == 0
}

// CandidateResult is the per-candidate outcome of the analysis stage. Err is
// set when the candidate's analysis failed as a whole; the rest of the batch
// is unaffected.
type CandidateResult struct {
	Candidate string          `json:"candidate"`
	Messages  int             `json:"messages"`
	Counts    SentimentCounts `json:"counts"`
	Scores    []float64       `json:"scores"`
	Overall   TopicSummary    `json:"overall"`
	Positive  TopicSummary    `json:"positive"`
	Negative  TopicSummary    `json:"negative"`
	Err       error           `json:"-"`
}

// TimePoint is one bucket of a sentiment-over-time series: the bucket start
// and the mean compound score of the messages inside it.
type TimePoint struct {
	Bucket time.Time `json:"bucket"`
	Mean   float64   `json:"mean"`
}

// ZoneSentiment is one timezone row of a per-candidate sentiment table.
type ZoneSentiment struct {
	Zone      string  `json:"zone"`
	Messages  int     `json:"messages"`
	MeanScore float64 `json:"mean_score"`
}

// ZoneCandidateShare is one candidate's label distribution within a timezone,
// expressed as fractions of the group total.
type ZoneCandidateShare struct {
	Candidate string  `json:"candidate"`
	Total     int     `json:"total"`
	Positive  float64 `json:"positive"`
	Neutral   float64 `json:"neutral"`
	Negative  float64 `json:"negative"`
}

// ZoneComparison is the cross-candidate crosstab for one of the top
// timezones: the surviving candidate groups, ranked ascending by positive
// fraction.
type ZoneComparison struct {
	Zone       string               `json:"zone"`
	Candidates []ZoneCandidateShare `json:"candidates"`
}

// MentionMatrix counts, per source candidate, how many of their messages
// contain each target candidate's surname. Detection is a lowercase
// substring match on the last whitespace-delimited token of the target's
// display name, with no word-boundary enforcement, so a surname that is
// also a common word over-counts.
type MentionMatrix struct {
	Sources []string `json:"sources"`
	Targets []string `json:"targets"`
	Cells   [][]int  `json:"cells"`
}

// At returns the cell for (source index, target index).
func (m MentionMatrix) At(s, t int) int { return m.Cells[s][t] }
