package textproc

import (
	_ "embed"
	"regexp"
	"strings"
	"unicode"
)

//go:embed data/stopwords_en.txt
var englishStopwords string

// Domain noise: hashtag/retweet/URL fragments plus every candidate's first
// and last name, so names do not dominate the topic tables.
var domainStopTerms = []string{
	"rt", "gopdebate", "gop", "debate", "amp", "http", "https", "co", "realdonaldtrump",
	"donald", "trump", "ted", "cruz", "ben", "carson", "scott", "walker",
	"jeb", "bush", "marco", "rubio", "mike", "huckabee", "chris", "christie",
	"rand", "paul", "john", "kasich",
}

// standard punctuation marks plus the typographic quotes and ellipsis that
// survive word tokenization as standalone tokens
var punctTokens = []string{
	"!", "\"", "#", "$", "%", "&", "'", "(", ")", "*", "+", ",", "-", ".", "/",
	":", ";", "<", "=", ">", "?", "@", "[", "\\", "]", "^", "_", "`", "{", "|", "}", "~",
	"''", "``", "...", "’", "‘", "“", "”", "…",
}

// splits on word boundaries, keeping internal apostrophes with their word
var reToken = regexp.MustCompile(`[’']?[\pL]+(?:[’'][\pL]+)*[’']?|\pN+`)

// Normalizer turns one raw message into a cleaned token slice. It is a pure
// function of its inputs: the stop and punctuation sets are fixed at
// construction and never mutated afterwards.
type Normalizer struct {
	stop  map[string]struct{}
	punct map[string]struct{}
}

// NewNormalizer builds a Normalizer from the embedded English stopword list,
// the fixed domain list, and any extra stop terms (already-known candidate
// name parts, config additions). Extras are lowercased before insertion.
func NewNormalizer(extraStop ...string) *Normalizer {
	n := &Normalizer{
		stop:  make(map[string]struct{}, 256),
		punct: make(map[string]struct{}, len(punctTokens)),
	}
	for _, w := range strings.Fields(englishStopwords) {
		n.stop[w] = struct{}{}
	}
	for _, w := range domainStopTerms {
		n.stop[w] = struct{}{}
	}
	for _, w := range extraStop {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			n.stop[w] = struct{}{}
		}
	}
	for _, p := range punctTokens {
		n.punct[p] = struct{}{}
	}
	return n
}

// Normalize lowercases the text, tokenizes it into word-level units and
// drops punctuation tokens, stop terms, non-alphabetic tokens and tokens of
// two runes or fewer. A missing value (empty string) yields an empty slice;
// it never returns an error.
func (n *Normalizer) Normalize(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	raw := reToken.FindAllString(lower, -1)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, ok := n.punct[tok]; ok {
			continue
		}
		if _, ok := n.stop[tok]; ok {
			continue
		}
		if !isAlpha(tok) {
			continue
		}
		if runeLen(tok) <= 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// IsStop reports whether a token is in the configured stop set.
func (n *Normalizer) IsStop(tok string) bool {
	_, ok := n.stop[tok]
	return ok
}

// IsPunct reports whether a token is in the configured punctuation set.
func (n *Normalizer) IsPunct(tok string) bool {
	_, ok := n.punct[tok]
	return ok
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func runeLen(s string) int { return len([]rune(s)) }
