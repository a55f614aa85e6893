package textproc

import (
	"strings"
	"testing"
)

func TestNormalizeDropsNoise(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "retweet with hashtag and url",
			in:   "RT @User1: Donald Trump was GREAT in the #GOPDebate! So much better than Jeb Bush... http://t.co",
			want: []string{"user", "great", "much", "better"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "punctuation only",
			in:   "!!! ... ’ ??",
			want: nil,
		},
		{
			name: "short and numeric tokens dropped",
			in:   "go 42 ab run winner",
			want: []string{"run", "winner"},
		},
		{
			name: "apostrophe tokens are not alphabetic",
			in:   "don't can't winning",
			want: []string{"winning"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := n.Normalize(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	inputs := []string{
		"Scott Walker killed it tonight, absolutely KILLED it!!!",
		"no comment...",
		"The debate was a total mess; candidates talked over each other constantly.",
	}
	for _, in := range inputs {
		first := n.Normalize(in)
		second := n.Normalize(strings.Join(first, " "))
		for _, tok := range second {
			if n.IsStop(tok) || n.IsPunct(tok) {
				t.Fatalf("token %q survived normalization but is in a filter set", tok)
			}
			if len([]rune(tok)) <= 2 {
				t.Fatalf("token %q survived normalization but is too short", tok)
			}
			if tok != strings.ToLower(tok) {
				t.Fatalf("token %q is not lowercase", tok)
			}
		}
		if len(second) != len(first) {
			t.Fatalf("re-normalizing changed token count: %v vs %v", first, second)
		}
	}
}

func TestNormalizeExtraStopTerms(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("Fiorina", "carly")
	got := n.Normalize("Carly Fiorina dominated the evening")
	for _, tok := range got {
		if tok == "carly" || tok == "fiorina" {
			t.Fatalf("extra stop term %q not filtered, got %v", tok, got)
		}
	}
	if len(got) != 2 { // dominated, evening
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestNormalizeCandidateNamesFiltered(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	got := n.Normalize("trump bush rubio cruz walked away winners")
	want := []string{"walked", "away", "winners"}
	if len(got) != len(want) {
		t.Fatalf("candidate names leaked into tokens: %v", got)
	}
}
