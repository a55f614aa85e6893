package corpus

import (
	"testing"

	"github.com/mzelenka/debate-pulse/internal/models"
)

func TestSplitCoversInputDisjointly(t *testing.T) {
	t.Parallel()

	msgs := []models.Message{
		{Candidate: "A", Text: "one"},
		{Candidate: "B", Text: "two"},
		{Candidate: "A", Text: "three"},
		{Candidate: "C", Text: "four"},
		{Candidate: "B", Text: "five"},
	}
	p := Split(msgs)

	if p.Len() != 3 {
		t.Fatalf("got %d candidates, want 3", p.Len())
	}
	if p.Size() != len(msgs) {
		t.Fatalf("partition size %d, input size %d", p.Size(), len(msgs))
	}

	seen := make(map[string]int)
	p.All(func(_ string, sub []models.Message) {
		for _, m := range sub {
			seen[m.Text]++
		}
	})
	for _, m := range msgs {
		if seen[m.Text] != 1 {
			t.Fatalf("message %q appears %d times across sub-corpora", m.Text, seen[m.Text])
		}
	}
}

func TestSplitKeyOrderIsFirstSeen(t *testing.T) {
	t.Parallel()

	msgs := []models.Message{
		{Candidate: "C", Text: "1"},
		{Candidate: "A", Text: "2"},
		{Candidate: "C", Text: "3"},
		{Candidate: "B", Text: "4"},
	}
	p := Split(msgs)
	want := []string{"C", "A", "B"}
	got := p.Candidates()
	if len(got) != len(want) {
		t.Fatalf("candidates = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidates = %v, want %v", got, want)
		}
	}
}

func TestSplitPreservesSubCorpusOrder(t *testing.T) {
	t.Parallel()

	msgs := []models.Message{
		{Candidate: "A", Text: "first"},
		{Candidate: "B", Text: "x"},
		{Candidate: "A", Text: "second"},
		{Candidate: "A", Text: "third"},
	}
	p := Split(msgs)
	sub := p.Messages("A")
	if len(sub) != 3 || sub[0].Text != "first" || sub[2].Text != "third" {
		t.Fatalf("sub-corpus order broken: %v", sub)
	}
}

func TestSplitUnknownCandidateEmpty(t *testing.T) {
	t.Parallel()

	p := Split(nil)
	if p.Len() != 0 || len(p.Messages("nobody")) != 0 {
		t.Fatal("empty input must yield an empty partition")
	}
}
