package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeCorpus(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func TestLoadParsesRows(t *testing.T) {
	t.Parallel()

	path := writeCorpus(t, `candidate,text,tweet_created,user_timezone
Donald Trump,Great debate tonight,2015-08-07 09:54:46 -0700,Eastern Time (US & Canada)
Jeb Bush,no comment,,
`)
	msgs, err := NewLoader(zap.NewNop()).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Candidate != "Donald Trump" || msgs[0].Timezone != "Eastern Time (US & Canada)" {
		t.Fatalf("first message = %+v", msgs[0])
	}
	if !msgs[0].HasTimestamp() {
		t.Fatal("first message should carry a timestamp")
	}
	if msgs[1].HasTimestamp() {
		t.Fatal("second message has no timestamp in the input")
	}
}

func TestLoadDropsUnusableRows(t *testing.T) {
	t.Parallel()

	path := writeCorpus(t, `candidate,text
Donald Trump,usable
,missing candidate
Jeb Bush,
Marco Rubio,also usable
`)
	msgs, err := NewLoader(zap.NewNop()).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2 after pruning", len(msgs))
	}
}

func TestLoadRequiresColumns(t *testing.T) {
	t.Parallel()

	path := writeCorpus(t, `tweet_created,user_timezone
2015-08-07 09:54:46 -0700,Central Time
`)
	if _, err := NewLoader(zap.NewNop()).Load(path); err == nil {
		t.Fatal("expected an error for missing candidate/text columns")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader(zap.NewNop()).Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestLoadToleratesLatin1Bytes(t *testing.T) {
	t.Parallel()

	// 0xE9 is é in Latin-1 and an invalid UTF-8 sequence on its own
	path := writeCorpus(t, "candidate,text\nDonald Trump,d\xe9bate was fine\n")
	msgs, err := NewLoader(zap.NewNop()).Load(path)
	if err != nil {
		t.Fatalf("Load must tolerate non-UTF8 bytes: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Text != "débate was fine" {
		t.Fatalf("text = %q, want Latin-1 decode", msgs[0].Text)
	}
}

func TestLoadUnparseableTimestampKeepsMessage(t *testing.T) {
	t.Parallel()

	path := writeCorpus(t, `candidate,text,tweet_created
Donald Trump,still usable,not-a-date
`)
	msgs, err := NewLoader(zap.NewNop()).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(msgs) != 1 || msgs[0].HasTimestamp() {
		t.Fatalf("message must survive with zero timestamp, got %+v", msgs)
	}
}
