package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/mzelenka/debate-pulse/internal/models"
)

// Column names expected in the input file. Candidate and text are required;
// the other two degrade their outputs gracefully when absent.
const (
	colCandidate = "candidate"
	colText      = "text"
	colCreated   = "tweet_created"
	colTimezone  = "user_timezone"
)

// tweet_created format, e.g. "2015-08-07 09:54:46 -0700"
const createdLayout = "2006-01-02 15:04:05 -0700"

// ErrMissingColumns is returned when the input lacks a required column.
var ErrMissingColumns = errors.New("corpus: input is missing required columns candidate/text")

// Loader reads the delimited input file into typed messages, pruning rows
// that are unusable for analysis.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the whole file. The byte stream is decoded as Latin-1 so
// non-UTF8 byte sequences never fail ingestion. Rows missing the candidate
// or text value are dropped silently; rows with unparseable optional fields
// keep the message and lose the field.
func (l *Loader) Load(path string) ([]models.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("corpus: read header: %w", err)
	}
	idx := columnIndex(header)
	candIdx, haveCand := idx[colCandidate]
	textIdx, haveText := idx[colText]
	if !haveCand || !haveText {
		return nil, ErrMissingColumns
	}
	createdIdx, haveCreated := idx[colCreated]
	zoneIdx, haveZone := idx[colTimezone]

	var messages []models.Message
	dropped := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a malformed row is pruned, not fatal
			dropped++
			continue
		}
		candidate := strings.TrimSpace(field(record, candIdx))
		text := strings.TrimSpace(field(record, textIdx))
		if candidate == "" || text == "" {
			dropped++
			continue
		}
		m := models.Message{Candidate: candidate, Text: text}
		if haveCreated {
			if ts, err := time.Parse(createdLayout, strings.TrimSpace(field(record, createdIdx))); err == nil {
				m.Timestamp = ts
			}
		}
		if haveZone {
			m.Timezone = strings.TrimSpace(field(record, zoneIdx))
		}
		messages = append(messages, m)
	}

	l.logger.Info("corpus loaded",
		zap.String("path", path),
		zap.Int("messages", len(messages)),
		zap.Int("dropped", dropped),
	)
	return messages, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return idx
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
