package aggregate

import (
	"strings"

	"github.com/mzelenka/debate-pulse/internal/corpus"
	"github.com/mzelenka/debate-pulse/internal/models"
)

// Mentions builds the candidate mention matrix. Rows cover every partition
// key, including the unattributed bucket; columns cover real candidates
// only. A cell increments once per message of the source whose lowercased
// text contains the target's surname.
//
// The surname is the last whitespace-delimited token of the display name,
// lowercased, matched as a plain substring with no word boundaries. A
// candidate can mention themself, and a surname that doubles as an English
// word over-counts.
func Mentions(p *corpus.Partition, unattributed string) models.MentionMatrix {
	sources := p.Candidates()
	targets := make([]string, 0, len(sources))
	for _, c := range sources {
		if c != unattributed {
			targets = append(targets, c)
		}
	}

	surnames := make([]string, len(targets))
	for i, t := range targets {
		surnames[i] = Surname(t)
	}

	cells := make([][]int, len(sources))
	for si, source := range sources {
		cells[si] = make([]int, len(targets))
		for _, msg := range p.Messages(source) {
			lower := strings.ToLower(msg.Text)
			for ti, surname := range surnames {
				if surname != "" && strings.Contains(lower, surname) {
					cells[si][ti]++
				}
			}
		}
	}

	return models.MentionMatrix{Sources: sources, Targets: targets, Cells: cells}
}

// Surname returns the lowercased last whitespace-delimited token of a
// display name, or "" for a blank name.
func Surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}
