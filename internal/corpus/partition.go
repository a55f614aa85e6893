package corpus

import "github.com/mzelenka/debate-pulse/internal/models"

// Partition groups messages by candidate name. Keys appear in first-seen
// order; every input message lands in exactly one sub-corpus, so the union
// of the sub-corpora equals the input and they are pairwise disjoint.
type Partition struct {
	byCandidate map[string][]models.Message
	order       []string
}

// Split builds the per-candidate partition. Rows unusable for partitioning
// were already pruned by the loader, so every message here has a candidate.
func Split(messages []models.Message) *Partition {
	p := &Partition{byCandidate: make(map[string][]models.Message)}
	for _, m := range messages {
		if _, seen := p.byCandidate[m.Candidate]; !seen {
			p.order = append(p.order, m.Candidate)
		}
		p.byCandidate[m.Candidate] = append(p.byCandidate[m.Candidate], m)
	}
	return p
}

// Candidates returns the candidate names in first-seen order.
func (p *Partition) Candidates() []string { return p.order }

// Messages returns one candidate's sub-corpus in input order.
func (p *Partition) Messages(candidate string) []models.Message {
	return p.byCandidate[candidate]
}

// Len returns the number of distinct candidates.
func (p *Partition) Len() int { return len(p.order) }

// Size returns the total number of partitioned messages.
func (p *Partition) Size() int {
	n := 0
	for _, msgs := range p.byCandidate {
		n += len(msgs)
	}
	return n
}

// All iterates sub-corpora in first-seen candidate order.
func (p *Partition) All(fn func(candidate string, msgs []models.Message)) {
	for _, name := range p.order {
		fn(name, p.byCandidate[name])
	}
}
