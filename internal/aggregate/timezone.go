package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mzelenka/debate-pulse/internal/models"
)

// TopZones ranks respondent timezones by message count descending and
// returns the top k. Messages without a timezone are ignored. Ties break
// alphabetically so the ranking is deterministic.
func TopZones(msgs []models.ScoredMessage, k int) []string {
	counts := make(map[string]int)
	for _, m := range msgs {
		if m.Timezone != "" {
			counts[m.Timezone]++
		}
	}
	zones := make([]string, 0, len(counts))
	for z := range counts {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool {
		if counts[zones[i]] != counts[zones[j]] {
			return counts[zones[i]] > counts[zones[j]]
		}
		return zones[i] < zones[j]
	})
	if len(zones) > k {
		zones = zones[:k]
	}
	return zones
}

// ZoneTable builds one candidate's timezone sentiment table: mean compound
// score per top-k zone within the sub-corpus, sorted ascending by mean so a
// presentation layer shows the most positive zone last.
func ZoneTable(msgs []models.ScoredMessage, k int) []models.ZoneSentiment {
	zones := TopZones(msgs, k)
	if len(zones) == 0 {
		return nil
	}
	keep := make(map[string]bool, len(zones))
	for _, z := range zones {
		keep[z] = true
	}
	scores := make(map[string][]float64, len(zones))
	for _, m := range msgs {
		if keep[m.Timezone] {
			scores[m.Timezone] = append(scores[m.Timezone], m.Score)
		}
	}
	rows := make([]models.ZoneSentiment, 0, len(zones))
	for _, z := range zones {
		rows = append(rows, models.ZoneSentiment{
			Zone:      z,
			Messages:  len(scores[z]),
			MeanScore: stat.Mean(scores[z], nil),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MeanScore != rows[j].MeanScore {
			return rows[i].MeanScore < rows[j].MeanScore
		}
		return rows[i].Zone < rows[j].Zone
	})
	return rows
}

// CompareZones builds the cross-candidate crosstab for each of the given
// zones. A (candidate, zone) group whose message count is minGroup or fewer
// is excluded from ranking so small-sample ratios are not presented.
// Surviving groups are ranked ascending by positive fraction and only the
// last keep groups are returned, still in ascending order.
func CompareZones(order []string, byCandidate map[string][]models.ScoredMessage, zones []string, minGroup, keep int) []models.ZoneComparison {
	out := make([]models.ZoneComparison, 0, len(zones))
	for _, zone := range zones {
		var shares []models.ZoneCandidateShare
		for _, cand := range order {
			var counts models.SentimentCounts
			for _, m := range byCandidate[cand] {
				if m.Timezone == zone {
					counts.Add(m.Label)
				}
			}
			total := counts.Total()
			if total <= minGroup {
				continue
			}
			shares = append(shares, models.ZoneCandidateShare{
				Candidate: cand,
				Total:     total,
				Positive:  float64(counts.Positive) / float64(total),
				Neutral:   float64(counts.Neutral) / float64(total),
				Negative:  float64(counts.Negative) / float64(total),
			})
		}
		sort.SliceStable(shares, func(i, j int) bool {
			return shares[i].Positive < shares[j].Positive
		})
		if len(shares) > keep {
			shares = shares[len(shares)-keep:]
		}
		out = append(out, models.ZoneComparison{Zone: zone, Candidates: shares})
	}
	return out
}
