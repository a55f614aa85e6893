package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/mzelenka/debate-pulse/internal/aggregate"
	"github.com/mzelenka/debate-pulse/internal/corpus"
	"github.com/mzelenka/debate-pulse/internal/models"
	"github.com/mzelenka/debate-pulse/internal/render"
	"github.com/mzelenka/debate-pulse/internal/sentiment"
	"github.com/mzelenka/debate-pulse/internal/textproc"
	"github.com/mzelenka/debate-pulse/internal/topics"
)

// State is the driver's position in the run lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePerCandidate
	StateCrossAggregate
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePerCandidate:
		return "per-candidate"
	case StateCrossAggregate:
		return "cross-aggregate"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// ErrNoMessages aborts the run when ingestion yields nothing usable.
var ErrNoMessages = errors.New("report: no usable messages after filtering")

// Options are the run knobs resolved from configuration.
type Options struct {
	OutputDir      string
	TopZones       int           // timezones kept in comparison views
	MinGroupSize   int           // (candidate, zone) groups at or below this are excluded
	ChartThreshold int           // candidates need more messages than this for charts
	Workers        int           // per-candidate analysis parallelism
	TimeBucket     time.Duration // sentiment-over-time resample interval
	Unattributed   string        // pseudo-candidate bucket name
}

// DefaultOptions mirrors the report defaults.
func DefaultOptions() Options {
	return Options{
		OutputDir:      "results",
		TopZones:       5,
		MinGroupSize:   10,
		ChartThreshold: 10,
		Workers:        4,
		TimeBucket:     10 * time.Minute,
		Unattributed:   "No candidate mentioned",
	}
}

// Driver orchestrates one batch run: load, per-candidate analysis,
// cross-candidate aggregation, then hand the numeric tables to the renderer.
type Driver struct {
	opts       Options
	loader     *corpus.Loader
	normalizer *textproc.Normalizer
	classifier *sentiment.Classifier
	summarizer *topics.Summarizer
	renderer   *render.Renderer
	logger     *zap.Logger
	state      State
}

func NewDriver(
	opts Options,
	loader *corpus.Loader,
	normalizer *textproc.Normalizer,
	classifier *sentiment.Classifier,
	summarizer *topics.Summarizer,
	renderer *render.Renderer,
	logger *zap.Logger,
) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Driver{
		opts:       opts,
		loader:     loader,
		normalizer: normalizer,
		classifier: classifier,
		summarizer: summarizer,
		renderer:   renderer,
		logger:     logger.With(zap.String("run_id", uuid.NewString())),
		state:      StateIdle,
	}
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() State { return d.state }

func (d *Driver) setState(s State) {
	d.state = s
	d.logger.Info("state transition", zap.Stringer("state", s))
}

// Run executes the whole pipeline for one input file. Loading failures are
// fatal; a single candidate's failure is isolated into its result record and
// the batch continues.
func (d *Driver) Run(ctx context.Context, inputPath string) error {
	d.setState(StateLoading)
	messages, err := d.loader.Load(inputPath)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return ErrNoMessages
	}
	partition := corpus.Split(messages)
	d.logger.Info("corpus partitioned",
		zap.Int("candidates", partition.Len()),
		zap.Int("messages", partition.Size()),
	)

	d.setState(StatePerCandidate)
	candidates := partition.Candidates()
	results := make([]models.CandidateResult, len(candidates))
	scored := make([][]models.ScoredMessage, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)
	for i, name := range candidates {
		i, name := i, name
		g.Go(func() error {
			res, msgs := d.analyzeCandidate(gctx, name, partition.Messages(name))
			results[i] = res
			scored[i] = msgs
			// a candidate failure is carried in the result, never
			// returned, so siblings are not cancelled
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		if res.Err != nil {
			d.logger.Error("candidate analysis failed, skipping",
				zap.String("candidate", res.Candidate),
				zap.Error(res.Err),
			)
			continue
		}
		d.logger.Info("candidate analyzed",
			zap.String("candidate", res.Candidate),
			zap.Int("messages", res.Messages),
			zap.Int("positive", res.Counts.Positive),
			zap.Int("negative", res.Counts.Negative),
			zap.Int("neutral", res.Counts.Neutral),
		)
	}

	d.setState(StateCrossAggregate)
	byCandidate := make(map[string][]models.ScoredMessage, len(candidates))
	var all []models.ScoredMessage
	for i, name := range candidates {
		byCandidate[name] = scored[i]
		all = append(all, scored[i]...)
	}
	zones := aggregate.TopZones(all, d.opts.TopZones)
	comparison := aggregate.CompareZones(candidates, byCandidate, zones, d.opts.MinGroupSize, d.opts.TopZones)
	mentions := aggregate.Mentions(partition, d.opts.Unattributed)

	d.renderAll(results, byCandidate, comparison, mentions)

	d.setState(StateDone)
	return nil
}

// analyzeCandidate classifies and summarizes one sub-corpus. Panics inside
// the analysis are converted into the result's Err field.
func (d *Driver) analyzeCandidate(ctx context.Context, name string, msgs []models.Message) (res models.CandidateResult, scored []models.ScoredMessage) {
	res = models.CandidateResult{Candidate: name, Messages: len(msgs)}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("analysis panic: %v", r)
		}
	}()

	scored = make([]models.ScoredMessage, 0, len(msgs))
	var allTokens, posTokens, negTokens []string
	for _, m := range msgs {
		label, score := d.classifier.ClassifyText(ctx, m.Text)
		scored = append(scored, models.ScoredMessage{Message: m, Score: score, Label: label})
		res.Counts.Add(label)
		res.Scores = append(res.Scores, score)

		tokens := d.normalizer.Normalize(m.Text)
		allTokens = append(allTokens, tokens...)
		switch label {
		case models.Positive:
			posTokens = append(posTokens, tokens...)
		case models.Negative:
			negTokens = append(negTokens, tokens...)
		}
	}

	res.Overall = d.summarizer.Summarize(allTokens)
	res.Positive = d.summarizer.Summarize(posTokens)
	res.Negative = d.summarizer.Summarize(negTokens)
	return res, scored
}

// renderAll hands every aggregated table to the renderer. A failed write is
// reported and the run moves on to the next artifact; the computed tables
// are never touched by render errors.
func (d *Driver) renderAll(
	results []models.CandidateResult,
	byCandidate map[string][]models.ScoredMessage,
	comparison []models.ZoneComparison,
	mentions models.MentionMatrix,
) {
	imageDir := filepath.Join(d.opts.OutputDir, "images")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		d.logger.Error("cannot create image directory, skipping all charts",
			zap.String("dir", imageDir), zap.Error(err))
		return
	}
	emit := func(artifact string, err error) {
		if err != nil {
			d.logger.Error("artifact failed", zap.String("artifact", artifact), zap.Error(err))
		} else {
			d.logger.Info("artifact written", zap.String("artifact", artifact))
		}
	}

	ok := make([]models.CandidateResult, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			ok = append(ok, res)
		}
	}

	overview := filepath.Join(imageDir, "sentiment_overview.png")
	emit(overview, d.renderer.SentimentOverview(ok, overview))

	for _, res := range ok {
		if res.Messages <= d.opts.ChartThreshold {
			continue
		}
		safe := strings.ReplaceAll(res.Candidate, " ", "_")
		msgs := byCandidate[res.Candidate]

		p := filepath.Join(imageDir, safe+"_time.png")
		emit(p, d.renderer.SentimentOverTime(res.Candidate, d.timeSeries(msgs), p))

		p = filepath.Join(imageDir, safe+"_words.png")
		emit(p, d.renderer.TopWords(res.Candidate, res.Overall.TopTerms, p))

		p = filepath.Join(imageDir, safe+"_dist.png")
		emit(p, d.renderer.ScoreDistribution(res.Candidate, res.Scores, p))

		p = filepath.Join(imageDir, safe+"_timezone.png")
		emit(p, d.renderer.ZoneSentiment(res.Candidate, aggregate.ZoneTable(msgs, d.opts.TopZones), p))
	}

	cmpPath := filepath.Join(imageDir, "timezone_comparison.png")
	emit(cmpPath, d.renderer.ZoneComparison(comparison, cmpPath))

	heatPath := filepath.Join(imageDir, "interaction_heatmap.png")
	emit(heatPath, d.renderer.MentionHeatmap(mentions, heatPath))
}

// timeSeries resamples a sub-corpus into mean compound score per time
// bucket. Messages without a parseable timestamp are skipped; the series is
// empty when none carry one.
func (d *Driver) timeSeries(msgs []models.ScoredMessage) []models.TimePoint {
	buckets := make(map[int64][]float64)
	for _, m := range msgs {
		if !m.HasTimestamp() {
			continue
		}
		key := m.Timestamp.Truncate(d.opts.TimeBucket).Unix()
		buckets[key] = append(buckets[key], m.Score)
	}
	if len(buckets) == 0 {
		return nil
	}
	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	series := make([]models.TimePoint, 0, len(keys))
	for _, k := range keys {
		series = append(series, models.TimePoint{
			Bucket: time.Unix(k, 0).UTC(),
			Mean:   stat.Mean(buckets[k], nil),
		})
	}
	return series
}
