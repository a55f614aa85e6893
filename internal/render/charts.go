package render

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mzelenka/debate-pulse/internal/models"
)

var (
	green = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	red   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	gray  = color.RGBA{R: 0x8c, G: 0x8c, B: 0x8c, A: 0xff}
	blue  = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
)

// Renderer draws already-aggregated tables into PNG files. It performs no
// aggregation of its own; a chart with no data is skipped, not synthesized.
type Renderer struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// SentimentOverview draws the cross-candidate stacked bar chart of label
// counts, candidates ordered by total message count descending.
func (r *Renderer) SentimentOverview(results []models.CandidateResult, path string) error {
	if len(results) == 0 {
		return nil
	}
	ordered := append([]models.CandidateResult(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Counts.Total() > ordered[j].Counts.Total()
	})

	names := make([]string, len(ordered))
	pos := make(plotter.Values, len(ordered))
	neg := make(plotter.Values, len(ordered))
	neu := make(plotter.Values, len(ordered))
	for i, res := range ordered {
		names[i] = res.Candidate
		pos[i] = float64(res.Counts.Positive)
		neg[i] = float64(res.Counts.Negative)
		neu[i] = float64(res.Counts.Neutral)
	}

	p := plot.New()
	p.Title.Text = "Overall Sentiment Ratio"
	p.Y.Label.Text = "Messages"

	width := vg.Points(18)
	posBar, err := plotter.NewBarChart(pos, width)
	if err != nil {
		return err
	}
	negBar, err := plotter.NewBarChart(neg, width)
	if err != nil {
		return err
	}
	neuBar, err := plotter.NewBarChart(neu, width)
	if err != nil {
		return err
	}
	posBar.Color = green
	negBar.Color = red
	neuBar.Color = gray
	negBar.StackOn(posBar)
	neuBar.StackOn(negBar)

	p.Add(posBar, negBar, neuBar)
	p.Legend.Add("Positive", posBar)
	p.Legend.Add("Negative", negBar)
	p.Legend.Add("Neutral", neuBar)
	p.Legend.Top = true
	p.NominalX(names...)

	return p.Save(12*vg.Inch, 7*vg.Inch, path)
}

// TopWords draws a candidate's top-term table as horizontal bars, highest
// count at the top.
func (r *Renderer) TopWords(candidate string, terms []models.TermCount, path string) error {
	if len(terms) == 0 {
		return nil
	}
	// reversed so the highest-ranked term renders at the top of the axis
	names := make([]string, len(terms))
	counts := make(plotter.Values, len(terms))
	for i, tc := range terms {
		j := len(terms) - 1 - i
		names[j] = tc.Term
		counts[j] = float64(tc.Count)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top Words: %s", candidate)
	bars, err := plotter.NewBarChart(counts, vg.Points(14))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = blue
	p.Add(bars)
	p.NominalY(names...)

	return p.Save(10*vg.Inch, 8*vg.Inch, path)
}

// ScoreDistribution draws the histogram of compound polarity scores.
func (r *Renderer) ScoreDistribution(candidate string, scores []float64, path string) error {
	if len(scores) == 0 {
		return nil
	}
	hist, err := plotter.NewHist(plotter.Values(scores), 20)
	if err != nil {
		return err
	}
	hist.FillColor = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xb0}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Polarization: %s", candidate)
	p.X.Label.Text = "Compound score"
	p.Add(hist)

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// ZoneSentiment draws a candidate's mean polarity per timezone as
// horizontal bars, negative means in red, positive in green.
func (r *Renderer) ZoneSentiment(candidate string, rows []models.ZoneSentiment, path string) error {
	if len(rows) == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sentiment by Timezone: %s", candidate)
	p.X.Label.Text = "Mean compound score"

	names := make([]string, len(rows))
	// one single-value bar per row so each can carry its own color
	for i, row := range rows {
		vals := make(plotter.Values, len(rows))
		vals[i] = row.MeanScore
		bar, err := plotter.NewBarChart(vals, vg.Points(16))
		if err != nil {
			return err
		}
		bar.Horizontal = true
		if row.MeanScore < 0 {
			bar.Color = red
		} else {
			bar.Color = green
		}
		p.Add(bar)
		names[i] = row.Zone
	}
	p.NominalY(names...)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// SentimentOverTime draws a candidate's mean compound score per time bucket
// as a line.
func (r *Renderer) SentimentOverTime(candidate string, series []models.TimePoint, path string) error {
	if len(series) == 0 {
		return nil
	}
	points := make(plotter.XYs, len(series))
	for i, tp := range series {
		points[i].X = float64(tp.Bucket.Unix())
		points[i].Y = tp.Mean
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sentiment Over Time: %s", candidate)
	p.Y.Label.Text = "Avg sentiment"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04"}

	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 0x80, B: 0x80, A: 0xff}
	line.Width = vg.Points(2)
	p.Add(line, plotter.NewGrid())

	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}

// ZoneComparison tiles one stacked-fraction panel per timezone into a
// single image. Zones whose crosstab has no surviving groups render as an
// empty panel.
func (r *Renderer) ZoneComparison(comparisons []models.ZoneComparison, path string) error {
	if len(comparisons) == 0 {
		return nil
	}
	panels := make([]*plot.Plot, len(comparisons))
	for i, zc := range comparisons {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Zone: %s", zc.Zone)
		p.X.Min, p.X.Max = 0, 1
		if len(zc.Candidates) == 0 {
			panels[i] = p
			continue
		}
		names := make([]string, len(zc.Candidates))
		pos := make(plotter.Values, len(zc.Candidates))
		neu := make(plotter.Values, len(zc.Candidates))
		neg := make(plotter.Values, len(zc.Candidates))
		for j, share := range zc.Candidates {
			names[j] = share.Candidate
			pos[j] = share.Positive
			neu[j] = share.Neutral
			neg[j] = share.Negative
		}
		width := vg.Points(12)
		posBar, err := plotter.NewBarChart(pos, width)
		if err != nil {
			return err
		}
		neuBar, err := plotter.NewBarChart(neu, width)
		if err != nil {
			return err
		}
		negBar, err := plotter.NewBarChart(neg, width)
		if err != nil {
			return err
		}
		posBar.Color, neuBar.Color, negBar.Color = green, gray, red
		posBar.Horizontal, neuBar.Horizontal, negBar.Horizontal = true, true, true
		neuBar.StackOn(posBar)
		negBar.StackOn(neuBar)
		p.Add(posBar, neuBar, negBar)
		p.NominalY(names...)
		panels[i] = p
	}

	img := vgimg.New(vg.Length(len(panels))*5*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(panels),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{panels}, tiles, dc)
	for i, p := range panels {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

// MentionHeatmap draws the mention matrix, sources on the Y axis and
// targets on the X axis.
func (r *Renderer) MentionHeatmap(m models.MentionMatrix, path string) error {
	if len(m.Sources) == 0 || len(m.Targets) == 0 {
		return nil
	}
	grid := mentionGrid{m: m}
	pal := palette.Heat(12, 1)
	heat := plotter.NewHeatMap(grid, pal)

	p := plot.New()
	p.Title.Text = "Candidate Mention Heatmap"
	p.Add(heat)
	p.NominalX(m.Targets...)
	p.NominalY(m.Sources...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = draw.XRight

	return p.Save(12*vg.Inch, 10*vg.Inch, path)
}

// mentionGrid adapts a MentionMatrix to plotter.GridXYZ. Row 0 of the
// matrix is drawn at the top of the heatmap.
type mentionGrid struct {
	m models.MentionMatrix
}

func (g mentionGrid) Dims() (int, int) { return len(g.m.Targets), len(g.m.Sources) }
func (g mentionGrid) X(c int) float64  { return float64(c) }
func (g mentionGrid) Y(r int) float64  { return float64(r) }
func (g mentionGrid) Z(c, r int) float64 {
	return float64(g.m.Cells[len(g.m.Sources)-1-r][c])
}
