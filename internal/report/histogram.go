package report

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"moviedb/internal/fileutil"
)

// DefaultBins is the bin count used when HistogramOptions.Bins is unset.
const DefaultBins = 10

// ErrNoRatings is returned when a histogram is requested for an empty collection.
var ErrNoRatings = errors.New("no ratings to plot")

var (
	barFill   = color.RGBA{R: 135, G: 206, B: 235, A: 255} // skyblue
	barEdge   = color.RGBA{A: 255}
	gridColor = color.RGBA{R: 176, G: 176, B: 176, A: 255}
	axisColor = color.RGBA{A: 255}
)

// Bin is one histogram bucket covering [Lo, Hi); the last bin also includes Hi.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// HistogramOptions controls the rendered image.
type HistogramOptions struct {
	Width  int
	Height int
	Bins   int
}

func (o HistogramOptions) withDefaults() HistogramOptions {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	return o
}

// ComputeBins splits ratings into n equal-width bins between the minimum and
// maximum rating. When every rating is equal the range is widened by 0.5 on
// each side so the single value lands in a bin of non-zero width.
func ComputeBins(ratings []float64, n int) ([]Bin, error) {
	if len(ratings) == 0 {
		return nil, ErrNoRatings
	}
	if n <= 0 {
		return nil, fmt.Errorf("bin count must be positive, got %d", n)
	}
	lo, hi := ratings[0], ratings[0]
	for _, r := range ratings[1:] {
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(n)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi

	for _, r := range ratings {
		idx := int((r - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Count++
	}
	return bins, nil
}

// RenderHistogram draws a bar chart of ratings as PNG: sky-blue bars with
// black edges over dashed horizontal gridlines.
func RenderHistogram(w io.Writer, ratings []float64, opts HistogramOptions) error {
	opts = opts.withDefaults()
	bins, err := ComputeBins(ratings, opts.Bins)
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	margin := opts.Width / 10
	plot := image.Rect(margin, opts.Height/10, opts.Width-margin/2, opts.Height-opts.Height/10)
	if plot.Dx() < opts.Bins || plot.Dy() < 10 {
		return fmt.Errorf("image %dx%d too small for %d bins", opts.Width, opts.Height, opts.Bins)
	}

	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	// Leave headroom above the tallest bar.
	scale := float64(plot.Dy()) / (float64(maxCount) * 1.05)

	step := gridStep(maxCount)
	for tick := step; tick <= maxCount; tick += step {
		y := plot.Max.Y - int(math.Round(float64(tick)*scale))
		dashedHLine(img, plot.Min.X, plot.Max.X, y, gridColor)
	}

	barWidth := float64(plot.Dx()) / float64(len(bins))
	for i, b := range bins {
		if b.Count == 0 {
			continue
		}
		x0 := plot.Min.X + int(math.Round(float64(i)*barWidth))
		x1 := plot.Min.X + int(math.Round(float64(i+1)*barWidth))
		y0 := plot.Max.Y - int(math.Round(float64(b.Count)*scale))
		bar := image.Rect(x0, y0, x1, plot.Max.Y)
		draw.Draw(img, bar, image.NewUniform(barFill), image.Point{}, draw.Src)
		outline(img, bar, barEdge)
	}

	hLine(img, plot.Min.X, plot.Max.X, plot.Max.Y, axisColor)
	vLine(img, plot.Min.X, plot.Min.Y, plot.Max.Y, axisColor)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteHistogram renders ratings to a PNG file at path.
func WriteHistogram(path string, ratings []float64, opts HistogramOptions) error {
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		return RenderHistogram(w, ratings, opts)
	})
}

// gridStep picks a whole-number tick spacing giving at most ten gridlines.
func gridStep(maxCount int) int {
	for mag := 1; ; mag *= 10 {
		for _, s := range []int{1, 2, 5} {
			if maxCount/(s*mag) <= 10 {
				return s * mag
			}
		}
	}
}

func hLine(img draw.Image, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func vLine(img draw.Image, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

func dashedHLine(img draw.Image, x0, x1, y int, c color.Color) {
	const dash, gap = 6, 4
	for x := x0; x <= x1; x++ {
		if (x-x0)%(dash+gap) < dash {
			img.Set(x, y, c)
		}
	}
}

func outline(img draw.Image, r image.Rectangle, c color.Color) {
	hLine(img, r.Min.X, r.Max.X-1, r.Min.Y, c)
	hLine(img, r.Min.X, r.Max.X-1, r.Max.Y-1, c)
	vLine(img, r.Min.X, r.Min.Y, r.Max.Y-1, c)
	vLine(img, r.Max.X-1, r.Min.Y, r.Max.Y-1, c)
}
