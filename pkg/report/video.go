package report

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/edp1096/toy-spme/pkg/device"
	"github.com/icza/mjpeg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

type VideoOptions struct {
	Width  int // pixels
	Height int
	FPS    int
	Frames int // upper bound on frames; history is decimated to fit
}

func DefaultVideoOptions() VideoOptions {
	return VideoOptions{Width: 640, Height: 360, FPS: 25, Frames: 500}
}

// WriteHistoryVideo renders the electrolyte concentration across the
// separator as an MJPEG AVI, one frame per retained snapshot. thickness is
// the separator thickness in metres.
func WriteHistoryVideo(path string, time []float64, history [][device.ElectrolyteNodes]float64, thickness float64, o VideoOptions) error {
	if len(history) == 0 {
		return fmt.Errorf("no electrolyte history to render")
	}
	if len(time) != len(history) {
		return fmt.Errorf("history has %d snapshots for %d times", len(history), len(time))
	}
	if o.Width <= 0 || o.Height <= 0 || o.FPS <= 0 {
		return fmt.Errorf("invalid video size %dx%d at %d fps", o.Width, o.Height, o.FPS)
	}

	// Fixed axes keep frames comparable.
	lo, hi := history[0][0], history[0][0]
	for _, snapshot := range history {
		lo = min(lo, floats.Min(snapshot[:]))
		hi = max(hi, floats.Max(snapshot[:]))
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}

	position := make([]float64, device.ElectrolyteNodes)
	dx := thickness / device.ElectrolyteNodes
	floats.Span(position, 0.5*dx*1e6, (thickness-0.5*dx)*1e6)

	videoWriter, err := mjpeg.New(path, int32(o.Width), int32(o.Height), int32(o.FPS))
	if err != nil {
		return fmt.Errorf("creating MJPEG writer: %w", err)
	}

	var buf bytes.Buffer
	jpegOptions := &jpeg.Options{Quality: 75}
	step := stride(len(history), o.Frames)

	for i := 0; i < len(history); i += step {
		img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
		c := vgimg.NewWith(vgimg.UseImage(img))

		p, err := historyFrame(time[i], position, history[i][:], lo, hi)
		if err != nil {
			videoWriter.Close()
			return err
		}
		p.Draw(draw.New(c))

		buf.Reset()
		if err := jpeg.Encode(&buf, c.Image(), jpegOptions); err != nil {
			videoWriter.Close()
			return fmt.Errorf("encoding frame %d: %w", i, err)
		}
		if err := videoWriter.AddFrame(buf.Bytes()); err != nil {
			videoWriter.Close()
			return fmt.Errorf("adding frame %d: %w", i, err)
		}
	}

	return videoWriter.Close()
}

func historyFrame(t float64, position, concentration []float64, lo, hi float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Electrolyte at t = %.1f s", t)
	p.X.Label.Text = "Position from negative electrode (um)"
	p.Y.Label.Text = "Concentration (mol/m^3)"
	p.Y.Min, p.Y.Max = lo, hi

	points := make(plotter.XYs, len(position))
	for i := range points {
		points[i].X = position[i]
		points[i].Y = concentration[i]
	}
	line, marks, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, err
	}
	p.Add(line, marks, plotter.NewGrid())
	return p, nil
}
