package scope

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"

	"github.com/alex-nemo/tinyremote/pkg/nec"
)

var (
	backgroundColor = color.RGBA{R: 20, G: 24, B: 28, A: 255}
	gridColor       = color.RGBA{R: 60, G: 70, B: 80, A: 255}
	traceColor      = color.RGBA{R: 255, G: 170, B: 40, A: 255}
	labelColor      = color.RGBA{R: 170, G: 180, B: 190, A: 255}
)

// pulseRenderer renders the pulse trace widget.
type pulseRenderer struct {
	viewer *PulseViewer

	// Background
	background *canvas.Rectangle

	// Rebuilt on every refresh
	traceLines []*canvas.Line
	gridLines  []*canvas.Line
	gridTexts  []*canvas.Text
	title      *canvas.Text

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

func newPulseRenderer(v *PulseViewer) *pulseRenderer {
	r := &pulseRenderer{
		viewer:     v,
		background: canvas.NewRectangle(backgroundColor),
	}
	r.objects = []fyne.CanvasObject{r.background}
	return r
}

// MinSize returns the minimum size of the widget.
func (r *pulseRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 160)
}

// Layout arranges the widget components.
func (r *pulseRenderer) Layout(size fyne.Size) {
	// Background fills entire widget
	r.background.Resize(size)

	if r.lastSize.Width != size.Width || r.lastSize.Height != size.Height {
		r.lastSize = size
		// Size changed, redraw with the new dimensions
		r.viewer.BaseWidget.Refresh()
	}
}

// Refresh updates the widget display.
func (r *pulseRenderer) Refresh() {
	r.viewer.mu.RLock()
	pulses := r.viewer.pulses
	raw := r.viewer.raw
	repeat := r.viewer.repeat
	stamp := r.viewer.stamp
	r.viewer.mu.RUnlock()

	size := r.viewer.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	// Clear old objects (but keep background)
	r.objects = []fyne.CanvasObject{r.background}
	r.traceLines = r.traceLines[:0]
	r.gridLines = r.gridLines[:0]
	r.gridTexts = r.gridTexts[:0]

	marginLeft := float32(10.0)
	marginRight := float32(10.0)
	marginTop := float32(28.0)
	marginBottom := float32(24.0)

	plotWidth := size.Width - marginLeft - marginRight
	plotHeight := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop

	total := nec.Duration(pulses)
	r.drawTitle(plotX, pulses, raw, repeat, stamp)
	if total <= 0 {
		canvas.Refresh(r.viewer)
		return
	}

	r.drawGrid(plotX, plotY, plotWidth, plotHeight, total)
	r.drawTrace(plotX, plotY, plotWidth, plotHeight, pulses, total)

	canvas.Refresh(r.viewer)
}

// drawTitle renders the one-line transmission summary above the trace.
func (r *pulseRenderer) drawTitle(plotX float32, pulses []nec.Pulse, raw uint32, repeat bool, stamp time.Time) {
	var text string
	switch {
	case len(pulses) == 0:
		text = "no transmission"
	case repeat:
		text = fmt.Sprintf("%s  repeat code", stamp.Format("15:04:05.000"))
	default:
		frame, _ := nec.FromRaw(raw)
		text = fmt.Sprintf("%s  frame %#08x  addr %#02x cmd %#02x",
			stamp.Format("15:04:05.000"), raw, frame.Addr, frame.Cmd)
	}

	r.title = canvas.NewText(text, labelColor)
	r.title.TextSize = 12
	r.title.TextStyle = fyne.TextStyle{Monospace: true}
	r.title.Move(fyne.NewPos(plotX, 6))
	r.objects = append(r.objects, r.title)
}

// drawGrid draws vertical time-division lines with millisecond labels.
func (r *pulseRenderer) drawGrid(plotX, plotY, plotWidth, plotHeight float32, total time.Duration) {
	totalMs := float32(total.Microseconds()) / 1000.0

	// Pick a grid step that yields on the order of ten divisions, snapped
	// to a 1/2/5 decade.
	step := math32.Pow(10, math32.Floor(math32.Log10(totalMs/10)))
	switch {
	case totalMs/step > 50:
		step *= 10
	case totalMs/step > 20:
		step *= 5
	case totalMs/step > 10:
		step *= 2
	}

	for ms := float32(0); ms <= totalMs; ms += step {
		x := plotX + plotWidth*ms/totalMs

		line := canvas.NewLine(gridColor)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(x, plotY)
		line.Position2 = fyne.NewPos(x, plotY+plotHeight)
		r.gridLines = append(r.gridLines, line)
		r.objects = append(r.objects, line)

		label := canvas.NewText(fmt.Sprintf("%gms", ms), labelColor)
		label.TextSize = 10
		label.Move(fyne.NewPos(x+2, plotY+plotHeight+4))
		r.gridTexts = append(r.gridTexts, label)
		r.objects = append(r.objects, label)
	}
}

// drawTrace draws the mark/space waveform: high while the carrier is on.
func (r *pulseRenderer) drawTrace(plotX, plotY, plotWidth, plotHeight float32, pulses []nec.Pulse, total time.Duration) {
	yHigh := plotY + plotHeight*0.2
	yLow := plotY + plotHeight*0.8

	xAt := func(t time.Duration) float32 {
		return plotX + plotWidth*float32(t)/float32(total)
	}

	at := time.Duration(0)
	for _, p := range pulses {
		x0 := xAt(at)
		x1 := xAt(at + p.Mark)

		// Rising edge, high segment, falling edge.
		r.addTraceLine(x0, yLow, x0, yHigh)
		r.addTraceLine(x0, yHigh, x1, yHigh)
		r.addTraceLine(x1, yHigh, x1, yLow)

		at += p.Mark
		if p.Space > 0 {
			x2 := xAt(at + p.Space)
			r.addTraceLine(x1, yLow, x2, yLow)
			at += p.Space
		}
	}
}

func (r *pulseRenderer) addTraceLine(x0, y0, x1, y1 float32) {
	line := canvas.NewLine(traceColor)
	line.StrokeWidth = 1.5
	line.Position1 = fyne.NewPos(x0, y0)
	line.Position2 = fyne.NewPos(x1, y1)
	r.traceLines = append(r.traceLines, line)
	r.objects = append(r.objects, line)
}

// Objects returns the canvas objects to render.
func (r *pulseRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up renderer resources.
func (r *pulseRenderer) Destroy() {}
