package ebitendev

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/parallax"
	"golang.org/x/image/font/gofont/goregular"
)

// Panel is the on-screen control panel: it shows the live height scale and
// the key bindings that edit it.
type Panel struct {
	Visible bool

	settings *parallax.Settings
	face     *text.GoTextFace
	lh       float64 // cached line height
}

// NewPanel creates a panel editing settings, drawn with Go Regular at size.
func NewPanel(settings *parallax.Settings, size float64) (*Panel, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitendev: failed to parse panel font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Panel{
		Visible:  true,
		settings: settings,
		face:     face,
		lh:       m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// Lines returns the panel text for the given frame stats.
func (p *Panel) Lines(stats parallax.FrameStats) []string {
	return []string{
		fmt.Sprintf("height scale: %.3f   [ / ] adjust", p.settings.HeightScale()),
		"drag: rotate   R: reset   H: panel   F12: screenshot",
		fmt.Sprintf("FPS %.1f   TPS %.1f   draws %d", ebiten.ActualFPS(), ebiten.ActualTPS(), stats.DrawCallCount),
	}
}

// Draw draws the panel in the top-left corner of screen.
func (p *Panel) Draw(screen *ebiten.Image, stats parallax.FrameStats) {
	if !p.Visible {
		return
	}
	lines := p.Lines(stats)
	const pad = 8
	w := 0.0
	for _, l := range lines {
		w = max(w, text.Advance(l, p.face))
	}
	h := p.lh * float64(len(lines))
	// Semi-transparent background for readability
	vector.DrawFilledRect(screen, 0, 0, float32(w+2*pad), float32(h+2*pad), color.RGBA{0, 0, 0, 160}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(pad, pad)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = p.lh
	text.Draw(screen, strings.Join(lines, "\n"), p.face, op)
}
