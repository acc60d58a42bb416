package ebitendev

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/parallax"
	"go.uber.org/zap"
)

// Keys handled by the Game itself rather than the InteractionHandler.
const (
	keyHeightDown = ebiten.KeyBracketLeft
	keyHeightUp   = ebiten.KeyBracketRight
	keyPanel      = ebiten.KeyH
	keyScreenshot = ebiten.KeyF12
)

// Game hosts an App in an Ebitengine window. It implements ebiten.Game.
type Game struct {
	app    *parallax.App
	dev    *Device
	panel  *Panel
	log    *zap.Logger
	start  time.Time
	last   time.Time
	err    error
	keys   []ebiten.Key
	cursor [2]int

	// ScreenshotDir receives F12 and scripted screenshots.
	ScreenshotDir string
	// ExitOnScriptDone ends the game once an attached script finishes.
	ExitOnScriptDone bool
}

// NewGame creates a game rendering app through dev. panel may be nil.
func NewGame(app *parallax.App, dev *Device, panel *Panel) *Game {
	return &Game{
		app:           app,
		dev:           dev,
		panel:         panel,
		log:           app.Logger().Named("game"),
		start:         time.Now(),
		last:          time.Now(),
		ScreenshotDir: app.Config().ScreenshotDir,
	}
}

// Update polls input and advances the App. A render error from the previous
// Draw is returned here, which stops the game.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	now := time.Now()
	dt := tickDelta(ebiten.TPS(), now.Sub(g.last))
	g.last = now
	if !g.app.Update(dt) {
		g.pollPointer()
	}
	g.pollKeys()

	if g.ExitOnScriptDone {
		if s := g.app.Script(); s != nil && s.Done() {
			return ebiten.Termination
		}
	}
	return nil
}

// maxTickDelta bounds a measured tick after a stall, such as a dragged window.
const maxTickDelta = 250 * time.Millisecond

// tickDelta returns the seconds one Update advances. With a fixed tick rate
// that is 1/tps; when ticks follow the frame rate (ebiten.SyncWithFPS) the
// measured elapsed time is used, clamped to [0, maxTickDelta].
func tickDelta(tps int, elapsed time.Duration) float32 {
	if tps > 0 {
		return 1 / float32(tps)
	}
	return float32(min(max(elapsed, 0), maxTickDelta).Seconds())
}

// pollPointer forwards mouse state changes to the interaction handler.
func (g *Game) pollPointer() {
	h := g.app.Input()
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	for _, b := range []struct {
		eb ebiten.MouseButton
		pb parallax.MouseButton
	}{
		{ebiten.MouseButtonLeft, parallax.MouseButtonLeft},
		{ebiten.MouseButtonRight, parallax.MouseButtonRight},
		{ebiten.MouseButtonMiddle, parallax.MouseButtonMiddle},
	} {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			h.PointerDown(x, y, b.pb)
		}
	}
	if mx != g.cursor[0] || my != g.cursor[1] {
		h.PointerMove(x, y)
		g.cursor = [2]int{mx, my}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.PointerUp(x, y)
	}
}

// pollKeys handles panel keys and forwards the rest to the handler.
func (g *Game) pollKeys() {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		switch k {
		case keyHeightDown:
			g.app.Settings().AdjustHeightScale(-1)
		case keyHeightUp:
			g.app.Settings().AdjustHeightScale(1)
		case keyPanel:
			if g.panel != nil {
				g.panel.Visible = !g.panel.Visible
			}
		case keyScreenshot:
			g.app.Screenshot("f12")
		default:
			g.app.Input().KeyPress(k.String())
		}
	}
}

// Draw renders one frame, the panel and any queued screenshots.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.err != nil {
		return
	}
	b := screen.Bounds()
	g.dev.SetViewport(b.Dx(), b.Dy())

	t := float64(time.Since(g.start)) / float64(time.Millisecond)
	if err := g.app.RenderFrame(t); err != nil {
		g.err = err
		return
	}
	g.dev.Flush(screen)

	// Screenshots exclude the panel.
	if labels := g.app.TakeScreenshots(); len(labels) > 0 {
		paths, err := writeScreenshots(screen, g.ScreenshotDir, labels)
		for _, p := range paths {
			g.log.Info("screenshot written", zap.String("path", p))
		}
		if err != nil {
			g.log.Warn("screenshot", zap.Error(err))
		}
	}
	if g.panel != nil {
		g.panel.Draw(screen, g.app.Stats())
	}
}

// Layout tracks the window size so the drawing buffer always matches it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.dev.SetViewport(outsideWidth, outsideHeight)
	return max(outsideWidth, 1), max(outsideHeight, 1)
}
