package parallax

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// LightAngle returns the light's rotation in degrees after timeMS
// milliseconds at speed degrees per millisecond.
func LightAngle(timeMS, speed float64) float64 {
	return timeMS * speed
}

// App owns the process state of the demo and drives it one frame at a time.
//
// Initialization order is: config, logger, resources, device, scene,
// camera and interaction handler. The host (see package ebitendev) calls
// Update once per tick and RenderFrame once per display refresh, on the same
// goroutine.
type App struct {
	cfg      Config
	log      *zap.Logger
	dev      Device
	scene    *ComparisonScene
	camera   *OrbitCamera
	settings *Settings
	input    *InteractionHandler
	script   *Script

	stats       frameStats
	screenshots []string
}

// NewApp builds the scene on dev from res. settings may be shared with a
// control panel; nil creates settings from cfg.
func NewApp(cfg Config, log *zap.Logger, dev Device, res Resources, settings *Settings) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if dev == nil {
		return nil, ErrNoDevice
	}
	if log == nil {
		log = zap.NewNop()
	}
	if settings == nil {
		settings = NewSettings(cfg.HeightScale, cfg.HeightStep)
	}

	scene, err := BuildComparisonScene(dev, res, settings)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	cam := NewOrbitCamera()
	cam.Eye = cfg.EyeVec()
	cam.Target = cfg.TargetVec()
	cam.ResetDuration = cfg.ResetDuration

	input := NewInteractionHandler(cam)
	input.ResetKey = cfg.ResetKey

	log.Info("scene assembled",
		zap.Int("floors", len(scene.Floors)),
		zap.Int("height_uniforms", len(scene.HeightUniforms)),
		zap.Float64("height_scale", settings.HeightScale()),
	)

	return &App{
		cfg:      cfg,
		log:      log,
		dev:      dev,
		scene:    scene,
		camera:   cam,
		settings: settings,
		input:    input,
	}, nil
}

// Scene returns the assembled scene.
func (a *App) Scene() *ComparisonScene { return a.scene }

// Camera returns the orbit camera.
func (a *App) Camera() *OrbitCamera { return a.camera }

// Settings returns the shared live settings.
func (a *App) Settings() *Settings { return a.settings }

// Input returns the interaction handler.
func (a *App) Input() *InteractionHandler { return a.input }

// Config returns the configuration the App was built with.
func (a *App) Config() Config { return a.cfg }

// Logger returns the App's logger.
func (a *App) Logger() *zap.Logger { return a.log }

// SetScript attaches a scripted input runner, advanced by Update.
func (a *App) SetScript(s *Script) { a.script = s }

// Script returns the attached script, or nil.
func (a *App) Script() *Script { return a.script }

// Screenshot queues a labeled screenshot for the host to capture after the
// current frame.
func (a *App) Screenshot(label string) {
	a.screenshots = append(a.screenshots, label)
}

// TakeScreenshots returns and clears the queued screenshot labels.
func (a *App) TakeScreenshots() []string {
	labels := a.screenshots
	a.screenshots = nil
	return labels
}

// Update advances the script, drains one injected input event and advances
// the camera's reset animation by dt seconds. It reports whether an injected
// event was consumed, in which case the host skips real pointer input.
func (a *App) Update(dt float32) bool {
	if a.script != nil {
		a.script.step(a)
	}
	injected := a.input.ProcessInjected()
	a.camera.Update(dt)
	return injected
}

// RenderFrame renders one frame at timeMS milliseconds since start.
func (a *App) RenderFrame(timeMS float64) error {
	w, h := a.dev.Viewport()
	w, h = max(w, 1), max(h, 1)
	a.dev.Clear(ColorFromArray(a.cfg.ClearColor))

	ctx := NewContext(a.dev)
	ctx.Time = timeMS
	ctx.Projection = mgl32.Perspective(mgl32.DegToRad(a.cfg.FOV), float32(w)/float32(h), a.cfg.Near, a.cfg.Far)
	ctx.View = a.camera.ViewMatrix()

	a.scene.SetLightAngle(LightAngle(timeMS, a.cfg.LightSpeed))
	a.scene.SetHeightScale(a.settings.HeightScale())

	start := time.Now()
	err := a.scene.Root.Render(ctx)
	a.stats.record(time.Since(start), ctx.DrawCount())
	if err != nil {
		a.log.Error("render frame", zap.Uint64("frame", a.stats.frames), zap.Error(err))
		return fmt.Errorf("frame %d: %w", a.stats.frames, err)
	}
	a.stats.debugLog(a.log, a.cfg.StatsInterval)
	return nil
}

// Stats returns the stats of the most recent frame.
func (a *App) Stats() FrameStats {
	return FrameStats{
		Frame:         a.stats.frames,
		TraverseTime:  a.stats.traverseTime,
		DrawCallCount: a.stats.drawCallCount,
	}
}

// IsResourceError reports whether err was caused by an invalid device handle.
func IsResourceError(err error) bool {
	return errors.Is(err, ErrInvalidProgram) ||
		errors.Is(err, ErrInvalidTexture) ||
		errors.Is(err, ErrInvalidBuffer)
}
