// Parallaxmapping renders four floors side by side, one per shading
// technique (diffuse only, normal mapping, simple parallax mapping and
// parallax occlusion mapping), lit by a light circling above them.
//
// Drag with the left mouse button to orbit the camera, press R to reset it,
// [ and ] to change the height scale, H to toggle the panel and F12 for a
// screenshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/parallax"
	"github.com/phanxgames/parallax/assets"
	"github.com/phanxgames/parallax/ebitendev"
	"go.uber.org/zap"
)

const panelFontSize = 14

func main() {
	configPath := flag.String("config", "", "TOML config file")
	assetsDir := flag.String("assets", "", "directory with shaders/ and textures/ (default: embedded)")
	scriptPath := flag.String("script", "", "JSON input script to play back")
	exitAfterScript := flag.Bool("exit", false, "exit once the script has finished")
	debug := flag.Bool("debug", false, "debug logging and frame stats")
	flag.Parse()

	if err := run(*configPath, *assetsDir, *scriptPath, *exitAfterScript, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "parallaxmapping:", err)
		os.Exit(1)
	}
}

func run(configPath, assetsDir, scriptPath string, exitAfterScript, debug bool) error {
	cfg := parallax.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = parallax.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if assetsDir != "" {
		cfg.AssetsDir = assetsDir
	}
	if debug {
		cfg.LogLevel = "debug"
		if cfg.StatsInterval == 0 {
			cfg.StatsInterval = 300
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := parallax.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var fsys fs.FS = assets.Embedded
	if cfg.AssetsDir != "" {
		fsys = os.DirFS(cfg.AssetsDir)
	}
	loader := &assets.Loader{FS: fsys, Log: log.Named("assets")}
	res, err := loader.Load(context.Background(), assets.DefaultManifest())
	if err != nil {
		log.Error("loading resources", zap.Error(err))
		return err
	}

	dev := ebitendev.New(ebitendev.Options{TextureSize: cfg.TextureSize, Log: log})
	dev.SetViewport(cfg.Width, cfg.Height)

	settings := parallax.NewSettings(cfg.HeightScale, cfg.HeightStep)
	app, err := parallax.NewApp(cfg, log, dev, res, settings)
	if err != nil {
		log.Error("starting", zap.Error(err))
		return err
	}
	if scriptPath != "" {
		script, err := parallax.LoadScript(scriptPath)
		if err != nil {
			return err
		}
		app.SetScript(script)
	}

	var panel *ebitendev.Panel
	if cfg.ShowPanel {
		if panel, err = ebitendev.NewPanel(settings, panelFontSize); err != nil {
			return err
		}
	}
	game := ebitendev.NewGame(app, dev, panel)
	game.ExitOnScriptDone = exitAfterScript

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Error("render loop", zap.Error(err))
		return err
	}
	return nil
}
