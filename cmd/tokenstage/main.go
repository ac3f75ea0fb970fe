package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tokenstage/internal/config"
	"tokenstage/internal/editor"
	"tokenstage/internal/layout"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logFile, err := cfg.SetupLog()
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.WindowWidth), int32(cfg.WindowHeight), "tokenstage")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.TargetFPS))
	// Escape deselects
	rl.SetExitKey(0)
	editor.InitStyle()

	ed := editor.New(ctx, editor.Options{
		Width:         float32(cfg.WindowWidth),
		Height:        float32(cfg.WindowHeight),
		PickDistance:  cfg.PickDistance,
		MaxTokenSize:  cfg.MaxTokenSize,
		ImportWorkers: cfg.ImportWorkers,
		AssetDir:      cfg.AssetDir,
	}, editor.RaylibLoader{})
	defer ed.Unload()

	f, err := layout.Load(cfg.Layout)
	if err != nil {
		log.Printf("layout: skipping %s: %v", cfg.Layout, err)
	} else {
		ed.ApplyLayout(f)
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		ed.SetViewport(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		ed.Tick(rl.GetFrameTime(), ed.PollInput())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(40, 42, 48, 255))
		ed.Draw()
		rl.EndDrawing()
	}
	// Release workers blocked on undrained results before waiting on them.
	stop()
	ed.Importer.Wait()
}
