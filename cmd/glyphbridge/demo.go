package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/1broseidon/glyphbridge/internal/config"
	"github.com/1broseidon/glyphbridge/internal/daemon"
	"github.com/1broseidon/glyphbridge/internal/engine"
	"github.com/1broseidon/glyphbridge/internal/render"
	"github.com/1broseidon/glyphbridge/internal/toolkit"
)

// runDemo drives one scripted redisplay cycle against a local engine, without
// a daemon: open a display, bind a frame, draw a glyph run and a cursor inside
// an update bracket, then report what the engine saw.
func runDemo(args []string) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glyphbridge demo [--backend NAME] [--out FILE] [--text TEXT]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run a scripted redisplay cycle against a local engine backend.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	backend := fs.String("backend", "", "Engine backend (default: config, then best available)")
	out := fs.String("out", "", "Write the frame as PNG (image backend only)")
	text := fs.String("text", "glyphbridge", "Text to draw")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *backend != "" {
		cfg.Engine.Backend = *backend
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	core := daemon.NewCore(cfg, toolkit.NewHeadless(), logger)
	f, err := core.CreateFrame("glyphbridge demo", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	run := render.Run{
		FaceID:      0,
		FontAscent:  12,
		FontDescent: 4,
	}
	for _, ch := range *text {
		run.Glyphs = append(run.Glyphs, render.Glyph{
			Kind:       render.GlyphChar,
			Ch:         ch,
			PixelWidth: f.CellWidth,
		})
	}
	run.Glyphs = append(run.Glyphs, render.Glyph{
		Kind:       render.GlyphStretch,
		PixelWidth: f.CellWidth * 2,
	})

	h := core.Hooks()
	if err := h.UpdateBegin(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	emitted, err := h.DrawGlyphRun(f, run)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cursorX := len(run.Glyphs) * f.CellWidth
	if _, err := h.DrawCursor(f, render.CursorFilledBox, cursorX, 0, f.CellWidth, true, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := h.UpdateEnd(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	conn, err := f.Connection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	eng, err := conn.Engine()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("backend:  %s\n", eng.Name())
	fmt.Printf("frame:    %dx%d cells, %dx%d px\n", f.Cols, f.Rows, f.PixelWidth, f.PixelHeight)
	fmt.Printf("commands: %d glyph commands emitted\n", emitted)

	if rec, ok := eng.(*engine.Recorder); ok {
		for _, cmd := range rec.Commands() {
			switch cmd.Op {
			case engine.OpCharGlyph:
				fmt.Printf("  %-18s %q face=%d width=%d\n", cmd.Op, cmd.Ch, cmd.FaceID, cmd.Width)
			case engine.OpStretch:
				fmt.Printf("  %-18s width=%d height=%d\n", cmd.Op, cmd.Width, cmd.Height)
			case engine.OpSetCursor:
				fmt.Printf("  %-18s x=%.0f y=%.0f style=%d color=#%06x\n", cmd.Op, cmd.X, cmd.Y, cmd.Style, cmd.Color)
			default:
				fmt.Printf("  %s\n", cmd.Op)
			}
		}
	}

	if *out != "" {
		saver, ok := eng.(interface{ SavePNG(string) error })
		if !ok {
			fmt.Fprintf(os.Stderr, "--out requires the image backend (got %s)\n", eng.Name())
			return 1
		}
		if err := saver.SavePNG(*out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("wrote %s\n", *out)
	}

	core.DeleteFrame(f)
	return 0
}
