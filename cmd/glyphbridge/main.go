package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/1broseidon/glyphbridge/internal/config"
	"github.com/1broseidon/glyphbridge/internal/daemon"
	_ "github.com/1broseidon/glyphbridge/internal/engine/imgengine"
	_ "github.com/1broseidon/glyphbridge/internal/engine/termengine"
	"github.com/1broseidon/glyphbridge/internal/ipc"
	"github.com/1broseidon/glyphbridge/internal/runtimepath"
	"github.com/1broseidon/glyphbridge/internal/toolkit"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "display":
		os.Exit(runDisplay(os.Args[2:]))
	case "frame":
		os.Exit(runFrame(os.Args[2:]))
	case "color":
		os.Exit(runColor(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "demo":
		os.Exit(runDemo(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: glyphbridge <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the bridge daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  display list        List open display connections")
	fmt.Fprintln(w, "  display open        Open a display connection")
	fmt.Fprintln(w, "  display close       Close a display connection")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  frame list          List bound frames")
	fmt.Fprintln(w, "  color <spec>        Resolve a color name or #RRGGBB spec")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  demo                Run a scripted redisplay against a local engine")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'glyphbridge <command> --help' for command-specific options.")
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glyphbridge daemon [--toolkit NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the bridge daemon in the foreground.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	tkName := fs.String("toolkit", "", "Toolkit: headless or x11 (default: x11 when DISPLAY is set)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	tk, err := openToolkit(*tkName)
	if err != nil {
		log.Fatalf("Failed to open toolkit: %v", err)
	}
	defer tk.Close()

	core := daemon.NewCore(cfg, tk, logger)

	socketPath := cfg.SocketPath
	if socketPath == "" {
		socketPath, err = runtimepath.SocketPath()
		if err != nil {
			log.Fatalf("Failed to resolve socket path: %v", err)
		}
	}

	ipcServer := ipc.NewServer(socketPath, core, logger)
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	auditor := daemon.NewAuditor(daemon.AuditorConfig{
		Interval: 10 * time.Second,
		Logger:   logger,
	}, core)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go auditor.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	logger.Info("glyphbridge daemon started",
		"toolkit", tk.Name(),
		"backend", cfg.Engine.Backend,
		"socket", socketPath)

	// Event delivery (blocking)
	if err := tk.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("toolkit stopped", "error", err)
		return 1
	}
	return 0
}

func openToolkit(name string) (toolkit.Toolkit, error) {
	if name == "" {
		if os.Getenv("DISPLAY") != "" {
			name = "x11"
		} else {
			name = "headless"
		}
	}
	switch name {
	case "headless":
		return toolkit.NewHeadless(), nil
	case "x11":
		return toolkit.NewX11()
	default:
		return nil, fmt.Errorf("unknown toolkit %q (want headless or x11)", name)
	}
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glyphbridge status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("engine_backend: %s\n", status.EngineBackend)
	fmt.Printf("toolkit:        %s\n", status.Toolkit)
	fmt.Printf("display_count:  %d\n", status.DisplayCount)
	fmt.Printf("frame_count:    %d\n", status.FrameCount)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func printDisplayUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  glyphbridge display list")
	fmt.Fprintln(w, "  glyphbridge display open [name]")
	fmt.Fprintln(w, "  glyphbridge display close <name>")
}

func runDisplay(args []string) int {
	if len(args) == 0 {
		printDisplayUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printDisplayUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		data, err := client.ListDisplays()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if len(data.Displays) == 0 {
			fmt.Println("no open displays")
			return 0
		}
		for _, d := range data.Displays {
			fmt.Printf("%-8s %s %dx%d %d-plane refs=%d\n",
				d.Name, d.Backend, d.Width, d.Height, d.Planes, d.RefCount)
		}
		return 0

	case "open":
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		data, err := client.OpenDisplay(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("opened %s (%d open)\n", data.Displays[0].Name, len(data.Displays))
		return 0

	case "close":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "display close requires <name>")
			printDisplayUsage(os.Stderr)
			return 2
		}
		if err := client.CloseDisplay(args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("closed %s\n", args[1])
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown display command: %s\n\n", args[0])
		printDisplayUsage(os.Stderr)
		return 2
	}
}

func runFrame(args []string) int {
	if len(args) == 0 || args[0] != "list" {
		if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: glyphbridge frame list")
			return 0
		}
		fmt.Fprintln(os.Stderr, "Usage: glyphbridge frame list")
		return 2
	}

	client := ipc.NewClient()
	data, err := client.ListFrames()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(data.Frames) == 0 {
		fmt.Println("no bound frames")
		return 0
	}
	for _, f := range data.Frames {
		focus := " "
		if f.Focused {
			focus = "*"
		}
		fmt.Printf("%s %3d %-20q %s %dx%d (%dx%dpx)\n",
			focus, f.ID, f.Title, f.Display, f.Cols, f.Rows, f.PixelWidth, f.PixelHeight)
	}
	return 0
}

func runColor(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: glyphbridge color <name|#RRGGBB>")
		if len(args) > 0 {
			return 0
		}
		return 2
	}

	client := ipc.NewClient()
	col, err := client.ResolveColor(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Truecolor swatch only when stdout is a terminal
	if term.IsTerminal(int(os.Stdout.Fd())) {
		r := col.Pixel >> 16 & 0xff
		g := col.Pixel >> 8 & 0xff
		b := col.Pixel & 0xff
		fmt.Printf("\x1b[48;2;%d;%d;%dm    \x1b[0m ", r, g, b)
	}
	fmt.Printf("pixel=#%06x red=%#04x green=%#04x blue=%#04x\n",
		col.Pixel, col.Red, col.Green, col.Blue)
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  glyphbridge config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  glyphbridge config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/glyphbridge/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/glyphbridge/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		var err error
		if *printDefaults {
			cfg = config.Default()
		} else if *path == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
