package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/mazegif/config"
	"github.com/lixenwraith/mazegif/gif"
	"github.com/lixenwraith/mazegif/maze"
	"github.com/lixenwraith/mazegif/preview"
)

type options struct {
	configPath string
	output     string
	width      int
	height     int
	scale      int
	seed       int64
	braid      float64
	solve      bool
	preview    bool
	sound      bool
	ascii      bool
	debug      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, set := parseFlags()

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(&cfg, opts, set)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var rec preview.Recorder
	startT := time.Now()
	w, res, err := build(cfg, gif.WithFrameObserver(rec.Observe), gif.WithHoldObserver(rec.Hold))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	frames := w.Frames()
	size := w.Len() + 1

	if err := w.WriteToFile(cfg.Output.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote %s: %dx%d, %d frames, %d bytes in %v\n",
		cfg.Output.Path, w.Width(), w.Height(), frames, size, time.Since(startT).Round(time.Millisecond))

	if opts.ascii {
		if err := drawASCII(os.Stdout, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.preview {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Preview skipped: stdout is not a terminal")
			return 0
		}
		if err := runPreview(w, rec.Frames(), opts.sound); err != nil {
			fmt.Fprintf(os.Stderr, "Error: preview: %v\n", err)
			return 1
		}
	}
	return 0
}

// build generates the maze described by cfg and encodes its animation
func build(cfg config.Config, extra ...gif.Option) (*gif.Writer, maze.Result, error) {
	st, err := cfg.Style()
	if err != nil {
		return nil, maze.Result{}, err
	}

	res := maze.Generate(cfg.Generator())
	log.Printf("Generated %dx%d maze: %d steps, solution %d cells",
		len(res.Grid[0]), len(res.Grid), len(res.Steps), len(res.SolutionPath))

	width, height := st.Size(res)
	opts := append([]gif.Option{gif.WithLoopCount(cfg.Output.Loop)}, extra...)
	w, err := gif.New(width, height, st.Palette(), opts...)
	if err != nil {
		return nil, res, err
	}
	if err := maze.Render(w, res, st); err != nil {
		return nil, res, err
	}
	log.Printf("Encoded %d frames, %d bytes", w.Frames(), w.Len())
	return w, res, nil
}

func runPreview(w *gif.Writer, frames []gif.Frame, sound bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	player := preview.NewPlayer(screen, w.Width(), w.Height(), w.Palette(), frames)
	if sound {
		// Non-fatal, preview can run without sound
		if ticker, err := preview.NewTicker(); err == nil {
			defer ticker.Close()
			player.SetTicker(ticker)
		} else {
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := player.Play(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func parseFlags() (options, map[string]bool) {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&opts.output, "o", "", "Output GIF path")
	flag.IntVar(&opts.width, "w", 0, "Maze width in cells")
	flag.IntVar(&opts.height, "h", 0, "Maze height in cells")
	flag.IntVar(&opts.scale, "scale", 0, "Pixels per maze cell")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = time based)")
	flag.Float64Var(&opts.braid, "braid", 0, "Braiding factor [0.0 - 1.0]")
	flag.BoolVar(&opts.solve, "solve", false, "Draw the solution path after carving")
	flag.BoolVar(&opts.preview, "preview", false, "Play the animation in the terminal")
	flag.BoolVar(&opts.sound, "sound", false, "Tick on every previewed frame")
	flag.BoolVar(&opts.ascii, "ascii", false, "Print the finished maze to stdout")
	flag.BoolVar(&opts.debug, "debug", false, "Write debug log to logs/")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set
}

// applyFlags overrides configuration values with explicitly set flags
func applyFlags(cfg *config.Config, opts options, set map[string]bool) {
	if set["o"] {
		cfg.Output.Path = opts.output
	}
	if set["w"] {
		cfg.Maze.Width = opts.width
	}
	if set["h"] {
		cfg.Maze.Height = opts.height
	}
	if set["scale"] {
		cfg.Maze.Scale = opts.scale
	}
	if set["seed"] {
		cfg.Maze.Seed = opts.seed
	}
	if set["braid"] {
		cfg.Maze.Braiding = opts.braid
	}
	if set["solve"] {
		cfg.Maze.Solve = opts.solve
	}
}
