// Command canvasmem runs a Lua drawing script through a tracking proxy,
// printing the tracked position after every call.
//
// Usage:
//
//	canvasmem -script draw.lua -output out.png
//	canvasmem -script draw.lua -target record -ops moveTo,lineTo,translate
//
// Without -target the highest ranked target that supports every
// intercepted operation is used.
//	canvasmem -script draw.lua -watch
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/canvasmem"
	"github.com/gogpu/canvasmem/internal/lua"
	"github.com/gogpu/canvasmem/internal/watch"
	"github.com/gogpu/canvasmem/recording"
	"github.com/gogpu/canvasmem/surface"
)

type config struct {
	script  string
	target  string
	width   int
	height  int
	output  string
	ops     string
	lang    string
	watch   bool
	verbose bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.script, "script", "", "Lua drawing script (required)")
	flag.StringVar(&cfg.target, "target", "", "drawing target: "+strings.Join(surface.Names(), ", ")+" (default: best for -ops)")
	flag.IntVar(&cfg.width, "width", 800, "surface width")
	flag.IntVar(&cfg.height, "height", 600, "surface height")
	flag.StringVar(&cfg.output, "output", "", "PNG output file (image target only)")
	flag.StringVar(&cfg.ops, "ops", "", "comma-separated operations to intercept (default: all the target supports)")
	flag.StringVar(&cfg.lang, "lang", "en", "BCP 47 language tag for number formatting")
	flag.BoolVar(&cfg.watch, "watch", false, "re-run the script when it changes")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	canvasmem.SetLogger(logger)

	if cfg.script == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout, logger); err != nil {
		logger.Error("canvasmem failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config, out io.Writer, logger *slog.Logger) error {
	tag, err := language.Parse(cfg.lang)
	if err != nil {
		return fmt.Errorf("invalid -lang: %w", err)
	}
	ops, err := parseOps(cfg.ops)
	if err != nil {
		return err
	}
	printer := message.NewPrinter(tag)

	once := func() error {
		return execute(cfg, ops, printer, out, logger)
	}
	if !cfg.watch {
		return once()
	}

	if err := once(); err != nil {
		logger.Error("script failed", "script", cfg.script, "err", err)
	}
	w, err := watch.New(cfg.script, 0, func() error {
		logger.Info("script changed, re-running", "script", cfg.script)
		return once()
	}, func(err error) {
		logger.Error("script failed", "script", cfg.script, "err", err)
	})
	if err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-ctx.Done()
	return nil
}

// parseOps parses the -ops flag. An empty list returns nil, which
// leaves the proxy on its default operations.
func parseOps(list string) ([]canvasmem.Op, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	return canvasmem.ParseOps(strings.Split(list, ","))
}

// openTarget creates the -target surface, or the best registered one
// for ops when no target was named.
func openTarget(cfg config, ops []canvasmem.Op, logger *slog.Logger) (canvasmem.Surface, error) {
	opts := surface.Options{Width: cfg.width, Height: cfg.height}
	if cfg.target != "" {
		return surface.Open(cfg.target, opts)
	}
	required := ops
	if required == nil {
		required = canvasmem.DefaultOperations()
	}
	name, target, err := surface.OpenFor(required, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("selected target", "target", name, "ops", len(required))
	return target, nil
}

// execute runs the script once on a fresh target.
func execute(cfg config, ops []canvasmem.Op, printer *message.Printer, out io.Writer, logger *slog.Logger) error {
	target, err := openTarget(cfg, ops, logger)
	if err != nil {
		return err
	}

	opts := []canvasmem.Option{canvasmem.WithObserver(traceTo(printer, out))}
	if ops != nil {
		opts = append(opts, canvasmem.WithOperations(ops...))
	}
	p, err := canvasmem.Wrap(target, opts...)
	if err != nil {
		return err
	}

	rt := lua.New(lua.Config{
		CPULimit:    lua.DefaultConfig().CPULimit,
		MemoryLimit: lua.DefaultConfig().MemoryLimit,
		Stdout:      out,
	})
	defer rt.Close()

	b, err := lua.Bind(rt, p)
	if err != nil {
		return err
	}
	if err := b.ExecuteFile(cfg.script); err != nil {
		return err
	}

	return finish(cfg, target, printer, out)
}

// traceTo prints one line per intercepted call.
func traceTo(printer *message.Printer, out io.Writer) canvasmem.Observer {
	return func(e canvasmem.Event) {
		printer.Fprintf(out, "%-20s position=(%.2f, %.2f) origin=(%.2f, %.2f)\n",
			e.Op, e.Position.X, e.Position.Y, e.Origin.X, e.Origin.Y)
	}
}

func finish(cfg config, target canvasmem.Surface, printer *message.Printer, out io.Writer) error {
	switch t := target.(type) {
	case *surface.ImageSurface:
		if cfg.output == "" {
			return nil
		}
		if err := t.SavePNG(cfg.output); err != nil {
			return err
		}
		printer.Fprintf(out, "wrote %s (%dx%d)\n", cfg.output, t.Width(), t.Height())
	case *recording.Recorder:
		printer.Fprintf(out, "recorded %d commands\n", t.Len())
	}
	return nil
}
