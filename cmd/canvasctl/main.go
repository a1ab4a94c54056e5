// Command canvasctl replays canvas scripts and writes each result as PNG.
//
// Usage:
//
//	canvasctl [-v] [-j N] [-o dir] script.yaml [script.toml ...]
//
// Scripts run concurrently, each on its own engine.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/canvas"
	intImage "github.com/gogpu/canvas/internal/image"
)

func main() {
	var (
		verbose = flag.Bool("v", false, "log every operation")
		jobs    = flag.Int("j", runtime.GOMAXPROCS(0), "scripts to run at once")
		outDir  = flag.String("o", ".", "output directory")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: canvasctl [-v] [-j N] [-o dir] script...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	canvas.SetLogger(logger)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("canvasctl: %v", err)
	}

	paths := flag.Args()
	results := make([]result, len(paths))

	var runs errgroup.Group
	runs.SetLimit(max(*jobs, 1))
	for i, path := range paths {
		runs.Go(func() error {
			r, err := runScript(path, *outDir, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := runs.Wait(); err != nil {
		log.Fatalf("canvasctl: %v", err)
	}

	p := message.NewPrinter(language.English)
	for _, r := range results {
		r.print(p)
	}
}

// result summarises one script run.
type result struct {
	id           string
	script       string
	output       string
	width        int
	height       int
	ops          int
	undone       int
	redone       int
	undoDepth    int
	historyBytes int
}

func (r result) print(p *message.Printer) {
	p.Printf("%s  %s -> %s  %dx%d  %d ops  %d undone  %d redone  %d undo steps  %d history bytes\n",
		r.id[:8], r.script, r.output, r.width, r.height, r.ops, r.undone, r.redone, r.undoDepth, r.historyBytes)
}

// runScript executes the script at path and writes <name>.png to outDir.
func runScript(path, outDir string, logger *slog.Logger) (result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return result{}, err
	}
	s, err := ParseScript(path, data)
	if err != nil {
		return result{}, err
	}

	id := uuid.NewString()
	runLog := logger.With("run", id, "script", filepath.Base(path))

	e, err := newEngine(s, filepath.Dir(path))
	if err != nil {
		return result{}, err
	}
	runLog.Debug("engine ready", "width", e.Width(), "height", e.Height(), "ops", len(s.Ops))

	undone, redone, err := s.Run(e, runLog)
	if err != nil {
		return result{}, err
	}

	out := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".png")
	if err := savePNG(e, out); err != nil {
		return result{}, err
	}
	runLog.Info("wrote", "output", out)

	return result{
		id:           id,
		script:       path,
		output:       out,
		width:        e.Width(),
		height:       e.Height(),
		ops:          len(s.Ops),
		undone:       undone,
		redone:       redone,
		undoDepth:    e.UndoDepth(),
		historyBytes: e.HistoryBytes(),
	}, nil
}

// newEngine creates the script's engine. With an input image the canvas
// starts from that image, resized when the script also gives a size.
func newEngine(s *Script, baseDir string) (*canvas.Engine, error) {
	e, err := canvas.New(s.Width, s.Height, s.Options()...)
	if err != nil {
		return nil, err
	}
	if s.Input == "" {
		return e, nil
	}

	input := s.Input
	if !filepath.IsAbs(input) {
		input = filepath.Join(baseDir, input)
	}
	buf, err := intImage.Load(input)
	if err != nil {
		return nil, err
	}
	if s.Width > 0 && s.Height > 0 && (s.Width != buf.Width() || s.Height != buf.Height()) {
		if buf, err = intImage.Resize(buf, s.Width, s.Height); err != nil {
			return nil, err
		}
	}
	if err := e.Load(buf.Data(), buf.Width(), buf.Height()); err != nil {
		return nil, err
	}
	return e, nil
}

// savePNG writes the engine's canvas to path.
func savePNG(e *canvas.Engine, path string) error {
	buf, err := intImage.FromBytes(e.Export(), e.Width(), e.Height())
	if err != nil {
		return err
	}
	return buf.SavePNG(path)
}
