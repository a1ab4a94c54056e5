package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/canvas"
)

// Script errors.
var (
	ErrUnknownFormat = errors.New("script: unknown format")
	ErrEmptyScript   = errors.New("script: empty")
	ErrBadOp         = errors.New("script: invalid op")
	ErrBadColor      = errors.New("script: invalid color")
)

// Script is a canvas setup plus an ordered list of operations.
type Script struct {
	Width   int           `yaml:"width" toml:"width"`
	Height  int           `yaml:"height" toml:"height"`
	Input   string        `yaml:"input" toml:"input"`
	History HistoryConfig `yaml:"history" toml:"history"`
	Ops     []Op          `yaml:"ops" toml:"ops"`
}

// HistoryConfig selects the engine's history options.
type HistoryConfig struct {
	Limit    int  `yaml:"limit" toml:"limit"`
	Compress bool `yaml:"compress" toml:"compress"`
	Level    int  `yaml:"level" toml:"level"`
}

// Op is one script step. Exactly one field must be set.
type Op struct {
	Stroke *StrokeOp `yaml:"stroke" toml:"stroke"`
	Fill   *FillOp   `yaml:"fill" toml:"fill"`
	Filter *FilterOp `yaml:"filter" toml:"filter"`
	Undo   int       `yaml:"undo" toml:"undo"`
	Redo   int       `yaml:"redo" toml:"redo"`
	Clear  bool      `yaml:"clear" toml:"clear"`
}

// StrokeOp paints or erases a segment.
type StrokeOp struct {
	From     []float32 `yaml:"from" toml:"from"`
	To       []float32 `yaml:"to" toml:"to"`
	Size     float32   `yaml:"size" toml:"size"`
	Softness float32   `yaml:"softness" toml:"softness"`
	Opacity  float32   `yaml:"opacity" toml:"opacity"`
	Color    string    `yaml:"color" toml:"color"`
	Erase    bool      `yaml:"erase" toml:"erase"`
}

// FillOp flood-fills from a seed pixel.
type FillOp struct {
	At      []int   `yaml:"at" toml:"at"`
	Opacity float32 `yaml:"opacity" toml:"opacity"`
	Color   string  `yaml:"color" toml:"color"`
}

// FilterOp applies a whole-canvas filter.
type FilterOp struct {
	Kind      string  `yaml:"kind" toml:"kind"`
	Intensity float32 `yaml:"intensity" toml:"intensity"`
}

// ParseScript decodes a script, choosing YAML or TOML by the extension of
// name. Unknown keys are rejected.
func ParseScript(name string, data []byte) (*Script, error) {
	var s Script
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptyScript
			}
			return nil, fmt.Errorf("script: parse yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("script: parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every op. It does not check colors against a canvas;
// those are resolved when the op runs.
func (s *Script) Validate() error {
	for i, op := range s.Ops {
		if _, err := op.kind(); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		if err := op.validate(); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}

// Options returns the engine options the script's history config selects.
func (s *Script) Options() []canvas.Option {
	opts := []canvas.Option{canvas.WithHistoryLimit(s.History.Limit)}
	if s.History.Compress {
		opts = append(opts, canvas.WithCompressedHistory(s.History.Level))
	}
	return opts
}

// kind names the single action set on op.
func (op Op) kind() (string, error) {
	var kinds []string
	if op.Stroke != nil {
		kinds = append(kinds, "stroke")
	}
	if op.Fill != nil {
		kinds = append(kinds, "fill")
	}
	if op.Filter != nil {
		kinds = append(kinds, "filter")
	}
	if op.Undo != 0 {
		kinds = append(kinds, "undo")
	}
	if op.Redo != 0 {
		kinds = append(kinds, "redo")
	}
	if op.Clear {
		kinds = append(kinds, "clear")
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("%w: want exactly one action, got %v", ErrBadOp, kinds)
	}
	return kinds[0], nil
}

func (op Op) validate() error {
	switch {
	case op.Stroke != nil:
		if len(op.Stroke.From) != 2 || len(op.Stroke.To) != 2 {
			return fmt.Errorf("%w: stroke from/to need two coordinates", ErrBadOp)
		}
		if _, err := parseColor(op.Stroke.Color); err != nil {
			return err
		}
	case op.Fill != nil:
		if len(op.Fill.At) != 2 {
			return fmt.Errorf("%w: fill at needs two coordinates", ErrBadOp)
		}
		if _, err := parseColor(op.Fill.Color); err != nil {
			return err
		}
	case op.Filter != nil:
		if _, err := canvas.ParseFilterKind(op.Filter.Kind); err != nil {
			return err
		}
	case op.Undo < 0 || op.Redo < 0:
		return fmt.Errorf("%w: negative undo/redo count", ErrBadOp)
	}
	return nil
}

// Run applies the script's ops to e in order and returns how many undo and
// redo steps actually happened.
func (s *Script) Run(e *canvas.Engine, log *slog.Logger) (undone, redone int, err error) {
	for i, op := range s.Ops {
		kind, err := op.kind()
		if err != nil {
			return undone, redone, fmt.Errorf("op %d: %w", i, err)
		}
		log.Debug("op", "index", i, "kind", kind)

		switch kind {
		case "stroke":
			opts, err := brushOptions(op.Stroke.Size, op.Stroke.Softness, op.Stroke.Opacity, op.Stroke.Color)
			if err != nil {
				return undone, redone, fmt.Errorf("op %d: %w", i, err)
			}
			from, to := op.Stroke.From, op.Stroke.To
			e.Stroke(from[0], from[1], to[0], to[1], opts, op.Stroke.Erase)
		case "fill":
			opts, err := brushOptions(0, 0, op.Fill.Opacity, op.Fill.Color)
			if err != nil {
				return undone, redone, fmt.Errorf("op %d: %w", i, err)
			}
			e.Fill(op.Fill.At[0], op.Fill.At[1], opts)
		case "filter":
			k, err := canvas.ParseFilterKind(op.Filter.Kind)
			if err != nil {
				return undone, redone, fmt.Errorf("op %d: %w", i, err)
			}
			e.ApplyFilter(k, op.Filter.Intensity)
		case "undo":
			n := repeat(op.Undo, e.Undo)
			if n < op.Undo {
				log.Debug("undo history exhausted", "index", i, "requested", op.Undo, "done", n)
			}
			undone += n
		case "redo":
			n := repeat(op.Redo, e.Redo)
			if n < op.Redo {
				log.Debug("redo history exhausted", "index", i, "requested", op.Redo, "done", n)
			}
			redone += n
		case "clear":
			e.Clear()
		}
	}
	return undone, redone, nil
}

// repeat calls step up to n times, stopping at the first false.
func repeat(n int, step func() bool) int {
	done := 0
	for done < n && step() {
		done++
	}
	return done
}

func brushOptions(size, softness, opacity float32, color string) (canvas.BrushOptions, error) {
	c, err := parseColor(color)
	if err != nil {
		return canvas.BrushOptions{}, err
	}
	r, g, b := c.RGB255()
	return canvas.BrushOptions{
		Size:     size,
		Softness: softness,
		Opacity:  opacity,
		R:        r,
		G:        g,
		B:        b,
	}, nil
}

// parseColor accepts "#rrggbb", "#rgb" or an SVG color name. The empty
// string is black.
func parseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q: %w", ErrBadColor, s, err)
		}
		return c, nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, _ := colorful.MakeColor(named)
	return c, nil
}
