// Package deckfile loads deck descriptions from YAML or JSON.
//
// The annual review deck ships embedded and is used when no file is given.
package deckfile

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/okian/deckgen/internal/domain/model"
)

// Format is the encoding of a deck description.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultName is the file name of the embedded deck.
const DefaultName = "annual_review_2024.yaml"

//go:embed decks/annual_review_2024.yaml
var defaultDeck []byte

// DefaultSource returns a copy of the embedded deck description.
func DefaultSource() []byte {
	out := make([]byte, len(defaultDeck))
	copy(out, defaultDeck)
	return out
}

// Default parses the embedded deck.
func Default(ctx context.Context) (*model.Deck, error) {
	return Parse(ctx, defaultDeck, FormatYAML)
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a deck description from path. An empty path loads the
// embedded deck.
func Load(ctx context.Context, path string) (*model.Deck, error) {
	if path == "" {
		return Default(ctx)
	}
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser(f)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadDeck, path, err)
	}
	return decode(k)
}

// Parse decodes a deck description held in memory.
func Parse(ctx context.Context, data []byte, f Format) (*model.Deck, error) {
	if f != FormatYAML && f != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser(f)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDeck, err)
	}
	return decode(k)
}

func parser(f Format) koanf.Parser {
	if f == FormatJSON {
		return json.Parser()
	}
	return yaml.Parser()
}

func decode(k *koanf.Koanf) (*model.Deck, error) {
	var d model.Deck
	if err := k.UnmarshalWithConf("", &d, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDeck, err)
	}
	d.Canvas = d.Canvas.OrDefault()
	return &d, nil
}
