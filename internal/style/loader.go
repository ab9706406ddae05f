package style

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

// Loader reads and validates style config documents. A Loader is safe for concurrent
// use.
type Loader struct {
	fs         afero.Fs
	strict     bool
	validator  *validator.Validate
	translator ut.Translator
}

type LoaderOption func(*Loader)

// WithFs makes the loader read documents from fsys instead of the OS filesystem.
func WithFs(fsys afero.Fs) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithStrict controls whether unknown top-level keys are rejected. Defaults to true.
func WithStrict(strict bool) LoaderOption {
	return func(l *Loader) {
		l.strict = strict
	}
}

func NewLoader(opts ...LoaderOption) (*Loader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	loader := &Loader{
		fs:         afero.NewOsFs(),
		strict:     true,
		validator:  validate,
		translator: trans,
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader, nil
}

// Load reads the document at path with a default Loader.
func Load(path string) (Config, error) {
	loader, err := NewLoader()
	if err != nil {
		return Config{}, err
	}
	return loader.Load(path)
}

// Load reads the document at path and returns the validated config. The error is
// ErrNotFound (wrapped), a *ParseError or a *SchemaError.
func (loader *Loader) Load(path string) (Config, error) {
	data, err := loader.read(path)
	if err != nil {
		return Config{}, err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}
	value, err := decode(data, format)
	if err != nil {
		return Config{}, &ParseError{Path: path, Format: format, Err: err}
	}

	return loader.fromValue(path, format, value)
}

func (loader *Loader) read(path string) ([]byte, error) {
	info, err := loader.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	data, err := afero.ReadFile(loader.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (loader *Loader) fromValue(path string, format Format, value any) (Config, error) {
	raw, ok := value.(map[string]any)
	if !ok {
		return Config{}, schemaErrorf("$", "the document ($) must be an object, got %T", value)
	}
	raw, err := normalizeLegacy(raw)
	if err != nil {
		return Config{}, err
	}

	doc, err := buildDocument(raw, loader.strict)
	if err != nil {
		return Config{}, err
	}
	if err := validateDocument(loader.validator, loader.translator, doc); err != nil {
		return Config{}, err
	}

	slog.Default().Debug("loaded style config",
		slog.String("path", path),
		slog.String("format", format.String()),
		slog.Int("contentPaths", len(doc.ContentPaths)),
		slog.String("darkMode", doc.DarkMode.String()),
		slog.Int("plugins", len(doc.Plugins)),
	)
	return newConfig(doc), nil
}
