// SPDX-License-Identifier: MPL-2.0

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"typo3-setup-cli/internal/settings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// DefaultMarker identifies settings files written by this tool.
const DefaultMarker = "Auto generated by typo3-setup"

type (
	// Options configures where settings are read from and written to.
	Options struct {
		// SettingsFile is the canonical settings file. It is required on load and
		// receives the residual tree on save.
		SettingsFile string
		// LegacyFile is an optional lower-precedence source.
		LegacyFile string
		// Marker is the auto-generated marker. Defaults to DefaultMarker.
		Marker string
	}

	// Sources describes what Load read.
	Sources struct {
		// Legacy holds the legacy tree, nil when the file was absent or skipped.
		Legacy settings.Tree
		// LegacySkipped reports that the legacy file carried the marker.
		LegacySkipped bool
		// Canonical holds the canonical tree.
		Canonical settings.Tree
	}

	// Store reads and writes settings files through an afero filesystem.
	Store struct {
		fs     afero.Fs
		opts   Options
		logger *log.Logger
	}
)

// New creates a Store. A nil logger discards log output.
func New(fs afero.Fs, opts Options, logger *log.Logger) *Store {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{fs: fs, opts: opts, logger: logger}
}

// Load returns the canonical settings deep-merged over the legacy settings.
func (s *Store) Load(ctx context.Context) (settings.Tree, error) {
	src, err := s.LoadSources(ctx)
	if err != nil {
		return nil, err
	}

	merged, err := settings.Merge(src.Legacy, src.Canonical)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// LoadSources reads both sources without merging them.
func (s *Store) LoadSources(ctx context.Context) (*Sources, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load settings canceled: %w", ctx.Err())
	default:
	}

	src := &Sources{}

	if s.opts.LegacyFile != "" {
		legacy, skipped, err := s.loadLegacy()
		if err != nil {
			return nil, err
		}
		src.Legacy = legacy
		src.LegacySkipped = skipped
	}

	data, err := afero.ReadFile(s.fs, s.opts.SettingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSettingsFileMissing, s.opts.SettingsFile)
		}
		return nil, fmt.Errorf("failed to read settings file '%s': %w", s.opts.SettingsFile, err)
	}
	canonical, err := decodeFile(s.opts.SettingsFile, data)
	if err != nil {
		return nil, err
	}
	src.Canonical = canonical

	s.logger.Debug("loaded settings", "file", s.opts.SettingsFile, "leaves", len(canonical.Leaves()))
	return src, nil
}

func (s *Store) loadLegacy() (tree settings.Tree, skipped bool, err error) {
	data, err := afero.ReadFile(s.fs, s.opts.LegacyFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no legacy settings file", "file", s.opts.LegacyFile)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read legacy settings file '%s': %w", s.opts.LegacyFile, err)
	}

	if bytes.Contains(data, []byte(s.opts.Marker)) {
		s.logger.Debug("skipping generated legacy settings file", "file", s.opts.LegacyFile)
		return nil, true, nil
	}

	tree, err = decodeFile(s.opts.LegacyFile, data)
	if err != nil {
		return nil, false, err
	}
	s.logger.Debug("loaded legacy settings", "file", s.opts.LegacyFile, "leaves", len(tree.Leaves()))
	return tree, false, nil
}

// Save writes tree to the canonical settings file, stamped with the marker.
// Parent directories are created as needed.
func (s *Store) Save(ctx context.Context, tree settings.Tree) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("save settings canceled: %w", ctx.Err())
	default:
	}

	data, err := s.Render(tree)
	if err != nil {
		return err
	}

	path := s.opts.SettingsFile
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	s.logger.Debug("wrote settings", "file", path, "leaves", len(tree.Leaves()))
	return nil
}

// Render returns the content Save would write for tree.
func (s *Store) Render(tree settings.Tree) ([]byte, error) {
	codec, err := CodecForPath(s.opts.SettingsFile)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		tree = settings.Tree{}
	}
	return codec.Encode(tree, s.header())
}

func (s *Store) header() string {
	return s.opts.Marker + "\nChanges to this file are overwritten by the next setup run."
}

func decodeFile(path string, data []byte) (settings.Tree, error) {
	codec, err := CodecForPath(path)
	if err != nil {
		return nil, err
	}
	tree, err := codec.Decode(data, path)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrParse, path, err)
	}
	return tree, nil
}
