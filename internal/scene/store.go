package scene

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a layout from disk. Missing files return an empty layout.
func LoadFile(path string) (Layout, error) {
	var l Layout
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return l, err
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return l, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// SaveFile writes a layout to disk, creating parent directories as needed.
func SaveFile(path string, l Layout) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Watch calls fn with the freshly loaded layout whenever the file at path
// is written or created (SaveFile replaces it through a rename). It blocks
// until ctx is done. Invalid files are logged and skipped.
func Watch(ctx context.Context, path string, log zerolog.Logger, fn func(Layout)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("layout watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	name := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			l, err := LoadFile(path)
			if err != nil {
				log.Warn().Err(err).Str("file", path).Msg("layout reload failed")
				continue
			}
			log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Int("elements", len(l.Elements)).Msg("layout reloaded")
			fn(l)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("layout watcher error")
		}
	}
}
