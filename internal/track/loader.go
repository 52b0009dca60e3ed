package track

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Load reads a track definition from a TOML file.
func Load(path string) (*Track, error) {
	var t Track
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding track %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("track %s: unknown keys %v", path, undecoded)
	}

	if t.Name == "" {
		base := filepath.Base(path)
		t.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadAll loads every path in order and stops at the first failure.
func LoadAll(paths []string) ([]*Track, error) {
	tracks := make([]*Track, 0, len(paths))
	for _, p := range paths {
		t, err := Load(p)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// Save writes t as TOML, creating parent directories as needed.
func Save(path string, t *Track) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating track directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(t); err != nil {
		return errors.Wrapf(err, "encoding track %s", path)
	}
	return f.Close()
}
