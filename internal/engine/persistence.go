package engine

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const slotExt = ".json"

// Persistence handles the disk I/O for the MemStore. Each key is one file.
type Persistence struct {
	DataDir string
	mu      sync.Mutex // Protects concurrent writes to the filesystem
}

// NewPersistence initializes a persistence handler, creating dir if needed.
func NewPersistence(dir string) (*Persistence, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir %s", dir)
	}
	return &Persistence{DataDir: dir}, nil
}

func (p *Persistence) path(key string) string {
	return filepath.Join(p.DataDir, key+slotExt)
}

// SaveItem writes a single slot atomically.
func (p *Persistence) SaveItem(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	filePath := p.path(key)
	tempPath := filePath + ".tmp"

	if err := os.WriteFile(tempPath, []byte(value), 0o600); err != nil {
		return errors.Wrapf(err, "write slot %s", key)
	}
	// Rename replaces the file in one step: readers see the old or the new
	// content, never a partial write.
	if err := os.Rename(tempPath, filePath); err != nil {
		return errors.Wrapf(err, "commit slot %s", key)
	}
	return nil
}

// DeleteItem removes a slot file. A missing file is not an error.
func (p *Persistence) DeleteItem(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.Remove(p.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove slot %s", key)
	}
	return nil
}

// LoadAll returns every slot found in the data directory.
// Unreadable files are skipped with a warning.
func (p *Persistence) LoadAll() (map[string]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	allData := make(map[string]string)

	files, err := os.ReadDir(p.DataDir)
	if err != nil {
		return nil, errors.Wrapf(err, "read data dir %s", p.DataDir)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != slotExt {
			continue
		}
		key := strings.TrimSuffix(file.Name(), slotExt)

		content, err := os.ReadFile(filepath.Join(p.DataDir, file.Name()))
		if err != nil {
			log.Warn().Err(err).Str("file", file.Name()).Msg("could not read slot file")
			continue
		}
		allData[key] = string(content)
	}
	return allData, nil
}

// Open loads dir and returns a MemStore backed by it.
func Open(dir string) (*MemStore, error) {
	p, err := NewPersistence(dir)
	if err != nil {
		return nil, err
	}
	data, err := p.LoadAll()
	if err != nil {
		return nil, err
	}
	return NewMemStore(data, p), nil
}
