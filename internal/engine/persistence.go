package engine

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const unitExt = ".json"

// FileStore persists each record as <DataDir>/<entity>/<id>.json.
type FileStore struct {
	DataDir string
	mu      sync.Mutex // Protects concurrent access to the filesystem
}

var _ RecordStore = (*FileStore)(nil)

// NewFileStore initializes a store rooted at dir, creating it if needed.
// Entity directories are created lazily on first write.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create data dir %s", dir)
	}
	return &FileStore{DataDir: dir}, nil
}

// validKey rejects names that would escape the entity directory.
func validKey(s string) bool {
	return s != "" && !strings.HasPrefix(s, ".") && !strings.ContainsAny(s, `/\`)
}

func (p *FileStore) unitPath(entity, id string) string {
	return filepath.Join(p.DataDir, entity, id+unitExt)
}

// exists must be called while holding p.mu.
func (p *FileStore) exists(entity, id string) bool {
	if !validKey(entity) || !validKey(id) {
		return false
	}
	info, err := os.Stat(p.unitPath(entity, id))
	return err == nil && !info.IsDir()
}

func (p *FileStore) Insert(entity, id string, rec Record) error {
	if !validKey(entity) || !validKey(id) {
		return errors.Errorf("invalid record key %q/%q", entity, id)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exists(entity, id) {
		return &KeyError{Entity: entity, ID: id, Err: ErrAlreadyExists}
	}
	return p.write(entity, id, rec)
}

func (p *FileStore) Update(entity, id string, partial Record) (Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.exists(entity, id) {
		return nil, &KeyError{Entity: entity, ID: id, Err: ErrNotFound}
	}

	current, err := p.read(entity, id)
	if err != nil {
		return nil, err
	}
	merged := current.Merge(partial)
	if err := p.write(entity, id, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (p *FileStore) Delete(entity, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.exists(entity, id) {
		return &KeyError{Entity: entity, ID: id, Err: ErrNotFound}
	}
	path := p.unitPath(entity, id)
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, "delete %s", path)
	}
	return nil
}

func (p *FileStore) Get(entity, id string) (Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.exists(entity, id) {
		return nil, &KeyError{Entity: entity, ID: id, Err: ErrNotFound}
	}
	return p.read(entity, id)
}

// GetAll loads every unit under the entity directory. A missing directory is
// an empty entity type. Hidden and temporary files are ignored.
func (p *FileStore) GetAll(entity string) ([]Record, error) {
	if !validKey(entity) {
		return nil, errors.Errorf("invalid entity name %q", entity)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	dir := filepath.Join(p.DataDir, entity)
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read folder %s", dir)
	}

	records := make([]Record, 0, len(files))
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != unitExt {
			continue
		}
		rec, err := p.read(entity, strings.TrimSuffix(name, unitExt))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// read must be called while holding p.mu.
func (p *FileStore) read(entity, id string) (Record, error) {
	path := p.unitPath(entity, id)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	rec, err := DecodeRecord(content)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return rec, nil
}

// write replaces the unit atomically: the bytes land in a temp file first and
// are renamed over the target, so readers see either the old or new record.
// It must be called while holding p.mu.
func (p *FileStore) write(entity, id string, rec Record) error {
	dir := filepath.Join(p.DataDir, entity)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create folder %s", dir)
	}

	data, err := EncodeRecord(rec)
	if err != nil {
		return errors.Wrapf(err, "encode %s/%s", entity, id)
	}

	path := p.unitPath(entity, id)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", tempPath)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Wrapf(err, "rename %s", tempPath)
	}
	return nil
}
