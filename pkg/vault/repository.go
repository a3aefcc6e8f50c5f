package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// FSRepository reads records from a directory tree of markdown notes. Parsed
// records are cached by path and modification time so repeated snapshot
// rebuilds only re-read notes that actually changed.
type FSRepository struct {
	root string

	mu    sync.Mutex
	cache map[string]cachedRecord
}

type cachedRecord struct {
	modTime int64
	size    int64
	record  Record
}

func NewFSRepository(root string) *FSRepository {
	return &FSRepository{
		root:  root,
		cache: make(map[string]cachedRecord),
	}
}

// Root returns the vault's root directory.
func (r *FSRepository) Root() string {
	return r.root
}

// GetRecords walks the vault and returns all markdown records in stable
// (lexicographic path) order. Unreadable or unparseable notes are skipped
// with a log entry rather than failing the whole scan.
func (r *FSRepository) GetRecords(ctx context.Context) ([]Record, error) {
	var paths []string
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != r.root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault at %s: %w", r.root, err)
	}
	sort.Strings(paths)

	records := make([]Record, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.load(path)
		if err != nil {
			log.Warnf("skipping unreadable note %s: %v", path, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetRecord returns the single record at path.
func (r *FSRepository) GetRecord(ctx context.Context, path string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	rec, err := r.load(r.Resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// Resolve turns a vault-relative path into an absolute one. Absolute paths
// inside the vault pass through unchanged.
func (r *FSRepository) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.root, path)
}

// Rel returns the vault-relative form of path when possible.
func (r *FSRepository) Rel(path string) string {
	if rel, err := filepath.Rel(r.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func (r *FSRepository) load(path string) (Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Record{}, err
	}

	r.mu.Lock()
	cached, ok := r.cache[path]
	r.mu.Unlock()
	if ok && cached.modTime == info.ModTime().UnixNano() && cached.size == info.Size() {
		return cached.record, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	fm, bodyOffset := parseFrontMatter(content)
	rec := Record{
		Path:        r.Rel(path),
		FrontMatter: fm,
		Embeds:      extractEmbeds(content[bodyOffset:]),
	}

	r.mu.Lock()
	r.cache[path] = cachedRecord{
		modTime: info.ModTime().UnixNano(),
		size:    info.Size(),
		record:  rec,
	}
	r.mu.Unlock()
	return rec, nil
}

// Invalidate drops the cached parse for path (or everything when path is
// empty). Called by the watcher and after front-matter writes.
func (r *FSRepository) Invalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path == "" {
		r.cache = make(map[string]cachedRecord)
		return
	}
	delete(r.cache, r.Resolve(path))
}

// ProcessFrontMatter applies mutator to the note's front-matter mapping and
// writes the note back, preserving the body and the position of existing
// keys. The mutation is committed atomically via a rename.
func (r *FSRepository) ProcessFrontMatter(ctx context.Context, path string, mutator func(fm map[string]any)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs := r.Resolve(path)
	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to read note %s: %w", path, err)
	}

	fm, _ := parseFrontMatter(content)
	mutator(fm)

	updated, err := rewriteFrontMatter(content, fm)
	if err != nil {
		return fmt.Errorf("failed to rewrite front matter of %s: %w", path, err)
	}

	tmp := abs + ".notecal.tmp"
	if err := os.WriteFile(tmp, updated, 0o644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", path, err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to commit note %s: %w", path, err)
	}

	r.Invalidate(path)
	log.Debugf("front matter updated: %s", path)
	return nil
}
