package component

import (
	"context"
	"io/fs"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader reads template and style text from a file system. Successful
// reads are cached per path, and concurrent reads of one path share a
// single file system access.
//
// Loader is safe for concurrent use.
type Loader struct {
	fsys  fs.FS
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]string
	reads int
}

// NewLoader returns a loader over fsys. A nil fsys serves only inline
// templates; every load fails with fs.ErrNotExist.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, cache: make(map[string]string)}
}

// Load returns the contents of name.
func (l *Loader) Load(name string) (string, error) {
	if text, ok := l.cached(name); ok {
		return text, nil
	}
	v, err, _ := l.group.Do(name, func() (any, error) {
		if text, ok := l.cached(name); ok {
			return text, nil
		}
		if l.fsys == nil {
			return "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			return "", err
		}
		text := string(data)
		l.mu.Lock()
		l.cache[name] = text
		l.reads++
		l.mu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Preload loads names concurrently and returns the first error.
func (l *Loader) Preload(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := l.Load(name)
			return err
		})
	}
	return g.Wait()
}

// Reads returns how many files were read from the file system.
func (l *Loader) Reads() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reads
}

func (l *Loader) cached(name string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	text, ok := l.cache[name]
	return text, ok
}
