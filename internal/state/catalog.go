package state

import "time"

// CatalogStore remembers which revision of the catalog file is loaded.
type CatalogStore interface {
	Path() string
	ModTime() time.Time
	Size() int64
	// Observe records a revision and reports whether it differs from the
	// previous one.
	Observe(path string, modTime time.Time, size int64) bool
}

type catalogStore struct {
	path    string
	modTime time.Time
	size    int64
}

func NewCatalogStore() CatalogStore {
	return &catalogStore{}
}

func (c *catalogStore) Path() string       { return c.path }
func (c *catalogStore) ModTime() time.Time { return c.modTime }
func (c *catalogStore) Size() int64        { return c.size }

func (c *catalogStore) Observe(path string, modTime time.Time, size int64) bool {
	changed := path != c.path || !modTime.Equal(c.modTime) || size != c.size
	c.path, c.modTime, c.size = path, modTime, size
	return changed
}
