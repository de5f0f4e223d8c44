// Package assets resolves asset names to files and owns the decoded textures.
package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Handle is a stable index into a Cache. The zero Handle is never issued.
type Handle int

// ErrUnknownHandle is returned for handles the cache never issued.
var ErrUnknownHandle = errors.New("assets: unknown handle")

// Resolver maps logical asset names to paths below an installation root.
type Resolver struct {
	root string
}

// NewResolver returns a resolver rooted at dir.
func NewResolver(dir string) Resolver {
	return Resolver{root: dir}
}

// ExecutableResolver roots the resolver at the "assets" directory next to
// the running binary.
func ExecutableResolver() (Resolver, error) {
	exe, err := os.Executable()
	if err != nil {
		return Resolver{}, fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return NewResolver(filepath.Join(filepath.Dir(exe), "assets")), nil
}

// Root returns the directory assets are resolved against.
func (r Resolver) Root() string { return r.root }

// Resolve returns the path of the named asset. Absolute names are returned
// unchanged.
func (r Resolver) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.root, name)
}

// Cache decodes images once and hands out handles to them. Handles stay
// valid for the life of the cache, across Reload.
type Cache struct {
	mu     sync.RWMutex
	images []image.Image // slot 0 is unused
	byKey  map[string]Handle
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		images: []image.Image{nil},
		byKey:  make(map[string]Handle),
	}
}

// Load decodes the image at path, or returns the handle from an earlier Load
// of the same path.
func (c *Cache) Load(path string) (Handle, error) {
	c.mu.RLock()
	h, ok := c.byKey[path]
	c.mu.RUnlock()
	if ok {
		return h, nil
	}

	img, err := decode(path)
	if err != nil {
		return 0, err
	}
	return c.Insert(path, img), nil
}

// Insert stores img under key. An existing entry for key keeps its handle
// and has its image replaced.
func (c *Cache) Insert(key string, img image.Image) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.byKey[key]; ok {
		c.images[h] = img
		return h
	}
	c.images = append(c.images, img)
	h := Handle(len(c.images) - 1)
	c.byKey[key] = h
	return h
}

// Reload decodes a previously loaded path again and swaps the new image in
// behind its existing handle. On error the old image stays. Paths the cache
// never loaded fail with ErrUnknownHandle.
func (c *Cache) Reload(path string) (Handle, error) {
	c.mu.RLock()
	_, ok := c.byKey[path]
	c.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownHandle, path)
	}
	img, err := decode(path)
	if err != nil {
		return 0, err
	}
	return c.Insert(path, img), nil
}

// Image returns the image behind h.
func (c *Cache) Image(h Handle) (image.Image, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if h <= 0 || int(h) >= len(c.images) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return c.images[h], nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return img, nil
}
