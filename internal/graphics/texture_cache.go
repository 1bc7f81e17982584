package graphics

import (
	"errors"

	"cubescene/internal/logging"
)

// ErrCacheReleased is returned by Load once ReleaseAll has run.
var ErrCacheReleased = errors.New("texture cache already released")

// MaxAnisotropy is the anisotropic filtering level requested for every
// texture; the GL backend clamps it to what the driver supports.
const MaxAnisotropy = 32.0

// TextureCache owns the textures loaded at startup. Each distinct path is
// uploaded at most once; later keys for the same path share its handle.
type TextureCache struct {
	ctx    Context
	byKey  map[TextureKey]Texture
	byPath map[string]Texture
	// upload order, so release is deterministic
	order    []Texture
	released bool
}

// NewTextureCache returns an empty cache uploading through ctx.
func NewTextureCache(ctx Context) *TextureCache {
	return &TextureCache{
		ctx:    ctx,
		byKey:  make(map[TextureKey]Texture),
		byPath: make(map[string]Texture),
	}
}

// Load decodes the image at path and registers it under key. Loading a path
// that is already cached reuses the existing texture. A released cache
// accepts no more uploads.
func (c *TextureCache) Load(key TextureKey, path string) (Texture, error) {
	if c.released {
		return 0, &ResourceLoadError{Kind: ResourceTexture, Path: path, Err: ErrCacheReleased}
	}
	if tex, ok := c.byPath[path]; ok {
		c.byKey[key] = tex
		return tex, nil
	}

	px, err := LoadPixels(path)
	if err != nil {
		return 0, err
	}
	tex, err := c.ctx.NewTexture(px, MaxAnisotropy)
	if err != nil {
		return 0, &ResourceLoadError{Kind: ResourceTexture, Path: path, Err: err}
	}

	c.byPath[path] = tex
	c.byKey[key] = tex
	c.order = append(c.order, tex)
	logging.For("textures").Debug("loaded texture", "key", key, "path", path, "size", [2]int{px.Width, px.Height})
	return tex, nil
}

// Get returns the texture registered under key.
func (c *TextureCache) Get(key TextureKey) (Texture, error) {
	tex, ok := c.byKey[key]
	if !ok {
		return 0, &LookupError{Key: key.String()}
	}
	return tex, nil
}

// Len is the number of distinct textures held.
func (c *TextureCache) Len() int {
	return len(c.order)
}

// ReleaseAll frees every texture. Calls after the first are ignored.
func (c *TextureCache) ReleaseAll() {
	if c.released {
		logging.For("textures").Warn(ErrCacheReleased.Error())
		return
	}
	for _, tex := range c.order {
		c.ctx.ReleaseTexture(tex)
	}
	c.released = true
	c.order = nil
	clear(c.byKey)
	clear(c.byPath)
}
