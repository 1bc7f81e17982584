package graphics_test

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cubescene/internal/graphics"
	"cubescene/internal/graphics/graphicstest"
)

// writePNG writes a 2x2 image whose top row is red and bottom row is blue.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	img.Set(0, 0, red)
	img.Set(1, 0, red)
	img.Set(0, 1, blue)
	img.Set(1, 1, blue)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTextureCacheDedupesPaths(t *testing.T) {
	dir := t.TempDir()
	stone := writePNG(t, dir, "stone.png")
	cat := writePNG(t, dir, "cat.png")

	rec := graphicstest.NewRecorder()
	cache := graphics.NewTextureCache(rec)

	a, err := cache.Load(graphics.TextureStone0, stone)
	if err != nil {
		t.Fatalf("Load stone0: %v", err)
	}
	b, err := cache.Load(graphics.TextureStone1, stone)
	if err != nil {
		t.Fatalf("Load stone1: %v", err)
	}
	if a != b {
		t.Errorf("same path gave handles %d and %d, want identical", a, b)
	}
	c, err := cache.Load(graphics.TextureCat, cat)
	if err != nil {
		t.Fatalf("Load cat: %v", err)
	}
	if c == a {
		t.Error("different paths share a handle")
	}

	if got := len(rec.Ops("new-texture")); got != 2 {
		t.Errorf("uploads = %d, want 2", got)
	}
	if cache.Len() != 2 {
		t.Errorf("Len = %d, want 2", cache.Len())
	}

	got, err := cache.Get(graphics.TextureStone1)
	if err != nil || got != a {
		t.Errorf("Get(stone1) = %d, %v; want %d", got, err, a)
	}
}

func TestTextureCacheFlipsRows(t *testing.T) {
	path := writePNG(t, t.TempDir(), "flip.png")
	rec := graphicstest.NewRecorder()
	cache := graphics.NewTextureCache(rec)

	tex, err := cache.Load(graphics.TextureStone0, path)
	if err != nil {
		t.Fatal(err)
	}
	px := rec.Textures[tex]
	if px.Width != 2 || px.Height != 2 || len(px.RGB) != 12 {
		t.Fatalf("pixels = %dx%d with %d bytes", px.Width, px.Height, len(px.RGB))
	}
	// The first row in memory must be the bottom (blue) row of the image.
	if px.RGB[0] != 0 || px.RGB[2] != 255 {
		t.Errorf("first texel = %v, want blue", px.RGB[:3])
	}
	if px.RGB[6] != 255 || px.RGB[8] != 0 {
		t.Errorf("last row texel = %v, want red", px.RGB[6:9])
	}
}

func TestTextureCacheErrors(t *testing.T) {
	dir := t.TempDir()
	rec := graphicstest.NewRecorder()
	cache := graphics.NewTextureCache(rec)

	_, err := cache.Get(graphics.TextureCat)
	var lookup *graphics.LookupError
	if !errors.As(err, &lookup) {
		t.Fatalf("Get unknown key: err = %v, want *LookupError", err)
	}
	if lookup.Key != "cat" {
		t.Errorf("lookup key = %q, want cat", lookup.Key)
	}

	_, err = cache.Load(graphics.TextureStone0, filepath.Join(dir, "missing.jpg"))
	var load *graphics.ResourceLoadError
	if !errors.As(err, &load) {
		t.Fatalf("Load missing file: err = %v, want *ResourceLoadError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}

	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = cache.Load(graphics.TextureStone0, junk)
	if !errors.As(err, &load) || load.Kind != graphics.ResourceTexture {
		t.Fatalf("Load junk file: err = %v, want texture *ResourceLoadError", err)
	}

	if n := len(rec.Ops("new-texture")); n != 0 {
		t.Errorf("failed loads uploaded %d textures", n)
	}
	if _, err := cache.Get(graphics.TextureStone0); err == nil {
		t.Error("failed load must not register the key")
	}
}

func TestTextureCacheReleaseOnce(t *testing.T) {
	dir := t.TempDir()
	rec := graphicstest.NewRecorder()
	cache := graphics.NewTextureCache(rec)
	for i, name := range []string{"a.png", "b.png"} {
		if _, err := cache.Load(graphics.TextureKey(i), writePNG(t, dir, name)); err != nil {
			t.Fatal(err)
		}
	}
	// alias, must not be released twice
	if _, err := cache.Load(graphics.TextureStone2, filepath.Join(dir, "a.png")); err != nil {
		t.Fatal(err)
	}

	cache.ReleaseAll()
	cache.ReleaseAll()

	if got := len(rec.Ops("release-texture")); got != 2 {
		t.Errorf("texture releases = %d, want 2", got)
	}
	if d := rec.DoubleReleases(); len(d) != 0 {
		t.Errorf("double releases: %v", d)
	}
	if _, err := cache.Get(graphics.TextureStone0); err == nil {
		t.Error("Get after ReleaseAll should fail")
	}
}

func TestTextureCacheRejectsLoadAfterRelease(t *testing.T) {
	path := writePNG(t, t.TempDir(), "stone.png")
	rec := graphicstest.NewRecorder()
	cache := graphics.NewTextureCache(rec)

	if _, err := cache.Load(graphics.TextureStone0, path); err != nil {
		t.Fatal(err)
	}
	cache.ReleaseAll()

	_, err := cache.Load(graphics.TextureStone0, path)
	if !errors.Is(err, graphics.ErrCacheReleased) {
		t.Fatalf("Load after ReleaseAll: err = %v, want ErrCacheReleased", err)
	}
	var loadErr *graphics.ResourceLoadError
	if !errors.As(err, &loadErr) || loadErr.Path != path {
		t.Errorf("err = %#v, want ResourceLoadError for %s", err, path)
	}
	cache.ReleaseAll()

	if got := len(rec.Ops("new-texture")); got != 1 {
		t.Errorf("uploads = %d, want 1", got)
	}
	if live := rec.Live(); len(live) != 0 {
		t.Errorf("live handles after release: %v", live)
	}
}
