package graphics

import "fmt"

// TextureKey identifies an entry of the texture cache.
type TextureKey int

const (
	TextureStone0 TextureKey = iota
	TextureStone1
	TextureStone2
	TextureCat
	textureKeyCount
)

var textureKeyNames = [...]string{
	TextureStone0: "stone0",
	TextureStone1: "stone1",
	TextureStone2: "stone2",
	TextureCat:    "cat",
}

func (k TextureKey) String() string {
	if k < 0 || k >= textureKeyCount {
		return fmt.Sprintf("TextureKey(%d)", int(k))
	}
	return textureKeyNames[k]
}

// ParseTextureKey maps a configuration name such as "stone0" to its key.
func ParseTextureKey(name string) (TextureKey, error) {
	for k, n := range textureKeyNames {
		if n == name {
			return TextureKey(k), nil
		}
	}
	return 0, fmt.Errorf("unknown texture key %q", name)
}
