package graphics

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImageFile reads an image file in any registered format.
func DecodeImageFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ResourceLoadError{Kind: ResourceTexture, Path: path, Err: err}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &ResourceLoadError{Kind: ResourceTexture, Path: path, Err: err}
	}
	return img, nil
}

// FlipToRGB converts img to packed RGB with rows reversed, so that the first
// row in memory is the bottom of the image as OpenGL expects.
func FlipToRGB(img image.Image) Pixels {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	out := make([]byte, 0, w*h*3)
	for y := h - 1; y >= 0; y-- {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return Pixels{Width: w, Height: h, RGB: out}
}

// LoadPixels decodes and flips the image at path.
func LoadPixels(path string) (Pixels, error) {
	img, err := DecodeImageFile(path)
	if err != nil {
		return Pixels{}, err
	}
	return FlipToRGB(img), nil
}
