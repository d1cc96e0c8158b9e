package material

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrAssetLoad is returned when a texture or model file cannot be read or decoded.
// Callers substitute a placeholder or skip the asset; it is never fatal.
var ErrAssetLoad = errors.New("asset load failure")

// DefaultMaxTextureSize is the largest texture edge uploaded without downscaling.
const DefaultMaxTextureSize = 2048

// placeholderSize and placeholderCell define the magenta/black checkerboard substituted for
// textures that fail to load.
const (
	placeholderSize = 64
	placeholderCell = 8
)

// Texture is decoded RGBA pixel data ready for GPU upload.
type Texture struct {
	// Path is the file the texture was requested from.
	Path string
	// Data is the tightly packed RGBA8 pixel data.
	Data common.TextureStagingData
	// Placeholder is true when Data is the checkerboard substituted for a failed load.
	Placeholder bool
}

// LoadTexture reads and decodes an image file. Images with an edge longer than maxSize are
// downscaled preserving aspect ratio.
//
// Parameters:
//   - path: the image file path
//   - maxSize: maximum edge length in pixels, 0 for DefaultMaxTextureSize
//
// Returns:
//   - *Texture: the decoded texture
//   - error: an error wrapping ErrAssetLoad if the file cannot be read or decoded
func LoadTexture(path string, maxSize int) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	defer f.Close()

	data, err := DecodeTexture(f, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, path, err)
	}
	return &Texture{Path: path, Data: data}, nil
}

// DecodeTexture decodes an image in any registered format into RGBA8 staging data.
//
// Parameters:
//   - r: the encoded image
//   - maxSize: maximum edge length in pixels, 0 for DefaultMaxTextureSize
//
// Returns:
//   - common.TextureStagingData: the pixel data
//   - error: error if decoding fails
func DecodeTexture(r io.Reader, maxSize int) (common.TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxTextureSize
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return common.TextureStagingData{}, errors.New("empty image")
	}
	if w > maxSize || h > maxSize {
		if w >= h {
			w, h = maxSize, max(h*maxSize/w, 1)
		} else {
			w, h = max(w*maxSize/h, 1), maxSize
		}
		img = transform.Resize(img, w, h, transform.Linear)
	}

	rgba := toRGBA(img)
	return common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(w),
		Height: uint32(h),
	}, nil
}

// PlaceholderTexture returns a magenta/black checkerboard standing in for path.
//
// Parameters:
//   - path: the path of the texture that failed to load
//
// Returns:
//   - *Texture: the placeholder texture
func PlaceholderTexture(path string) *Texture {
	pix := make([]byte, placeholderSize*placeholderSize*4)
	for y := range placeholderSize {
		for x := range placeholderSize {
			i := (y*placeholderSize + x) * 4
			if (x/placeholderCell+y/placeholderCell)%2 == 0 {
				pix[i], pix[i+1], pix[i+2] = 0xff, 0x00, 0xff
			}
			pix[i+3] = 0xff
		}
	}
	return &Texture{
		Path: path,
		Data: common.TextureStagingData{
			Pixels: pix,
			Width:  placeholderSize,
			Height: placeholderSize,
		},
		Placeholder: true,
	}
}

// toRGBA returns img as a tightly packed *image.RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == b.Dx()*4 {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
