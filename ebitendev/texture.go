package ebitendev

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// texture is an uploaded, resampled image.
type texture struct {
	img *ebiten.Image
}

func (t *texture) Valid() bool { return t != nil && t.img != nil }

// resample scales img to a size x size RGBA image. Every source image of a
// Kage draw must share one size, so all textures are brought to the same
// square before upload.
func resample(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Fallback colors sampled from units no TextureNode bound.
var (
	fallbackDiffuse = color.RGBA{255, 255, 255, 255}
	fallbackNormal  = color.RGBA{128, 128, 255, 255} // +Z in tangent space
	fallbackDepth   = color.RGBA{0, 0, 0, 255}       // no displacement
)

// fallbackImages returns one flat image per sampler slot.
func fallbackImages(size int) [4]*ebiten.Image {
	var imgs [4]*ebiten.Image
	for i, c := range []color.RGBA{fallbackDiffuse, fallbackNormal, fallbackDepth, fallbackDepth} {
		imgs[i] = ebiten.NewImage(size, size)
		imgs[i].Fill(c)
	}
	return imgs
}
