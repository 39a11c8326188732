package postprocess

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelColor is the frame label text color.
var LabelColor = color.NRGBA{R: 230, G: 230, B: 230, A: 255}

// DrawLabel writes text into the top-left corner of img, in place.
func DrawLabel(img draw.Image, text string) {
	face := basicfont.Face7x13
	m := face.Metrics()
	b := img.Bounds()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor),
		Face: face,
		Dot:  fixed.P(b.Min.X+8, b.Min.Y+6+m.Ascent.Ceil()),
	}
	d.DrawString(text)
}

// LabelBounds returns the pixel rectangle DrawLabel would touch.
func LabelBounds(img image.Image, text string) image.Rectangle {
	face := basicfont.Face7x13
	b := img.Bounds()
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()
	return image.Rect(b.Min.X+8, b.Min.Y+6, b.Min.X+8+w, b.Min.Y+6+h).Intersect(b)
}
