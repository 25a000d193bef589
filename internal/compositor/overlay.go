package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/photoshow/internal/domain"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// textPass is one draw of a caption line; each line is drawn twice, the
// white pass offset by a pixel to act as a drop shadow
type textPass struct {
	x, y  int
	color color.Color
}

var (
	primaryPasses = []textPass{
		{21, 11, colornames.White},
		{20, 10, colornames.Darkslateblue},
	}
	secondaryPasses = []textPass{
		{31, 71, colornames.White},
		{30, 70, colornames.Slateblue},
	}
)

// drawCaption writes the caption sideways: the frame is turned a quarter,
// drawn on at fixed offsets, then turned back
func drawCaption(frame *image.NRGBA, c domain.Caption, fonts *domain.Fonts) *image.NRGBA {
	if fonts == nil {
		return frame
	}

	turned := imaging.Rotate270(frame)
	for _, p := range primaryPasses {
		drawText(turned, fonts.Large, c.Primary, p)
	}
	for _, p := range secondaryPasses {
		drawText(turned, fonts.Small, c.Secondary, p)
	}
	return imaging.Rotate90(turned)
}

// drawText places text with its top-left corner at the pass offset
func drawText(dst draw.Image, face font.Face, text string, p textPass) {
	if text == "" || face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(p.color),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(p.x), Y: fixed.I(p.y) + face.Metrics().Ascent},
	}
	d.DrawString(text)
}
