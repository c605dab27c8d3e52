// Package diagram draws the pipeline of an architecture as a row of
// labelled stage boxes per pipe.
package diagram

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Pipe is one named row of stages.
type Pipe struct {
	Name   string
	Stages []string
}

const (
	margin  = 10
	pad     = 6
	boxH    = 24
	arrowW  = 16
	rowGap  = 10
	headLen = 4
)

var (
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	boxFill    = color.RGBA{0xe8, 0xf0, 0xfa, 0xff}
	ink        = color.RGBA{0x20, 0x20, 0x20, 0xff}
)

var face font.Face = basicfont.Face7x13

// Pipeline lays out one row per pipe. Without pipes, the declared stages
// form a single unnamed row. Equal input yields an identical image.
func Pipeline(stages []string, pipes []Pipe) image.Image {
	rows := pipes
	if len(rows) == 0 {
		rows = []Pipe{{Stages: stages}}
	}

	labelW := 0
	cols := 1
	boxW := 2 * pad
	for _, r := range rows {
		if w := textWidth(r.Name); w > 0 && w+pad > labelW {
			labelW = w + pad
		}
		if len(r.Stages) > cols {
			cols = len(r.Stages)
		}
		for _, s := range r.Stages {
			if w := textWidth(s) + 2*pad; w > boxW {
				boxW = w
			}
		}
	}

	width := 2*margin + labelW + cols*boxW + (cols-1)*arrowW
	height := 2*margin + len(rows)*boxH + (len(rows)-1)*rowGap
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for i, r := range rows {
		y := margin + i*(boxH+rowGap)
		if r.Name != "" {
			label(img, margin, y+boxH/2, r.Name)
		}
		x := margin + labelW
		for j, s := range r.Stages {
			box(img, image.Rect(x, y, x+boxW, y+boxH))
			label(img, x+(boxW-textWidth(s))/2, y+boxH/2, s)
			if j < len(r.Stages)-1 {
				arrow(img, x+boxW, x+boxW+arrowW, y+boxH/2)
			}
			x += boxW + arrowW
		}
	}
	return img
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "encoding pipeline diagram")
	}
	return nil
}

func textWidth(s string) int {
	if s == "" {
		return 0
	}
	return font.MeasureString(face, s).Ceil()
}

// label draws s with its vertical centre on midY.
func label(img draw.Image, x, midY int, s string) {
	m := face.Metrics()
	baseline := midY + (m.Ascent.Ceil()-m.Descent.Ceil())/2
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func box(img *image.RGBA, r image.Rectangle) {
	draw.Draw(img, r, image.NewUniform(boxFill), image.Point{}, draw.Src)
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, ink)
		img.Set(x, r.Max.Y-1, ink)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, ink)
		img.Set(r.Max.X-1, y, ink)
	}
}

func arrow(img *image.RGBA, x0, x1, y int) {
	for x := x0; x < x1; x++ {
		img.Set(x, y, ink)
	}
	for i := 1; i <= headLen; i++ {
		img.Set(x1-1-i, y-i, ink)
		img.Set(x1-1-i, y+i, ink)
	}
}
