package source

import (
	"image"
	"image/color"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// BuildQRSlide renders a canvas-sized outro image: a QR code for url,
// centered on a dark backdrop. The result is written as PNG so the outro
// can go through the same render path as any other slide.
func BuildQRSlide(url string, width, height int, outPath string) error {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return err
	}

	// The QR square takes 60% of the narrow canvas dimension.
	side := width * 6 / 10
	if height < width {
		side = height * 6 / 10
	}
	code := qr.Image(side)

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{color.RGBA{18, 18, 24, 255}}, image.Point{}, draw.Src)

	target := image.Rect((width-side)/2, (height-side)/2, (width+side)/2, (height+side)/2)
	xdraw.CatmullRom.Scale(canvas, target, code, code.Bounds(), xdraw.Over, nil)

	return writePNG(outPath, canvas)
}
