package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/san-kum/windtunnel/internal/viz"
)

// Cell size in pixels of one braille character in PNG screenshots.
const (
	charW = 8
	charH = 16
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per dot, coloured
// by layer.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Background)

	dotRadius := scale * 0.4
	canvas.Dots(func(x, y int, l viz.Layer) {
		cx := float64(x)*scale + scale/2
		cy := float64(y)*scale + scale/2
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, theme.LayerColor(l))
	})

	sb.WriteString("</svg>\n")
	return sb.String()
}

// CanvasToImage rasterises the canvas: every dot becomes a block of
// charW/2 x charH/4 pixels in its layer colour.
func CanvasToImage(canvas *viz.Canvas, theme viz.Theme) *image.Paletted {
	br, bg, bb := theme.BackgroundRGB()
	palette := color.Palette{color.RGBA{br, bg, bb, 0xff}}
	index := map[viz.Layer]uint8{}
	for l := viz.LayerNone; l <= viz.LayerObjectHot; l++ {
		r, g, b := theme.LayerRGB(l)
		index[l] = uint8(len(palette))
		palette = append(palette, color.RGBA{r, g, b, 0xff})
	}

	img := image.NewPaletted(image.Rect(0, 0, canvas.Width*charW, canvas.Height*charH), palette)
	dotW, dotH := charW/2, charH/4
	canvas.Dots(func(x, y int, l viz.Layer) {
		ci := index[l]
		for py := 0; py < dotH; py++ {
			for px := 0; px < dotW; px++ {
				img.SetColorIndex(x*dotW+px, y*dotH+py, ci)
			}
		}
	})
	return img
}

func CanvasToPNG(w io.Writer, canvas *viz.Canvas, theme viz.Theme) error {
	return png.Encode(w, CanvasToImage(canvas, theme))
}

// SaveScreenshot writes the canvas as SVG for a ".svg" path and PNG otherwise.
func SaveScreenshot(path string, canvas *viz.Canvas, theme viz.Theme) error {
	if canvas == nil {
		return fmt.Errorf("export: nothing to capture")
	}
	return writeFile(path, func(w io.Writer) error {
		if strings.EqualFold(filepath.Ext(path), ".svg") {
			_, err := io.WriteString(w, CanvasToSVG(canvas, 4, theme))
			return err
		}
		return CanvasToPNG(w, canvas, theme)
	})
}
