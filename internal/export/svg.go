package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// FrameToSVG draws one rect per cell. Cells are scale units square.
func FrameToSVG(pixels []byte, width, height int, scale float64) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("%w: %d bytes for %dx%d", ErrFrameSize, len(pixels), width, height)
	}
	w := float64(width) * scale
	h := float64(height) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
`, w, h, w, h))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			fill := cellHex(pixels[i], pixels[i+1], pixels[i+2])
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(x)*scale, float64(y)*scale, scale, scale, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

func cellHex(r, g, b byte) string {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

// SeriesToSVG plots values against their index as a single path.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// SVGSink writes every frame to dir as <prefix>_0000.svg and onward.
type SVGSink struct {
	dir    string
	prefix string
	scale  float64
	frames int
}

func NewSVGSink(dir string, scale float64) (*SVGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = 1
	}
	return &SVGSink{dir: dir, prefix: "frame", scale: scale}, nil
}

func (s *SVGSink) Draw(pixels []byte, width, height int) error {
	doc, err := FrameToSVG(pixels, width, height, s.scale)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%04d.svg", s.prefix, s.frames))
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return err
	}
	s.frames++
	return nil
}

func (s *SVGSink) Frames() int { return s.frames }
