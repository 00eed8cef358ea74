package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Half blocks: the glyph's foreground paints the upper cell, its background
// the lower one, so one terminal line shows two matrix rows.
const upperHalf = "▀"

// Canvas turns RGBA frames into colored terminal text. It is also a
// render.Sink that keeps the latest frame.
type Canvas struct {
	Width, Height int
	frame         string
	frames        int
}

func NewCanvas() *Canvas { return &Canvas{} }

func (c *Canvas) Draw(pixels []byte, width, height int) error {
	c.Width, c.Height = width, height
	c.frame = HalfBlocks(pixels, width, height)
	c.frames++
	return nil
}

// Frames counts the frames drawn so far.
func (c *Canvas) Frames() int { return c.frames }

func (c *Canvas) String() string { return c.frame }

// HalfBlocks renders a row-major RGBA buffer, width cells across, two rows
// per line. An odd last row leaves the lower half unpainted.
func HalfBlocks(pixels []byte, width, height int) string {
	if len(pixels) < width*height*4 {
		return ""
	}
	var sb strings.Builder
	for y := 0; y < height; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(cellColor(pixels, (y*width+x)*4))
			if y+1 < height {
				style = style.Background(cellColor(pixels, ((y+1)*width+x)*4))
			}
			sb.WriteString(style.Render(upperHalf))
		}
	}
	return sb.String()
}

func cellColor(pixels []byte, i int) lipgloss.Color {
	c := colorful.Color{
		R: float64(pixels[i]) / 255,
		G: float64(pixels[i+1]) / 255,
		B: float64(pixels[i+2]) / 255,
	}
	return lipgloss.Color(c.Hex())
}
