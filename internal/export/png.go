package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
)

// frameContext paints an RGBA buffer onto a gg context, each cell scaled to a
// scale×scale block.
func frameContext(pixels []byte, width, height, scale int) (*gg.Context, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrFrameSize, len(pixels), width, height)
	}
	if scale < 1 {
		scale = 1
	}
	dc := gg.NewContext(width*scale, height*scale)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			col := byteColor(pixels[i], pixels[i+1], pixels[i+2], pixels[i+3])
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					dc.SetPixel(x*scale+dx, y*scale+dy, col)
				}
			}
		}
	}
	return dc, nil
}

// byteColor centers each byte in its bucket so gg's truncating
// float→byte conversion returns the same byte.
func byteColor(r, g, b, a byte) gg.RGBA {
	return gg.RGBA2(
		(float64(r)+0.5)/255,
		(float64(g)+0.5)/255,
		(float64(b)+0.5)/255,
		(float64(a)+0.5)/255,
	)
}

// EncodePNG writes a single frame.
func EncodePNG(w io.Writer, pixels []byte, width, height, scale int) error {
	dc, err := frameContext(pixels, width, height, scale)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// PNGSink writes every frame it receives to dir as <prefix>_0000.png,
// <prefix>_0001.png and so on.
type PNGSink struct {
	dir    string
	prefix string
	scale  int
	frames int
}

func NewPNGSink(dir string, scale int) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &PNGSink{dir: dir, prefix: "frame", scale: scale}, nil
}

func (s *PNGSink) Draw(pixels []byte, width, height int) error {
	dc, err := frameContext(pixels, width, height, s.scale)
	if err != nil {
		return err
	}
	defer dc.Close()
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%04d.png", s.prefix, s.frames))
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	s.frames++
	return nil
}

func (s *PNGSink) Frames() int { return s.frames }
