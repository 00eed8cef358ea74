package export

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

// GIFRecorder keeps every frame it is drawn and encodes them as one looping
// animation.
type GIFRecorder struct {
	scale  int
	delay  int
	frames []*image.Paletted
}

// NewGIFRecorder records frames scaled by scale, shown for delay hundredths
// of a second each.
func NewGIFRecorder(scale, delay int) *GIFRecorder {
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{scale: scale, delay: delay}
}

func (r *GIFRecorder) Draw(pixels []byte, width, height int) error {
	dc, err := frameContext(pixels, width, height, r.scale)
	if err != nil {
		return err
	}
	defer dc.Close()
	src := dc.Image()
	img := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	r.frames = append(r.frames, img)
	return nil
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
