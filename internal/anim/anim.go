// Package anim stitches rendered FTLE frames into an animated GIF.
package anim

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"

	"github.com/george9932/LCS-FTLE-Optimized/internal/results"
)

// Stitch encodes the ordered frames into a GIF at outPath. delay is in
// hundredths of a second per frame. Frames are quantized to a shared
// 256-color palette with Floyd-Steinberg dithering.
func Stitch(frames []results.Frame, outPath string, delay int) error {
	if len(frames) == 0 {
		return results.ErrNoFrames
	}
	if delay < 1 {
		delay = 1
	}

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}

	var bounds image.Rectangle
	for i, fr := range frames {
		img, err := loadPNG(fr.Path)
		if err != nil {
			return err
		}
		if i == 0 {
			bounds = img.Bounds()
		} else if img.Bounds() != bounds {
			return fmt.Errorf("anim: frame %s is %v, first frame is %v", fr.Path, img.Bounds().Size(), bounds.Size())
		}

		pimg := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, bounds, img, bounds.Min)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("anim: decode %s: %w", path, err)
	}
	return img, nil
}
