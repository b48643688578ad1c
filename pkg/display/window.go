// Package display shows a rendered figure in a desktop window.
package display

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Show opens a window displaying img and blocks until the user closes it
// (or presses Escape or Q).
func Show(img image.Image, title string) error {
	b := img.Bounds()
	if b.Empty() {
		return errors.New("nothing to display: empty figure")
	}

	w := &window{src: img, width: b.Dx(), height: b.Dy()}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// The figure is static, so no need to redraw faster than input polling
	ebiten.SetTPS(30)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type window struct {
	src           image.Image
	img           *ebiten.Image
	width, height int
}

func (w *window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	// Upload once; the GPU image must be created on the game goroutine
	if w.img == nil {
		w.img = ebiten.NewImageFromImage(w.src)
	}
	screen.DrawImage(w.img, nil)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
