package images

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	maxCoverWidth = 1280
	jpegQuality   = 82
)

// Cover содержит метаданные обработанной обложки
type Cover struct {
	Width  int
	Height int
	Size   int
}

// ProcessCover декодирует картинку, при необходимости уменьшает до maxCoverWidth
// и кодирует в JPEG. Возвращает метаданные и байты для сохранения.
func ProcessCover(src io.Reader) (Cover, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Cover{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxCoverWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Cover{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return Cover{Width: w, Height: h, Size: buf.Len()}, buf.Bytes(), nil
}
