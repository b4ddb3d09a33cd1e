package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
)

const (
	RecipeImageWidth  = 500
	RecipeImageHeight = 300

	maxRecipeImageBytes  = 10 << 20
	maxRecipeImagePixels = 40_000_000
)

// DecodeImageData accepts raw base64 or a data URI ("data:image/png;base64,...").
func DecodeImageData(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: image is required", recipes.ErrInvalidImage)
	}
	if strings.HasPrefix(raw, "data:") {
		i := strings.Index(raw, ",")
		if i < 0 || !strings.Contains(raw[:i], ";base64") {
			return nil, fmt.Errorf("%w: malformed data uri", recipes.ErrInvalidImage)
		}
		raw = raw[i+1:]
	}
	out, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", recipes.ErrInvalidImage, err)
	}
	if len(out) > maxRecipeImageBytes {
		return nil, fmt.Errorf("%w: image larger than %d bytes", recipes.ErrInvalidImage, maxRecipeImageBytes)
	}
	return out, nil
}

// ProcessRecipeImage center-crops raw to the 5:3 card ratio, scales it to
// 500x300 and re-encodes it as PNG.
func ProcessRecipeImage(raw []byte) ([]byte, error) {
	// the header alone is enough to refuse a pixel bomb before allocating it
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", recipes.ErrInvalidImage, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxRecipeImagePixels {
		return nil, fmt.Errorf("%w: image is %dx%d, over %d pixels", recipes.ErrInvalidImage, cfg.Width, cfg.Height, maxRecipeImagePixels)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", recipes.ErrInvalidImage, err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", recipes.ErrInvalidImage)
	}

	cropW, cropH := w, w*RecipeImageHeight/RecipeImageWidth
	if cropH > h {
		cropW, cropH = h*RecipeImageWidth/RecipeImageHeight, h
	}
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}
	x0 := b.Min.X + (w-cropW)/2
	y0 := b.Min.Y + (h-cropH)/2
	src := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, RecipeImageWidth, RecipeImageHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}
