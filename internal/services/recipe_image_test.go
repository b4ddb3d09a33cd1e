package services

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
)

func encodedJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImageData(t *testing.T) {
	payload := []byte("hello")
	plain := base64.StdEncoding.EncodeToString(payload)

	for _, raw := range []string{plain, "data:image/png;base64," + plain} {
		got, err := DecodeImageData(raw)
		if err != nil || string(got) != "hello" {
			t.Fatalf("%q: got %q, %v", raw, got, err)
		}
	}
	for _, raw := range []string{"", "data:image/png," + plain, "%%%"} {
		if _, err := DecodeImageData(raw); !errors.Is(err, recipes.ErrInvalidImage) {
			t.Fatalf("%q: want ErrInvalidImage, got %v", raw, err)
		}
	}
}

func TestProcessRecipeImage(t *testing.T) {
	for _, size := range [][2]int{{1000, 1000}, {200, 50}, {50, 400}, {500, 300}} {
		out, err := ProcessRecipeImage(encodedJPEG(t, size[0], size[1]))
		if err != nil {
			t.Fatalf("%v: %v", size, err)
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("%v: output is not png: %v", size, err)
		}
		if cfg.Width != RecipeImageWidth || cfg.Height != RecipeImageHeight {
			t.Fatalf("%v: got %dx%d", size, cfg.Width, cfg.Height)
		}
	}
	if _, err := ProcessRecipeImage([]byte("not an image")); !errors.Is(err, recipes.ErrInvalidImage) {
		t.Fatalf("garbage input: %v", err)
	}
}

// oversizedPNG encodes a 1x1 gray PNG and rewrites its IHDR to claim w x h.
func oversizedPNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	b := buf.Bytes()
	// signature(8) length(4) "IHDR"(4) then width and height
	binary.BigEndian.PutUint32(b[16:20], w)
	binary.BigEndian.PutUint32(b[20:24], h)
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))
	return b
}

func TestProcessRecipeImageRejectsHugeDimensions(t *testing.T) {
	raw := oversizedPNG(t, 30000, 30000)
	if len(raw) > 1024 {
		t.Fatalf("fixture should stay tiny, got %d bytes", len(raw))
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil || cfg.Width != 30000 || cfg.Height != 30000 {
		t.Fatalf("fixture header: %+v %v", cfg, err)
	}
	if _, err := ProcessRecipeImage(raw); !errors.Is(err, recipes.ErrInvalidImage) {
		t.Fatalf("want ErrInvalidImage, got %v", err)
	}
}
