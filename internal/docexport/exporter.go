package docexport

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
)

const pdfFontFamily = "listfont"

// Exporter holds the parsed font. It is safe for concurrent use: faces are
// built per render because truetype faces keep mutable glyph caches.
type Exporter struct {
	fontBytes []byte
	ttf       *truetype.Font
}

// New parses the TrueType font at fontPath, or Go Mono when fontPath is empty.
func New(fontPath string) (*Exporter, error) {
	raw := gomono.TTF
	if p := strings.TrimSpace(fontPath); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		raw = b
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return &Exporter{fontBytes: raw, ttf: parsed}, nil
}

func (e *Exporter) Render(list recipes.ShoppingList, format Format) ([]byte, error) {
	pages := Paginate(list)
	switch format {
	case FormatPNG:
		return e.renderPNG(pages)
	case FormatPDF, "":
		out, _, err := e.renderPDF(pages)
		return out, err
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func (e *Exporter) renderPDF(pages []Page) ([]byte, int, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(Title, true)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", e.fontBytes)

	for _, p := range pages {
		pdf.AddPage()
		if p.Title != "" {
			pdf.SetFont(pdfFontFamily, "", TitleSize)
			pdf.Text(TitleX, TitleY, p.Title)
		}
		pdf.SetFont(pdfFontFamily, "", ItemSize)
		for _, l := range p.Lines {
			pdf.Text(ItemX, l.Y, l.Text)
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, 0, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), pdf.PageCount(), nil
}

// renderPNG stacks every page vertically into one image.
func (e *Exporter) renderPNG(pages []Page) ([]byte, error) {
	titleFace := e.face(TitleSize)
	itemFace := e.face(ItemSize)
	defer titleFace.Close()
	defer itemFace.Close()

	dc := gg.NewContext(int(PageWidth), int(PageHeight)*len(pages))
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	for i, p := range pages {
		top := float64(i) * PageHeight
		if p.Title != "" {
			dc.SetFontFace(titleFace)
			dc.DrawString(p.Title, TitleX, top+TitleY)
		}
		dc.SetFontFace(itemFace)
		for _, l := range p.Lines {
			dc.DrawString(l.Text, ItemX, top+l.Y)
		}
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) face(size float64) font.Face {
	return truetype.NewFace(e.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
