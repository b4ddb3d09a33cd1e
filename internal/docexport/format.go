package docexport

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat accepts "pdf" or "png", case-insensitively; empty means pdf.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(FormatPDF):
		return FormatPDF, nil
	case string(FormatPNG):
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "application/pdf"
}

func (f Format) Filename() string {
	if f == FormatPNG {
		return "shopping_list.png"
	}
	return "shopping_list.pdf"
}
