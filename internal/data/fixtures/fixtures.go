// Package fixtures decodes the catalog seed files loaded by the CLI.
//
// Both files are JSON arrays. Each element is either the bare record or the
// Django dumpdata envelope {"model": "...", "fields": {...}}, and the two
// shapes may be mixed in one file.
package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

var (
	colorRE    = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugDropRE = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)
	hyphensRE  = regexp.MustCompile(`-{2,}`)
)

type envelope struct {
	Model  string          `json:"model"`
	Fields json.RawMessage `json:"fields"`
}

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

type tagRecord struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// ParseIngredients decodes an ingredient fixture. Names and units are
// trimmed; repeated (name, unit) pairs are collapsed to the first one.
func ParseIngredients(r io.Reader) ([]*types.Ingredient, error) {
	raws, err := decodeItems(r)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Ingredient, 0, len(raws))
	seen := make(map[[2]string]struct{}, len(raws))
	for i, raw := range raws {
		var rec ingredientRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("ingredient #%d: %w", i, err)
		}
		name := strings.TrimSpace(rec.Name)
		unit := strings.TrimSpace(rec.MeasurementUnit)
		if name == "" || unit == "" {
			return nil, fmt.Errorf("ingredient #%d: name and measurement_unit are required", i)
		}
		key := [2]string{name, unit}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, &types.Ingredient{Name: name, MeasurementUnit: unit})
	}
	return out, nil
}

// ParseTags decodes a tag fixture. A missing slug is derived from the name.
func ParseTags(r io.Reader) ([]*types.Tag, error) {
	raws, err := decodeItems(r)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Tag, 0, len(raws))
	slugs := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		var rec tagRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("tag #%d: %w", i, err)
		}
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, fmt.Errorf("tag #%d: name is required", i)
		}
		slug := strings.TrimSpace(rec.Slug)
		if slug == "" {
			slug = Slugify(name)
		}
		if slug == "" {
			return nil, fmt.Errorf("tag #%d: cannot derive slug from %q", i, name)
		}
		if _, dup := slugs[slug]; dup {
			return nil, fmt.Errorf("tag #%d: duplicate slug %q", i, slug)
		}
		slugs[slug] = struct{}{}
		color := strings.TrimSpace(rec.Color)
		if color != "" && !colorRE.MatchString(color) {
			return nil, fmt.Errorf("tag #%d: color %q is not #RRGGBB", i, color)
		}
		out = append(out, &types.Tag{Name: name, Slug: slug, Color: strings.ToUpper(color)})
	}
	return out, nil
}

// Slugify lowercases s and joins its words with hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "-")
	s = slugDropRE.ReplaceAllString(s, "")
	s = hyphensRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func decodeItems(r io.Reader) ([]json.RawMessage, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(body), &items); err != nil {
		return nil, fmt.Errorf("fixture must be a JSON array: %w", err)
	}
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		var env envelope
		if err := json.Unmarshal(item, &env); err == nil && len(env.Fields) > 0 && string(env.Fields) != "null" {
			out = append(out, env.Fields)
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
