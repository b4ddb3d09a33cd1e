// Package docexport renders an aggregated shopping list as a printable
// document. Rendering is a pure function of the list.
package docexport

import (
	"fmt"
	"strings"

	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
)

// Page geometry in points, A4, origin top-left. Text y values are baselines.
const (
	PageWidth  = 595.0
	PageHeight = 842.0

	Title     = "Shopping list"
	TitleX    = 200.0
	TitleY    = 42.0
	TitleSize = 24.0

	ItemX         = 75.0
	FirstItemY    = 92.0
	ContinuationY = 42.0
	LineStep      = 25.0
	ItemSize      = 16.0
	BottomLimit   = PageHeight - 50.0
)

type Line struct {
	Text string
	Y    float64
}

// Page is one rendered sheet. Only the first page carries the title.
type Page struct {
	Title string
	Lines []Line
}

// FormatItem renders "<1> Sugar - 150, g". Units that clashed with the
// first one are appended as "(mixed units: tbsp)" since their amounts were
// summed in regardless.
func FormatItem(index int, item recipes.ShoppingListItem) string {
	out := fmt.Sprintf("<%d> %s - %d, %s", index, strings.TrimSpace(item.Name), item.TotalAmount, strings.TrimSpace(item.MeasurementUnit))
	if len(item.ConflictingUnits) > 0 {
		out += " (mixed units: " + strings.Join(item.ConflictingUnits, ", ") + ")"
	}
	return out
}

// Paginate lays the list out top to bottom, opening a new page whenever the
// next line would fall below BottomLimit. An empty list yields a single
// page holding just the title.
func Paginate(list recipes.ShoppingList) []Page {
	pages := []Page{{Title: Title}}
	y := FirstItemY
	for i, item := range list.Items {
		if y > BottomLimit {
			pages = append(pages, Page{})
			y = ContinuationY
		}
		cur := &pages[len(pages)-1]
		cur.Lines = append(cur.Lines, Line{Text: FormatItem(i+1, item), Y: y})
		y += LineStep
	}
	return pages
}

// FirstPageCapacity and PageCapacity are how many item lines fit on the
// title page and on each continuation page.
func FirstPageCapacity() int { return capacityFrom(FirstItemY) }
func PageCapacity() int      { return capacityFrom(ContinuationY) }

func capacityFrom(y float64) int {
	n := 0
	for ; y <= BottomLimit; y += LineStep {
		n++
	}
	return n
}
