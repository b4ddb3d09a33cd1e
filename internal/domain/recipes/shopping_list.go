package recipes

// ShoppingListItem is one ingredient name summed across every recipe in a
// cart. MeasurementUnit is the first unit seen for the name; any other unit
// met later is listed in ConflictingUnits.
type ShoppingListItem struct {
	Name             string   `json:"name"`
	MeasurementUnit  string   `json:"measurement_unit"`
	TotalAmount      int      `json:"total_amount"`
	ConflictingUnits []string `json:"conflicting_units,omitempty"`
}

type ShoppingList struct {
	Items []ShoppingListItem `json:"items"`
}

func (l ShoppingList) HasUnitConflicts() bool {
	for _, it := range l.Items {
		if len(it.ConflictingUnits) > 0 {
			return true
		}
	}
	return false
}
