package contextmenu

import "fmt"

// Action is invoked when a menu item is clicked.
type Action func(payload any)

// MenuItemSpec describes one clickable row.
type MenuItemSpec struct {
	Label string
	// Action is optional; without it a click only dismisses the menu.
	Action Action
	// CustomData, when non-nil, is passed to Action instead of the click
	// event. Zero values such as 0, "" and false count as data.
	CustomData any
}

// MenuSpec is the configuration captured for a zone at attach time.
type MenuSpec struct {
	Title string
	Items []MenuItemSpec
}

var defaultMenuSpec = MenuSpec{Title: "", Items: nil}

// withDefaults shallow-merges spec over the defaults and copies the item
// slice so later caller mutations cannot reach the captured spec.
func withDefaults(spec MenuSpec) MenuSpec {
	merged := defaultMenuSpec
	merged.Title = spec.Title
	if spec.Items != nil {
		merged.Items = append([]MenuItemSpec(nil), spec.Items...)
	}
	return merged
}

func (s MenuSpec) validate() error {
	for i, item := range s.Items {
		if item.Label == "" {
			return fmt.Errorf("%w: items[%d]: label is required", ErrInvalidSpec, i)
		}
	}
	return nil
}

// payload picks the value passed to the item's action.
func (it MenuItemSpec) payload(ev Event) any {
	if it.CustomData != nil {
		return it.CustomData
	}
	return ev
}
