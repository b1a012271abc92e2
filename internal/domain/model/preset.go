package model

// PresetItem is one named item with a quantity inside a preset.
type PresetItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Preset is a reusable named list of items bound to one of the owner's
// categories.
type Preset struct {
	ID       int64
	UserID   int64
	Name     string
	Category string
	Items    []PresetItem
}
