package dto

// PresetItemPayload is one named line of a preset.
type PresetItemPayload struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// PresetRequest creates or replaces a preset.
type PresetRequest struct {
	Name     string              `json:"name"`
	Category string              `json:"category"`
	Items    []PresetItemPayload `json:"items"`
}

// PresetResponse describes one saved preset.
type PresetResponse struct {
	ID       int64               `json:"id"`
	Name     string              `json:"name"`
	Category string              `json:"category"`
	Items    []PresetItemPayload `json:"items"`
}

// NameRequest carries a single category or custom item name.
type NameRequest struct {
	Name string `json:"name"`
}
