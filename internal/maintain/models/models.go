// Package models holds the category tree and reference-list records along
// with their request and response shapes.
package models

// Category is a node in the charge classification tree. ParentID is nil for
// top-level categories.
type Category struct {
	ID           int64
	Name         string
	DisplayName  string
	ParentID     *int64
	DisplayOrder int
	Permission   *string
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

// Instrument is a legal instrument a category may reference.
type Instrument struct {
	ID   int64
	Name string
}

// StatutoryProvision is a statutory basis a category may reference.
type StatutoryProvision struct {
	ID         int64
	Title      string
	Selectable bool
}

// CategoryInput is the validated create/update payload for a category.
type CategoryInput struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"display-name"`
	DisplayOrder int      `json:"display-order"`
	Permission   *string  `json:"permission"`
	Provisions   []string `json:"provisions"`
	Instruments  []string `json:"instruments"`
}

// InstrumentInput is the validated create/update payload for an instrument.
type InstrumentInput struct {
	Name string `json:"name"`
}

// ProvisionInput is the validated create/update payload for a statutory provision.
type ProvisionInput struct {
	Title      string `json:"title"`
	Selectable bool   `json:"selectable"`
}

// CategorySummary is the list projection of a category.
type CategorySummary struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display-name"`
	Permission  *string `json:"permission"`
}

// CategoryDetail is the single-category projection. Parent is only set for
// sub-categories.
type CategoryDetail struct {
	Name                string            `json:"name"`
	DisplayName         string            `json:"display-name"`
	Permission          *string           `json:"permission"`
	StatutoryProvisions []string          `json:"statutory-provisions"`
	Instruments         []string          `json:"instruments"`
	SubCategories       []CategorySummary `json:"sub-categories"`
	Parent              string            `json:"parent,omitempty"`
}

// Summary projects a category for list responses.
func (c *Category) Summary() CategorySummary {
	return CategorySummary{
		Name:        c.Name,
		DisplayName: c.DisplayName,
		Permission:  c.Permission,
	}
}
