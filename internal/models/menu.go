package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"quickbite/internal/apperr"

	"github.com/shopspring/decimal"
)

// MenuItem represents a meal offered by the cafeteria
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	MenuCategoryMain     MenuCategory = "main"
	MenuCategorySide     MenuCategory = "side"
	MenuCategoryDessert  MenuCategory = "dessert"
	MenuCategoryBeverage MenuCategory = "beverage"
)

// ParseMenuCategory validates a category name.
func ParseMenuCategory(s string) (MenuCategory, error) {
	switch c := MenuCategory(s); c {
	case MenuCategoryMain, MenuCategorySide, MenuCategoryDessert, MenuCategoryBeverage:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown menu category %q", apperr.ErrValidation, s)
}

// ItemID is a menu item id as written in JSON. Both numeric and string ids
// are accepted; numeric ids are kept as their decimal text so lookups always
// compare strings.
type ItemID string

// UnmarshalJSON decodes a string or number id.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*id = ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*id = ItemID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("menu item id: %w", err)
		}
		*id = ItemID(n.String())
	}
	return nil
}

// UnmarshalJSON accepts both numeric and string ids.
func (mi *MenuItem) UnmarshalJSON(data []byte) error {
	type alias MenuItem
	aux := struct {
		ID ItemID `json:"id"`
		*alias
	}{alias: (*alias)(mi)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	mi.ID = string(aux.ID)
	return nil
}

// ValidateMenuItem validates a menu item
func ValidateMenuItem(item *MenuItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: menu item id is required", apperr.ErrValidation)
	}
	if item.Name == "" {
		return fmt.Errorf("%w: menu item name is required", apperr.ErrValidation)
	}
	if !item.Price.IsPositive() {
		return fmt.Errorf("%w: menu item %s price must be greater than 0", apperr.ErrValidation, item.ID)
	}
	return nil
}

// IsInCategory checks if the item belongs to a specific category
func (mi *MenuItem) IsInCategory(category MenuCategory) bool {
	return mi.Category == string(category)
}

// Catalog is the read-only menu, loaded once per process.
type Catalog struct {
	items []MenuItem
	byID  map[string]MenuItem
}

// menuFile is the on-disk layout of the menu.
type menuFile struct {
	Meals []MenuItem `json:"meals"`
}

// NewCatalog validates items and indexes them by id. Order is preserved for
// display.
func NewCatalog(items []MenuItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]MenuItem, 0, len(items)),
		byID:  make(map[string]MenuItem, len(items)),
	}
	for i := range items {
		item := items[i]
		if err := ValidateMenuItem(&item); err != nil {
			return nil, err
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate menu item id %s", apperr.ErrValidation, item.ID)
		}
		c.items = append(c.items, item)
		c.byID[item.ID] = item
	}
	return c, nil
}

// ParseMenu decodes a menu document of the form {"meals": [...]}.
func ParseMenu(data []byte) (*Catalog, error) {
	var f menuFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	return NewCatalog(f.Meals)
}

// LoadMenu reads the menu file at path. A missing file yields an empty
// catalog, matching a cafeteria that has not published a menu yet.
func LoadMenu(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewCatalog(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}
	return ParseMenu(data)
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id string) (MenuItem, error) {
	item, ok := c.byID[id]
	if !ok {
		return MenuItem{}, fmt.Errorf("%w: menu item %q", apperr.ErrNotFound, id)
	}
	return item, nil
}

// Items returns the menu in file order.
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// InCategory returns the items of one category in file order.
func (c *Catalog) InCategory(category MenuCategory) []MenuItem {
	out := make([]MenuItem, 0)
	for i := range c.items {
		if c.items[i].IsInCategory(category) {
			out = append(out, c.items[i])
		}
	}
	return out
}

// Len returns the number of items on the menu.
func (c *Catalog) Len() int {
	return len(c.items)
}
