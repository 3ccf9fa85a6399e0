package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Group types. Only the presentation layer cares about them.
const (
	TypeRadios     = "radios"
	TypeCheckboxes = "checkboxes"
	TypeSelect     = "select"
)

// Product is a read-only menu entry. It is shared by every widget built from it.
type Product struct {
	ID          string                `json:"id" db:"id"`
	Name        string                `json:"name" db:"name"`
	Description string                `json:"description,omitempty" db:"description"`
	Price       decimal.Decimal       `json:"price" db:"price"`
	Params      map[string]ParamGroup `json:"params,omitempty" db:"-"`
	Position    int                   `json:"position,omitempty" db:"position"`
}

type ParamGroup struct {
	Label    string            `json:"label"`
	Type     string            `json:"type,omitempty"`
	Position int               `json:"position,omitempty"`
	Options  map[string]Option `json:"options"`
}

type Option struct {
	Label    string          `json:"label"`
	Price    decimal.Decimal `json:"price"`
	Default  bool            `json:"default,omitempty"`
	Position int             `json:"position,omitempty"`
}

// Single reports whether at most one option of the group can be chosen.
func (g ParamGroup) Single() bool {
	return g.Type == TypeRadios || g.Type == TypeSelect
}

// ParamIDs returns group ids in display order.
func (p *Product) ParamIDs() []string {
	ids := make([]string, 0, len(p.Params))
	for id := range p.Params {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := p.Params[ids[i]], p.Params[ids[j]]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return ids[i] < ids[j]
	})
	return ids
}

// OptionIDs returns option ids in display order.
func (g ParamGroup) OptionIDs() []string {
	ids := make([]string, 0, len(g.Options))
	for id := range g.Options {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := g.Options[ids[i]], g.Options[ids[j]]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (p *Product) Validate() error {
	if p.ID == "" {
		return errors.New("product id is empty")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product %s: negative base price %s", p.ID, p.Price)
	}
	for paramID, group := range p.Params {
		if paramID == "" {
			return fmt.Errorf("product %s: empty param id", p.ID)
		}
		for optionID := range group.Options {
			if optionID == "" {
				return fmt.Errorf("product %s: param %s: empty option id", p.ID, paramID)
			}
		}
	}
	return nil
}
