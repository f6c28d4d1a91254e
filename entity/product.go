package entity

import (
	"ShelfGuardian/internal/lib/validate"
	"fmt"
	"net/http"
	"strings"
)

type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryMedicine      Category = "MEDICINE"
	CategoryMiscellaneous Category = "MISCELLANEOUS"
)

var categorySynonyms = map[string]Category{
	"food":          CategoryFood,
	"foods":         CategoryFood,
	"grocery":       CategoryFood,
	"groceries":     CategoryFood,
	"edible":        CategoryFood,
	"medicine":      CategoryMedicine,
	"medicines":     CategoryMedicine,
	"drug":          CategoryMedicine,
	"drugs":         CategoryMedicine,
	"pharmacy":      CategoryMedicine,
	"miscellaneous": CategoryMiscellaneous,
	"non-food":      CategoryMiscellaneous,
	"nonfood":       CategoryMiscellaneous,
	"other":         CategoryMiscellaneous,
	"others":        CategoryMiscellaneous,
}

// ParseCategory accepts the canonical names in any case plus common synonyms.
func ParseCategory(s string) (Category, error) {
	c, ok := categorySynonyms[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryMedicine, CategoryMiscellaneous:
		return true
	}
	return false
}

type Product struct {
	ID          int64    `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Category    Category `json:"category" bson:"category"`
	ExpiryDate  Date     `json:"expiry_date" bson:"expiry_date"`
	Quantity    int      `json:"quantity" bson:"quantity"`
	Description string   `json:"description" bson:"description"`
	UserID      int64    `json:"user_id" bson:"user_id"`
}

// Line renders the product the way assistant tools report it.
func (p *Product) Line(verb string) string {
	return fmt.Sprintf("%s (%s) → %s on %s", p.Name, p.Category, verb, p.ExpiryDate.Format("02-01-2006"))
}

type ProductCreate struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Category    Category `json:"category" validate:"required"`
	ExpiryDate  Date     `json:"expiry_date" validate:"required"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Description string   `json:"description" validate:"omitempty"`
}

func (pc *ProductCreate) Bind(_ *http.Request) error {
	if pc.Category != "" {
		c, err := ParseCategory(string(pc.Category))
		if err != nil {
			return err
		}
		pc.Category = c
	}
	if !pc.ExpiryDate.IsZero() && !pc.ExpiryDate.InRange() {
		return ErrDateOutOfRange
	}
	return validate.Struct(pc)
}

func (pc *ProductCreate) Product(userID int64) *Product {
	quantity := 1
	if pc.Quantity != nil {
		quantity = *pc.Quantity
	}
	return &Product{
		Name:        strings.TrimSpace(pc.Name),
		Category:    pc.Category,
		ExpiryDate:  pc.ExpiryDate,
		Quantity:    quantity,
		Description: pc.Description,
		UserID:      userID,
	}
}

// ProductUpdate is a partial update: nil fields are left untouched.
type ProductUpdate struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Category    *Category `json:"category"`
	ExpiryDate  *Date     `json:"expiry_date"`
	Quantity    *int      `json:"quantity" validate:"omitempty,gte=0"`
	Description *string   `json:"description"`
}

func (pu *ProductUpdate) Bind(_ *http.Request) error {
	if pu.Category != nil {
		c, err := ParseCategory(string(*pu.Category))
		if err != nil {
			return err
		}
		pu.Category = &c
	}
	if pu.ExpiryDate != nil && !pu.ExpiryDate.InRange() {
		return ErrDateOutOfRange
	}
	return validate.Struct(pu)
}

func (pu *ProductUpdate) Apply(p *Product) {
	if pu.Name != nil {
		p.Name = strings.TrimSpace(*pu.Name)
	}
	if pu.Category != nil {
		p.Category = *pu.Category
	}
	if pu.ExpiryDate != nil {
		p.ExpiryDate = *pu.ExpiryDate
	}
	if pu.Quantity != nil {
		p.Quantity = *pu.Quantity
	}
	if pu.Description != nil {
		p.Description = *pu.Description
	}
}

// ProductFilter narrows product listings; zero values mean "any".
type ProductFilter struct {
	UserID   int64
	Category Category
	Skip     int64
	Limit    int64
}

// ExpiryFilter selects products by expiry window; zero dates leave that
// side of the window open.
type ExpiryFilter struct {
	UserID   int64
	Category Category
	From     Date
	To       Date
}
