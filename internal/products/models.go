package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a single artwork offered by the gallery.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Artist      string          `json:"artist" validate:"required"`
	Medium      string          `json:"medium"`
	Size        string          `json:"size"`
	Year        int             `json:"year" validate:"omitempty,min=1"`
	InStock     bool            `json:"in_stock"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewProduct is the payload accepted when an admin adds a work to the catalog.
type NewProduct struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	Artist      string          `json:"artist" validate:"required"`
	Medium      string          `json:"medium"`
	Size        string          `json:"size"`
	Year        int             `json:"year" validate:"omitempty,min=1"`
	InStock     *bool           `json:"in_stock"`
}

// SortOrder orders ListProducts results. The zero value keeps catalog order.
type SortOrder string

const (
	SortDefault   SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortTitleAsc  SortOrder = "title_asc"
	SortTitleDesc SortOrder = "title_desc"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(s); o {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortTitleAsc, SortTitleDesc:
		return o, true
	}
	return SortDefault, false
}

// Filter narrows ListProducts. Blank strings and nil pointers are ignored;
// every set field must match.
type Filter struct {
	Query    string
	Medium   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  *bool
	Sort     SortOrder
}
