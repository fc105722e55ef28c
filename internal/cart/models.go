package cart

import (
	"encoding/json"
	"time"

	"gallery-store/internal/products"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a cart. Product is the catalog entry as it was when
// the line was created and is not refreshed afterwards.
type CartItem struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	ProductID int              `json:"product_id"`
	Quantity  int              `json:"quantity"`
	AddedAt   time.Time        `json:"added_at"`
	Product   products.Product `json:"product"`
}

func (i CartItem) Total() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	UserID int        `json:"user_id"`
	Items  []CartItem `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) TotalItems() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Total())
	}
	return total
}

// MarshalJSON adds the derived totals so clients never compute them.
func (c Cart) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(struct {
		UserID     int             `json:"user_id"`
		Items      []CartItem      `json:"items"`
		IsEmpty    bool            `json:"is_empty"`
		TotalItems int             `json:"total_items"`
		Total      decimal.Decimal `json:"total"`
	}{
		UserID:     c.UserID,
		Items:      items,
		IsEmpty:    c.IsEmpty(),
		TotalItems: c.TotalItems(),
		Total:      c.Total(),
	})
}

func (c Cart) clone() Cart {
	out := Cart{UserID: c.UserID, Items: make([]CartItem, len(c.Items))}
	copy(out.Items, c.Items)
	return out
}
