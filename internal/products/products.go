package products

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"gallery-store/internal/apperr"
	"gallery-store/internal/events"
)

type Conf struct {
	mu       sync.RWMutex
	products []Product
	bus      *events.Bus
	now      func() time.Time
}

func NewConf(bus *events.Bus, seed []Product) (*Conf, error) {
	if bus == nil {
		return nil, fmt.Errorf("event bus is nil")
	}
	c := &Conf{
		products: make([]Product, 0, len(seed)),
		bus:      bus,
		now:      time.Now,
	}
	c.products = append(c.products, seed...)
	return c, nil
}

func (c *Conf) GetProductByID(ctx context.Context, id int) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i == -1 {
		return Product{}, apperr.NewNotFoundf("product %d not found", id)
	}
	return c.products[i], nil
}

func (c *Conf) ListProducts(ctx context.Context, f Filter) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(f.Query))
	medium := strings.TrimSpace(f.Medium)

	list := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(p.Artist), query) {
			continue
		}
		if medium != "" && !strings.EqualFold(p.Medium, medium) {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		list = append(list, p)
	}
	sortProducts(list, f.Sort)
	return list
}

// sortProducts orders list in place; ties keep catalog order.
func sortProducts(list []Product, order SortOrder) {
	var cmp func(a, b Product) int
	switch order {
	case SortPriceAsc:
		cmp = func(a, b Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		cmp = func(a, b Product) int { return b.Price.Cmp(a.Price) }
	case SortTitleAsc:
		cmp = func(a, b Product) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case SortTitleDesc:
		cmp = func(a, b Product) int { return strings.Compare(strings.ToLower(b.Title), strings.ToLower(a.Title)) }
	default:
		return
	}
	slices.SortStableFunc(list, cmp)
}

// Mediums returns the distinct non-blank media in the catalog, sorted.
func (c *Conf) Mediums(ctx context.Context) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	mediums := make([]string, 0, len(c.products))
	for _, p := range c.products {
		if m := strings.TrimSpace(p.Medium); m != "" {
			mediums = append(mediums, m)
		}
	}
	slices.Sort(mediums)
	return slices.Compact(mediums)
}

func (c *Conf) InsertProduct(ctx context.Context, np *NewProduct) (Product, error) {
	if np == nil {
		return Product{}, apperr.NewInvalidInput("product is required")
	}
	if np.Price.IsNegative() {
		return Product{}, apperr.NewInvalidInput("price must not be negative")
	}

	inStock := true
	if np.InStock != nil {
		inStock = *np.InStock
	}
	year := np.Year
	if year == 0 {
		year = c.now().Year()
	}

	c.mu.Lock()
	p := Product{
		ID:          c.nextID(),
		Title:       np.Title,
		Description: np.Description,
		Price:       np.Price,
		ImageURL:    np.ImageURL,
		Artist:      np.Artist,
		Medium:      np.Medium,
		Size:        np.Size,
		Year:        year,
		InStock:     inStock,
		CreatedAt:   c.now(),
	}
	c.products = append(c.products, p)
	c.mu.Unlock()

	slog.Debug("product inserted", slog.Int("ProductID", p.ID), slog.String("Title", p.Title))
	c.bus.Publish(events.TopicCatalogChanged, fmt.Sprint(p.ID), nil)
	return p, nil
}

// UpdateProduct replaces the stored product with the same id.
func (c *Conf) UpdateProduct(ctx context.Context, p *Product) (Product, error) {
	if p == nil {
		return Product{}, apperr.NewInvalidInput("product is required")
	}
	if p.Price.IsNegative() {
		return Product{}, apperr.NewInvalidInput("price must not be negative")
	}

	c.mu.Lock()
	i := c.indexOf(p.ID)
	if i == -1 {
		c.mu.Unlock()
		return Product{}, apperr.NewNotFoundf("product %d not found", p.ID)
	}
	c.products[i] = *p
	c.mu.Unlock()

	slog.Debug("product updated", slog.Int("ProductID", p.ID))
	c.bus.Publish(events.TopicCatalogChanged, fmt.Sprint(p.ID), nil)
	return *p, nil
}

func (c *Conf) DeleteProduct(ctx context.Context, id int) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i == -1 {
		c.mu.Unlock()
		return apperr.NewNotFoundf("product %d not found", id)
	}
	c.products = append(c.products[:i], c.products[i+1:]...)
	c.mu.Unlock()

	slog.Debug("product deleted", slog.Int("ProductID", id))
	c.bus.Publish(events.TopicCatalogChanged, fmt.Sprint(id), nil)
	return nil
}

// indexOf expects c.mu to be held.
func (c *Conf) indexOf(id int) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextID expects c.mu to be held.
func (c *Conf) nextID() int {
	maxID := 0
	for _, p := range c.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}
