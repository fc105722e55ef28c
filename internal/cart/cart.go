package cart

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"gallery-store/internal/apperr"
	"gallery-store/internal/events"
	"gallery-store/internal/products"
	"gallery-store/pkg/logkey"
)

// ProductLookup is the read-only slice of the catalog the cart needs.
type ProductLookup interface {
	GetProductByID(ctx context.Context, id int) (products.Product, error)
}

// Conf owns every user's cart. All reads and writes of the map go through
// its methods while holding mu; change notifications are published after mu
// is released so subscribers can call back into the store.
type Conf struct {
	mu       sync.Mutex
	carts    map[int]*Cart
	products ProductLookup
	bus      *events.Bus
	now      func() time.Time
}

func NewConf(p ProductLookup, bus *events.Bus) (*Conf, error) {
	if p == nil {
		return nil, fmt.Errorf("product lookup is nil")
	}
	if bus == nil {
		return nil, fmt.Errorf("event bus is nil")
	}
	return &Conf{
		carts:    make(map[int]*Cart),
		products: p,
		bus:      bus,
		now:      time.Now,
	}, nil
}

// GetCart returns a copy of the user's cart, creating an empty one the first
// time the user is seen.
func (c *Conf) GetCart(ctx context.Context, userID int) Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cartFor(userID).clone()
}

func (c *Conf) AddToCart(ctx context.Context, userID, productID, quantity int) error {
	if quantity < 1 {
		return apperr.NewInvalidInput("quantity must be at least 1")
	}

	product, err := c.products.GetProductByID(ctx, productID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		return apperr.Wrap(err, "failed to look up product")
	}
	if !product.InStock {
		slog.Debug("product out of stock", slog.Int("ProductID", productID), slog.Int(logkey.UserID, userID))
		return apperr.NewOutOfStock(fmt.Sprintf("product %d is out of stock", productID))
	}

	c.mu.Lock()
	cart := c.cartFor(userID)
	if !fitsInCart(cart, 0, quantity) {
		c.mu.Unlock()
		return apperr.NewInvalidInput("quantity is too large")
	}
	if item := findItemByProduct(cart, productID); item != nil {
		item.Quantity += quantity
		slog.Debug("cart item quantity increased", slog.Int(logkey.UserID, userID),
			slog.Int("ItemID", item.ID), slog.Int("Quantity", item.Quantity))
	} else {
		item := CartItem{
			ID:        nextItemID(cart),
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   c.now(),
			Product:   product,
		}
		cart.Items = append(cart.Items, item)
		slog.Debug("cart item created", slog.Int(logkey.UserID, userID),
			slog.Int("ItemID", item.ID), slog.Int("ProductID", productID))
	}
	c.mu.Unlock()

	c.notify(userID)
	return nil
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line.
func (c *Conf) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	if quantity <= 0 {
		return c.RemoveFromCart(ctx, userID, itemID)
	}

	c.mu.Lock()
	cart := c.cartFor(userID)
	i := indexOfItem(cart, itemID)
	if i == -1 {
		c.mu.Unlock()
		return apperr.NewNotFoundf("cart item %d not found", itemID)
	}
	if !fitsInCart(cart, itemID, quantity) {
		c.mu.Unlock()
		return apperr.NewInvalidInput("quantity is too large")
	}
	cart.Items[i].Quantity = quantity
	c.mu.Unlock()

	c.notify(userID)
	return nil
}

func (c *Conf) RemoveFromCart(ctx context.Context, userID, itemID int) error {
	c.mu.Lock()
	cart := c.cartFor(userID)
	i := indexOfItem(cart, itemID)
	if i == -1 {
		c.mu.Unlock()
		return apperr.NewNotFoundf("cart item %d not found", itemID)
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	c.mu.Unlock()

	c.notify(userID)
	return nil
}

func (c *Conf) ClearCart(ctx context.Context, userID int) error {
	c.mu.Lock()
	c.cartFor(userID).Items = nil
	c.mu.Unlock()

	c.notify(userID)
	return nil
}

// CheckoutCart calls place with a copy of the user's cart and empties the
// cart only when place succeeds; both steps run under the store lock. place
// must not call back into the store. An empty cart is reported as EmptyCart
// and place is not called.
func (c *Conf) CheckoutCart(ctx context.Context, userID int, place func(Cart) error) error {
	c.mu.Lock()
	cart := c.cartFor(userID)
	if cart.IsEmpty() {
		c.mu.Unlock()
		return apperr.NewEmptyCart("cart is empty")
	}
	if err := place(cart.clone()); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to place order: %w", err)
	}
	cart.Items = nil
	c.mu.Unlock()

	slog.Debug("cart checked out", slog.Int(logkey.UserID, userID))
	c.notify(userID)
	return nil
}

func (c *Conf) notify(userID int) {
	c.bus.Publish(events.TopicCartChanged, fmt.Sprint(userID), nil)
}

// cartFor expects c.mu to be held.
func (c *Conf) cartFor(userID int) *Cart {
	cart, ok := c.carts[userID]
	if !ok {
		cart = &Cart{UserID: userID}
		c.carts[userID] = cart
		slog.Debug("cart created", slog.Int(logkey.UserID, userID))
	}
	return cart
}

func findItemByProduct(cart *Cart, productID int) *CartItem {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i]
		}
	}
	return nil
}

// fitsInCart reports whether adding quantity to the cart, ignoring the line
// with id skipItemID, keeps the summed quantity within an int.
func fitsInCart(cart *Cart, skipItemID, quantity int) bool {
	total := 0
	for _, item := range cart.Items {
		if item.ID != skipItemID {
			total += item.Quantity
		}
	}
	return total <= math.MaxInt-quantity
}

func indexOfItem(cart *Cart, itemID int) int {
	for i, item := range cart.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func nextItemID(cart *Cart) int {
	maxID := 0
	for _, item := range cart.Items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}
