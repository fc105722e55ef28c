package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gallery-store/internal/apperr"
	"gallery-store/internal/cart"
	"gallery-store/internal/events"
	"gallery-store/pkg/logkey"

	"github.com/google/uuid"
)

// CartCheckout drains a cart atomically; *cart.Conf satisfies it.
type CartCheckout interface {
	CheckoutCart(ctx context.Context, userID int, place func(cart.Cart) error) error
}

type Conf struct {
	mu     sync.Mutex
	carts  CartCheckout
	orders map[int][]Order
	bus    *events.Bus
	newID  func() string
	now    func() time.Time
}

func NewConf(carts CartCheckout, bus *events.Bus) (*Conf, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store is nil")
	}
	if bus == nil {
		return nil, fmt.Errorf("event bus is nil")
	}
	return &Conf{
		carts:  carts,
		orders: make(map[int][]Order),
		bus:    bus,
		newID:  uuid.NewString,
		now:    time.Now,
	}, nil
}

// CreateOrder turns the user's cart into a pending order and empties the
// cart. An empty cart yields EmptyCart and changes nothing.
func (c *Conf) CreateOrder(ctx context.Context, userID int, shippingAddress string) (Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return Order{}, apperr.NewInvalidInput("shipping address is required")
	}

	var order Order
	err := c.carts.CheckoutCart(ctx, userID, func(drained cart.Cart) error {
		order = c.buildOrder(drained, shippingAddress)

		c.mu.Lock()
		c.orders[userID] = append(c.orders[userID], order)
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	slog.Info("order created", slog.String("OrderID", order.ID), slog.Int(logkey.UserID, userID),
		slog.String("Total", order.Total.String()), slog.Int("Items", len(order.Items)))
	c.bus.Publish(events.TopicOrderPlaced, fmt.Sprint(userID), order)
	return order, nil
}

func (c *Conf) buildOrder(drained cart.Cart, shippingAddress string) Order {
	items := make([]OrderItem, 0, len(drained.Items))
	for _, item := range drained.Items {
		items = append(items, OrderItem{
			ID:           c.newID(),
			ProductID:    item.ProductID,
			ProductTitle: item.Product.Title,
			ProductPrice: item.Product.Price,
			Quantity:     item.Quantity,
			Artist:       item.Product.Artist,
			Medium:       item.Product.Medium,
			Size:         item.Product.Size,
		})
	}
	return Order{
		ID:              c.newID(),
		UserID:          drained.UserID,
		Total:           drained.Total(),
		ShippingAddress: shippingAddress,
		Status:          StatusPending,
		CreatedAt:       c.now(),
		Items:           items,
	}
}

// ListOrders returns the user's orders, oldest first.
func (c *Conf) ListOrders(ctx context.Context, userID int) []Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]Order, len(c.orders[userID]))
	copy(list, c.orders[userID])
	return list
}

func (c *Conf) GetOrder(ctx context.Context, userID int, orderID string) (Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range c.orders[userID] {
		if o.ID == orderID {
			return o, nil
		}
	}
	return Order{}, apperr.NewNotFoundf("order %s not found", orderID)
}
