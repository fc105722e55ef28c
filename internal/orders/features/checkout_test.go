package features

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gallery-store/internal/apperr"
	"gallery-store/internal/cart"
	"gallery-store/internal/events"
	"gallery-store/internal/orders"
	"gallery-store/internal/products"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type checkoutTestContext struct {
	carts  *cart.Conf
	orders *orders.Conf
	order  orders.Order
	err    error
}

func (c *checkoutTestContext) reset() {
	c.carts = nil
	c.orders = nil
	c.order = orders.Order{}
	c.err = nil
}

func (c *checkoutTestContext) theGalleryCatalogIsSeeded() error {
	bus := events.NewBus()
	catalog, err := products.NewConf(bus, products.SeedProducts(time.Now()))
	if err != nil {
		return err
	}
	if c.carts, err = cart.NewConf(catalog, bus); err != nil {
		return err
	}
	c.orders, err = orders.NewConf(c.carts, bus)
	return err
}

func (c *checkoutTestContext) userHasAnEmptyCart(user int) error {
	return c.theCartOfUserIsEmpty(user)
}

func (c *checkoutTestContext) userAddsProductWithQuantity(user, product, quantity int) error {
	c.err = c.carts.AddToCart(context.Background(), user, product, quantity)
	return nil
}

func (c *checkoutTestContext) userSetsTheQuantityOfProductTo(user, product, quantity int) error {
	for _, item := range c.carts.GetCart(context.Background(), user).Items {
		if item.ProductID == product {
			c.err = c.carts.UpdateQuantity(context.Background(), user, item.ID, quantity)
			return nil
		}
	}
	return fmt.Errorf("user %d has no line for product %d", user, product)
}

func (c *checkoutTestContext) userClearsTheCart(user int) error {
	c.err = c.carts.ClearCart(context.Background(), user)
	return nil
}

func (c *checkoutTestContext) userChecksOutTo(user int, address string) error {
	c.order, c.err = c.orders.CreateOrder(context.Background(), user, address)
	return nil
}

func (c *checkoutTestContext) userHasLineOfProductWithQuantity(user, lines, product, quantity int) error {
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	items := c.carts.GetCart(context.Background(), user).Items
	if len(items) != lines {
		return fmt.Errorf("expected %d lines, got %d", lines, len(items))
	}
	for _, item := range items {
		if item.ProductID == product {
			if item.Quantity != quantity {
				return fmt.Errorf("expected quantity %d, got %d", quantity, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for product %d", product)
}

func (c *checkoutTestContext) theCartTotalOfUserIs(user int, total int64) error {
	got := c.carts.GetCart(context.Background(), user).Total()
	if !got.Equal(decimal.NewFromInt(total)) {
		return fmt.Errorf("expected total %d, got %s", total, got)
	}
	return nil
}

func (c *checkoutTestContext) theCartOfUserIsEmpty(user int) error {
	got := c.carts.GetCart(context.Background(), user)
	if !got.IsEmpty() {
		return fmt.Errorf("expected empty cart, got %d lines", len(got.Items))
	}
	return nil
}

func (c *checkoutTestContext) theOperationFailsWith(kind string) error {
	if c.err == nil {
		return errors.New("expected operation to fail but it succeeded")
	}
	if got := apperr.KindOf(c.err).String(); got != kind {
		return fmt.Errorf("expected %s, got %s (%v)", kind, got, c.err)
	}
	return nil
}

func (c *checkoutTestContext) userHasOrders(user, n int) error {
	if got := len(c.orders.ListOrders(context.Background(), user)); got != n {
		return fmt.Errorf("expected %d orders, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) theOrderTotalIsWithStatus(total int64, status string) error {
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	if !c.order.Total.Equal(decimal.NewFromInt(total)) {
		return fmt.Errorf("expected order total %d, got %s", total, c.order.Total)
	}
	if string(c.order.Status) != status {
		return fmt.Errorf("expected status %q, got %q", status, c.order.Status)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the gallery catalog is seeded$`, tc.theGalleryCatalogIsSeeded)
	ctx.Step(`^user (\d+) has an empty cart$`, tc.userHasAnEmptyCart)
	// When steps
	ctx.Step(`^user (\d+) adds product (\d+) with quantity (\d+)$`, tc.userAddsProductWithQuantity)
	ctx.Step(`^user (\d+) sets the quantity of product (\d+) to (-?\d+)$`, tc.userSetsTheQuantityOfProductTo)
	ctx.Step(`^user (\d+) clears the cart$`, tc.userClearsTheCart)
	ctx.Step(`^user (\d+) checks out to "([^"]*)"$`, tc.userChecksOutTo)
	// Then steps
	ctx.Step(`^user (\d+) has (\d+) lines? of product (\d+) with quantity (\d+)$`, tc.userHasLineOfProductWithQuantity)
	ctx.Step(`^the cart total of user (\d+) is (\d+)$`, tc.theCartTotalOfUserIs)
	ctx.Step(`^the cart of user (\d+) is empty$`, tc.theCartOfUserIsEmpty)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^user (\d+) has (\d+) orders$`, tc.userHasOrders)
	ctx.Step(`^the order total is (\d+) with status "([^"]*)"$`, tc.theOrderTotalIsWithStatus)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
