package main

import (
	"fmt"
	"time"

	"gallery-store/handlers"
	"gallery-store/internal/auth"
	"gallery-store/internal/cart"
	"gallery-store/internal/config"
	"gallery-store/internal/events"
	"gallery-store/internal/orders"
	"gallery-store/internal/products"
	"gallery-store/internal/users"
)

type app struct {
	cfg    config.Config
	bus    *events.Bus
	keys   *auth.Keys
	stores handlers.Stores
}

func newApp(cfg config.Config) (*app, error) {
	bus := events.NewBus()

	var seedProducts []products.Product
	var seedUsers []users.User
	if cfg.SeedData {
		now := time.Now()
		seedProducts = products.SeedProducts(now)
		seedUsers = users.SeedUsers(now)
	}

	p, err := products.NewConf(bus, seedProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to create product catalog: %w", err)
	}
	u, err := users.NewConf(bus, seedUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to create user directory: %w", err)
	}
	c, err := cart.NewConf(p, bus)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart store: %w", err)
	}
	o, err := orders.NewConf(c, bus)
	if err != nil {
		return nil, fmt.Errorf("failed to create order store: %w", err)
	}
	k, err := auth.NewKeys([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to create auth keys: %w", err)
	}

	return &app{
		cfg:    cfg,
		bus:    bus,
		keys:   k,
		stores: handlers.Stores{Products: p, Users: u, Carts: c, Orders: o},
	}, nil
}
