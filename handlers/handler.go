package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gallery-store/internal/auth"
	"gallery-store/internal/cart"
	"gallery-store/internal/orders"
	"gallery-store/internal/products"
	"gallery-store/internal/users"
	"gallery-store/middleware"
	"gallery-store/pkg/ctxmanage"
	"gallery-store/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	p        *products.Conf
	u        *users.Conf
	cConf    *cart.Conf
	o        *orders.Conf
	k        *auth.Keys
	tokenTTL time.Duration
	validate *validator.Validate
}

type Stores struct {
	Products *products.Conf
	Users    *users.Conf
	Carts    *cart.Conf
	Orders   *orders.Conf
}

func NewHandler(s Stores, k *auth.Keys, tokenTTL time.Duration) (*Handler, error) {
	if s.Products == nil || s.Users == nil || s.Carts == nil || s.Orders == nil {
		return nil, errors.New("handler stores must not be nil")
	}
	if k == nil {
		return nil, errors.New("auth keys are nil")
	}
	return &Handler{
		p:        s.Products,
		u:        s.Users,
		cConf:    s.Carts,
		o:        s.Orders,
		k:        k,
		tokenTTL: tokenTTL,
		validate: validator.New(),
	}, nil
}

func API(endpointPrefix string, mode string, h *Handler) (*gin.Engine, error) {
	if mode == gin.ReleaseMode || mode == gin.TestMode {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	m, err := middleware.NewMid(h.k)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	//apply middleware to all the endpoints using r.Use
	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)

	v1 := r.Group(endpointPrefix)
	{
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/mediums", h.ListMediums)
		v1.GET("/products/:id", h.GetProduct)

		v1.GET("/carts/:userId", h.GetCart)
		v1.POST("/carts/:userId/items", h.AddToCart)
		v1.PATCH("/carts/:userId/items/:itemId", h.UpdateCartItem)
		v1.DELETE("/carts/:userId/items/:itemId", h.RemoveCartItem)
		v1.DELETE("/carts/:userId/items", h.ClearCart)
		v1.POST("/carts/:userId/checkout", h.Checkout)

		v1.GET("/users/:userId/orders", h.ListOrders)
		v1.GET("/users/:userId/orders/:orderId", h.GetOrder)

		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)
		v1.POST("/auth/logout", h.Logout)
		v1.GET("/auth/session", h.Session)
	}

	secured := r.Group(endpointPrefix)
	{
		secured.Use(m.Authentication())
		secured.PUT("/auth/password", m.Authorize(h.ChangePassword))
		secured.POST("/products", m.Authorize(h.CreateProduct, auth.RoleAdmin))
		secured.PUT("/products/:id", m.Authorize(h.UpdateProduct, auth.RoleAdmin))
		secured.DELETE("/products/:id", m.Authorize(h.DeleteProduct, auth.RoleAdmin))
	}

	return r, nil
}

func healthCheck(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	slog.Debug("healthCheck handler", slog.String(logkey.TraceID, traceId))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
