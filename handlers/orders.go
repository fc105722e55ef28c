package handlers

import (
	"log/slog"
	"net/http"

	"gallery-store/internal/orders"
	"gallery-store/pkg/ctxmanage"
	"gallery-store/pkg/logkey"

	"github.com/gin-gonic/gin"
)

// Checkout turns the user's cart into a pending order.
func (h *Handler) Checkout(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	userId, ok := pathInt(c, "userId")
	if !ok {
		return
	}

	var request orders.NewOrder
	if !h.bindJSON(c, &request) {
		return
	}

	order, err := h.o.CreateOrder(c.Request.Context(), userId, request.ShippingAddress)
	if err != nil {
		abortWithError(c, "error creating order", err)
		return
	}

	slog.Info("order placed", slog.String(logkey.TraceID, traceId), slog.String("OrderID", order.ID),
		slog.Int(logkey.UserID, userId))
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	userId, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": h.o.ListOrders(c.Request.Context(), userId)})
}

func (h *Handler) GetOrder(c *gin.Context) {
	userId, ok := pathInt(c, "userId")
	if !ok {
		return
	}

	order, err := h.o.GetOrder(c.Request.Context(), userId, c.Param("orderId"))
	if err != nil {
		abortWithError(c, "error fetching order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}
