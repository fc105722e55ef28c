package handlers

import (
	"log/slog"
	"net/http"

	"gallery-store/pkg/ctxmanage"
	"gallery-store/pkg/logkey"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID int  `json:"product_id" validate:"required,min=1"`
	Quantity  *int `json:"quantity" validate:"omitempty,min=1"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *Handler) GetCart(c *gin.Context) {
	userId, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.cConf.GetCart(c.Request.Context(), userId))
}

func (h *Handler) AddToCart(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	userId, ok := pathInt(c, "userId")
	if !ok {
		return
	}

	var request addItemRequest
	if !h.bindJSON(c, &request) {
		return
	}
	quantity := 1
	if request.Quantity != nil {
		quantity = *request.Quantity
	}

	ctx := c.Request.Context()
	if err := h.cConf.AddToCart(ctx, userId, request.ProductID, quantity); err != nil {
		abortWithError(c, "error adding product to cart", err)
		return
	}

	slog.Info("product added to cart", slog.String(logkey.TraceID, traceId),
		slog.Int("ProductID", request.ProductID), slog.Int("Quantity", quantity), slog.Int(logkey.UserID, userId))
	c.JSON(http.StatusOK, h.cConf.GetCart(ctx, userId))
}

// UpdateCartItem sets an item's quantity; zero or less removes the item.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userId, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	itemId, ok := pathInt(c, "itemId")
	if !ok {
		return
	}

	var request updateItemRequest
	if !h.bindJSON(c, &request) {
		return
	}

	ctx := c.Request.Context()
	if err := h.cConf.UpdateQuantity(ctx, userId, itemId, *request.Quantity); err != nil {
		abortWithError(c, "error updating cart item", err)
		return
	}
	c.JSON(http.StatusOK, h.cConf.GetCart(ctx, userId))
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	userId, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	itemId, ok := pathInt(c, "itemId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.cConf.RemoveFromCart(ctx, userId, itemId); err != nil {
		abortWithError(c, "error removing cart item", err)
		return
	}
	c.JSON(http.StatusOK, h.cConf.GetCart(ctx, userId))
}

func (h *Handler) ClearCart(c *gin.Context) {
	userId, ok := pathInt(c, "userId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.cConf.ClearCart(ctx, userId); err != nil {
		abortWithError(c, "error clearing cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cConf.GetCart(ctx, userId))
}
