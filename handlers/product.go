package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"gallery-store/internal/products"
	"gallery-store/pkg/ctxmanage"
	"gallery-store/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *Handler) ListProducts(c *gin.Context) {
	filter := products.Filter{
		Query:  c.Query("q"),
		Medium: c.Query("medium"),
	}

	for _, bound := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
	} {
		raw := c.Query(bound.name)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			abortInvalid(c, "invalid "+bound.name+" parameter")
			return
		}
		*bound.dst = &v
	}
	if raw := c.Query("in_stock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			abortInvalid(c, "invalid in_stock parameter")
			return
		}
		filter.InStock = &v
	}
	sort, ok := products.ParseSortOrder(c.Query("sort"))
	if !ok {
		abortInvalid(c, "invalid sort parameter")
		return
	}
	filter.Sort = sort

	c.JSON(http.StatusOK, gin.H{"products": h.p.ListProducts(c.Request.Context(), filter)})
}

func (h *Handler) ListMediums(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mediums": h.p.Mediums(c.Request.Context())})
}

func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := pathInt(c, "id")
	if !ok {
		return
	}

	product, err := h.p.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		abortWithError(c, "error in retrieving product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var newProduct products.NewProduct
	if !h.bindJSON(c, &newProduct) {
		return
	}

	insertedProduct, err := h.p.InsertProduct(c.Request.Context(), &newProduct)
	if err != nil {
		abortWithError(c, "error in inserting the product", err)
		return
	}

	slog.Info("product created", slog.String(logkey.TraceID, traceId), slog.Int("ProductID", insertedProduct.ID))
	c.JSON(http.StatusCreated, insertedProduct)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	productID, ok := pathInt(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	currentProduct, err := h.p.GetProductByID(ctx, productID)
	if err != nil {
		abortWithError(c, "error in retrieving product", err)
		return
	}

	var updatedProduct products.Product
	if !h.bindJSON(c, &updatedProduct) {
		return
	}

	// id and creation time are owned by the catalog
	updatedProduct.ID = productID
	updatedProduct.CreatedAt = currentProduct.CreatedAt

	product, err := h.p.UpdateProduct(ctx, &updatedProduct)
	if err != nil {
		abortWithError(c, "error in updating the product", err)
		return
	}

	slog.Info("product updated successfully", slog.String(logkey.TraceID, traceId), slog.Int("ProductID", productID))
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	productID, ok := pathInt(c, "id")
	if !ok {
		return
	}

	if err := h.p.DeleteProduct(c.Request.Context(), productID); err != nil {
		abortWithError(c, "error in deleting the product", err)
		return
	}

	slog.Info("product deleted", slog.String(logkey.TraceID, traceId), slog.Int("ProductID", productID))
	c.JSON(http.StatusOK, gin.H{"message": "Product successfully deleted"})
}
