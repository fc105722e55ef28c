package handlers

import (
	"context"
	"log/slog"

	"gallery-store/internal/cart"
	"gallery-store/internal/cartrpc"
	"gallery-store/pkg/logkey"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CartReader is the part of the cart store the RPC service needs.
type CartReader interface {
	GetCart(ctx context.Context, userID int) cart.Cart
}

type cartItemService struct {
	carts CartReader
}

func NewCartItemServiceHandler(carts CartReader) cartrpc.CartItemServiceServer {
	return &cartItemService{carts: carts}
}

func (s *cartItemService) GetCartDetails(ctx context.Context, request *cartrpc.GetCartDetailsRequest) (*cartrpc.GetCartDetailsResponse, error) {
	if request.UserID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "user_id must be a positive integer")
	}
	slog.Debug("GetCartDetails", slog.Int(logkey.UserID, request.UserID))

	c := s.carts.GetCart(ctx, request.UserID)
	cartItems := make([]*cartrpc.CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		cartItems = append(cartItems, &cartrpc.CartItem{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	return &cartrpc.GetCartDetailsResponse{
		UserID:    request.UserID,
		CartItems: cartItems,
		Total:     c.Total(),
	}, nil
}
