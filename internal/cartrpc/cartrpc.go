package cartrpc

import (
	"context"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const (
	ServiceName          = "gallery.cart.CartItemService"
	GetCartDetailsMethod = "/" + ServiceName + "/GetCartDetails"
)

type GetCartDetailsRequest struct {
	UserID int `json:"user_id"`
}

type CartItem struct {
	ItemID    int             `json:"item_id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type GetCartDetailsResponse struct {
	UserID    int             `json:"user_id"`
	CartItems []*CartItem     `json:"cart_items"`
	Total     decimal.Decimal `json:"total"`
}

type CartItemServiceServer interface {
	GetCartDetails(context.Context, *GetCartDetailsRequest) (*GetCartDetailsResponse, error)
}

func RegisterCartItemServiceServer(s grpc.ServiceRegistrar, srv CartItemServiceServer) {
	s.RegisterService(&CartItemService_ServiceDesc, srv)
}

func _CartItemService_GetCartDetails_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCartDetailsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartItemServiceServer).GetCartDetails(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetCartDetailsMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CartItemServiceServer).GetCartDetails(ctx, req.(*GetCartDetailsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var CartItemService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartItemServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCartDetails",
			Handler:    _CartItemService_GetCartDetails_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
}

type CartItemServiceClient interface {
	GetCartDetails(ctx context.Context, in *GetCartDetailsRequest, opts ...grpc.CallOption) (*GetCartDetailsResponse, error)
}

type cartItemServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartItemServiceClient(cc grpc.ClientConnInterface) CartItemServiceClient {
	return &cartItemServiceClient{cc}
}

func (c *cartItemServiceClient) GetCartDetails(ctx context.Context, in *GetCartDetailsRequest, opts ...grpc.CallOption) (*GetCartDetailsResponse, error) {
	out := new(GetCartDetailsResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, GetCartDetailsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
