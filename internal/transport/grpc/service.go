package grpc

import (
	"context"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/domain"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"google.golang.org/grpc"
)

const ServiceName = "catalog.v1.ProductService"

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
}

type ListProductsRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type GetProductRequest struct {
	ID int64 `json:"id"`
}

type UpdateProductRequest struct {
	ID   int64                     `json:"id"`
	Data domain.UpdateProductInput `json:"data"`
}

type DeleteProductRequest struct {
	ID int64 `json:"id"`
}

type ProductServiceServer interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context, req *ListProductsRequest) (*domain.ProductList, error)
	GetProduct(ctx context.Context, req *GetProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*domain.Product, error)
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&productServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodDesc's handler signature.
func unaryHandler[Req any, Resp any](
	method string,
	call func(srv ProductServiceServer, ctx context.Context, req *Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		decodeErr := dec(req)

		if interceptor == nil {
			if decodeErr != nil {
				return nil, rpcerr.BadRequest(invalidPayloadMessage)
			}
			return call(srv.(ProductServiceServer), ctx, req)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		// A payload that fails to decode still goes through the interceptor
		// chain so the caller gets a normalized 400.
		handler := func(ctx context.Context, req any) (any, error) {
			if decodeErr != nil {
				return nil, &payloadError{err: decodeErr}
			}
			return call(srv.(ProductServiceServer), ctx, req.(*Req))
		}

		return interceptor(ctx, req, info, handler)
	}
}

var productServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateProduct",
			Handler: unaryHandler("CreateProduct", func(srv ProductServiceServer, ctx context.Context, req *CreateProductRequest) (*domain.Product, error) {
				return srv.CreateProduct(ctx, req)
			}),
		},
		{
			MethodName: "ListProducts",
			Handler: unaryHandler("ListProducts", func(srv ProductServiceServer, ctx context.Context, req *ListProductsRequest) (*domain.ProductList, error) {
				return srv.ListProducts(ctx, req)
			}),
		},
		{
			MethodName: "GetProduct",
			Handler: unaryHandler("GetProduct", func(srv ProductServiceServer, ctx context.Context, req *GetProductRequest) (*domain.Product, error) {
				return srv.GetProduct(ctx, req)
			}),
		},
		{
			MethodName: "UpdateProduct",
			Handler: unaryHandler("UpdateProduct", func(srv ProductServiceServer, ctx context.Context, req *UpdateProductRequest) (*domain.Product, error) {
				return srv.UpdateProduct(ctx, req)
			}),
		},
		{
			MethodName: "DeleteProduct",
			Handler: unaryHandler("DeleteProduct", func(srv ProductServiceServer, ctx context.Context, req *DeleteProductRequest) (*domain.Product, error) {
				return srv.DeleteProduct(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/product_service",
}
