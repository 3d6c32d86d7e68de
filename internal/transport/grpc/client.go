package grpc

import (
	"context"
	"errors"
	"net/http"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/domain"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/utils"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc"
)

// ProductClient calls ProductService and converts failures back into
// *rpcerr.Error.
type ProductClient struct {
	conn grpc.ClientConnInterface
	cb   *gobreaker.CircuitBreaker
}

type ClientOption func(*ProductClient)

// WithBreaker routes every call through cb. While it is open, calls fail
// fast with a 503.
func WithBreaker(cb *gobreaker.CircuitBreaker) ClientOption {
	return func(c *ProductClient) {
		c.cb = cb
	}
}

func NewProductClient(conn grpc.ClientConnInterface, opts ...ClientOption) *ProductClient {
	c := &ProductClient{conn: conn}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ProductClient) CreateProduct(ctx context.Context, req *CreateProductRequest) (*domain.Product, error) {
	return invoke[domain.Product](ctx, c, "CreateProduct", req)
}

func (c *ProductClient) ListProducts(ctx context.Context, req *ListProductsRequest) (*domain.ProductList, error) {
	return invoke[domain.ProductList](ctx, c, "ListProducts", req)
}

func (c *ProductClient) GetProduct(ctx context.Context, req *GetProductRequest) (*domain.Product, error) {
	return invoke[domain.Product](ctx, c, "GetProduct", req)
}

func (c *ProductClient) UpdateProduct(ctx context.Context, req *UpdateProductRequest) (*domain.Product, error) {
	return invoke[domain.Product](ctx, c, "UpdateProduct", req)
}

func (c *ProductClient) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*domain.Product, error) {
	return invoke[domain.Product](ctx, c, "DeleteProduct", req)
}

func invoke[T any](ctx context.Context, c *ProductClient, method string, req any) (*T, error) {
	call := func() (*T, error) {
		out := new(T)
		err := c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, grpc.CallContentSubtype(CodecName))
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	var (
		out *T
		err error
	)
	if c.cb != nil {
		out, err = utils.ExecuteWithBreaker(c.cb, call)
	} else {
		out, err = call()
	}

	if err == nil {
		return out, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, rpcerr.New(http.StatusServiceUnavailable, "Service temporarily unavailable")
	}
	if rpcErr, ok := rpcerr.FromStatus(err); ok {
		return nil, rpcErr
	}
	return nil, err
}
