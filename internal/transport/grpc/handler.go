package grpc

import (
	"context"
	"fmt"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/domain"
	"github.com/Nest-Commerce-Microservices/products-ms/internal/service"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service service.ProductService
	logger  *zap.Logger
}

func NewProductHandler(service service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *CreateProductRequest) (*domain.Product, error) {
	return h.service.Create(ctx, &domain.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *ListProductsRequest) (*domain.ProductList, error) {
	if req.Page < 0 {
		return nil, rpcerr.BadRequest("page must be a positive number")
	}
	if req.Limit < 0 || req.Limit > domain.MaxLimit {
		return nil, rpcerr.BadRequest(fmt.Sprintf("limit must be between 1 and %d", domain.MaxLimit))
	}

	return h.service.List(ctx, domain.Page{Page: req.Page, Limit: req.Limit})
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *GetProductRequest) (*domain.Product, error) {
	return h.service.GetByID(ctx, req.ID)
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *UpdateProductRequest) (*domain.Product, error) {
	if req.Data.ID != nil && *req.Data.ID != req.ID {
		mylogger.Debug(
			ctx,
			h.logger,
			"ignoring id in update payload",
			zap.Int64("product_id", req.ID),
			zap.Int64("payload_id", *req.Data.ID),
		)
	}

	return h.service.Update(ctx, req.ID, &req.Data)
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*domain.Product, error) {
	return h.service.SoftDelete(ctx, req.ID)
}
