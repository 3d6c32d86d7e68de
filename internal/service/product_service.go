package service

import (
	"context"
	"fmt"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/domain"
	"github.com/Nest-Commerce-Microservices/products-ms/internal/repository"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"go.uber.org/zap"
)

const (
	opCreate  = "ProductsService::create"
	opFindAll = "ProductsService::findAll"
	opFindOne = "ProductsService::findOne"
	opUpdate  = "ProductsService::update"
	opRemove  = "ProductsService::remove"
)

// ProductService returns *rpcerr.Error for every failure.
type ProductService interface {
	Create(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error)
	List(ctx context.Context, page domain.Page) (*domain.ProductList, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error)
	SoftDelete(ctx context.Context, id int64) (*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	translator  *rpcerr.Translator
	logger      *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	translator *rpcerr.Translator,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		translator:  translator,
		logger:      logger,
	}
}

func productVars(id int64) rpcerr.Vars {
	return rpcerr.Vars{"id": id, "entity": domain.ProductEntity}
}

func (s *productService) Create(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.Create(ctx, input)
	if err != nil {
		return nil, s.translator.Translate(ctx, err, opCreate, rpcerr.Vars{"entity": domain.ProductEntity})
	}

	mylogger.Info(ctx, s.logger, "Product created", zap.Int64("product_id", product.ID))
	return product, nil
}

func (s *productService) List(ctx context.Context, page domain.Page) (*domain.ProductList, error) {
	page = page.Normalize()

	total, err := s.productRepo.Count(ctx, true)
	if err != nil {
		return nil, s.translator.Translate(ctx, err, opFindAll, nil)
	}

	products, err := s.productRepo.FindMany(ctx, page.Limit, page.Offset(), true)
	if err != nil {
		return nil, s.translator.Translate(ctx, err, opFindAll, nil)
	}

	return &domain.ProductList{
		Data: products,
		Meta: domain.NewPageInfo(total, page),
	}, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindUnique(ctx, id, true)
	if err != nil {
		return nil, s.translator.Translate(ctx, err, opFindOne, productVars(id))
	}

	if product == nil {
		mylogger.Warn(ctx, s.logger, "product not found", zap.Int64("product_id", id))
		return nil, rpcerr.NotFound(fmt.Sprintf("%s with ID %d not found", domain.ProductEntity, id))
	}

	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.Update(ctx, id, input)
	if err != nil {
		return nil, s.translator.Translate(ctx, err, opUpdate, productVars(id))
	}

	mylogger.Info(ctx, s.logger, "Product updated", zap.Int64("product_id", id))
	return product, nil
}

func (s *productService) SoftDelete(ctx context.Context, id int64) (*domain.Product, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	available := false
	product, err := s.productRepo.Update(ctx, id, &domain.UpdateProductInput{Available: &available})
	if err != nil {
		return nil, s.translator.Translate(ctx, err, opRemove, productVars(id))
	}

	mylogger.Info(ctx, s.logger, "Product soft deleted", zap.Int64("product_id", id))
	return product, nil
}
