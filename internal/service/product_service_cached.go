package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/domain"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultCacheTTL = 10 * time.Minute

type cachedProductService struct {
	next        ProductService
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewCachedProductService(next ProductService, redisClient *redis.Client, logger *zap.Logger) ProductService {
	return &cachedProductService{
		next:        next,
		redisClient: redisClient,
		cacheTTL:    defaultCacheTTL,
		logger:      logger,
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *cachedProductService) Create(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error) {
	return s.next.Create(ctx, input)
}

func (s *cachedProductService) List(ctx context.Context, page domain.Page) (*domain.ProductList, error) {
	return s.next.List(ctx, page)
}

func (s *cachedProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	key := productKey(id)

	val, err := s.redisClient.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product domain.Product
		// A JSON null decodes cleanly into a zero product, so the id is checked too.
		if err := json.Unmarshal(val, &product); err == nil && product.ID == id {
			return &product, nil
		}
		mylogger.Warn(ctx, s.logger, "Dropping corrupt cache entry", zap.String("key", key))
		s.invalidate(ctx, id)
	case !errors.Is(err, redis.Nil):
		mylogger.Warn(ctx, s.logger, "Cache read failed", zap.String("key", key), zap.Error(err))
	}

	product, err := s.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(product)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Cache marshal failed", zap.Int64("product_id", id), zap.Error(err))
		return product, nil
	}

	if err := s.redisClient.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		mylogger.Warn(ctx, s.logger, "Cache write failed", zap.String("key", key), zap.Error(err))
	}

	return product, nil
}

func (s *cachedProductService) Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error) {
	product, err := s.next.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return product, nil
}

func (s *cachedProductService) SoftDelete(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.next.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return product, nil
}

func (s *cachedProductService) invalidate(ctx context.Context, id int64) {
	if err := s.redisClient.Del(ctx, productKey(id)).Err(); err != nil {
		mylogger.Warn(ctx, s.logger, "Cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}
}
