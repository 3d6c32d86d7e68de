package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/domain"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error)
	findManyFn   func(ctx context.Context, limit, offset int, onlyAvailable bool) ([]domain.Product, error)
	findUniqueFn func(ctx context.Context, id int64, onlyAvailable bool) (*domain.Product, error)
	updateFn     func(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error)
	countFn      func(ctx context.Context, onlyAvailable bool) (int64, error)

	updateCalls int
}

func (f *fakeRepo) Create(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error) {
	return f.createFn(ctx, input)
}

func (f *fakeRepo) FindMany(ctx context.Context, limit, offset int, onlyAvailable bool) ([]domain.Product, error) {
	return f.findManyFn(ctx, limit, offset, onlyAvailable)
}

func (f *fakeRepo) FindUnique(ctx context.Context, id int64, onlyAvailable bool) (*domain.Product, error) {
	return f.findUniqueFn(ctx, id, onlyAvailable)
}

func (f *fakeRepo) Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error) {
	f.updateCalls++
	return f.updateFn(ctx, id, input)
}

func (f *fakeRepo) Count(ctx context.Context, onlyAvailable bool) (int64, error) {
	return f.countFn(ctx, onlyAvailable)
}

type ProductServiceTestSuite struct {
	suite.Suite

	ctx     context.Context
	repo    *fakeRepo
	logs    *observer.ObservedLogs
	service ProductService
}

func (s *ProductServiceTestSuite) SetupTest() {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	s.ctx = context.Background()
	s.repo = &fakeRepo{}
	s.logs = logs
	s.service = NewProductService(s.repo, rpcerr.NewTranslator(rpcerr.DefaultCodes, logger), logger)
}

func (s *ProductServiceTestSuite) requireRPCError(err error, status int, message string) {
	s.T().Helper()

	s.Require().Error(err)
	rpcErr, ok := rpcerr.As(err)
	s.Require().True(ok, "expected *rpcerr.Error, got %T: %v", err, err)
	s.Require().Equal(status, rpcErr.Status)
	s.Require().Equal(message, rpcErr.Message)
}

func (s *ProductServiceTestSuite) TestCreate_Success() {
	s.repo.createFn = func(_ context.Context, input *domain.CreateProductInput) (*domain.Product, error) {
		return &domain.Product{ID: 1, Name: input.Name, Price: input.Price, Available: true}, nil
	}

	product, err := s.service.Create(s.ctx, &domain.CreateProductInput{Name: "Vinyl", Price: 9999})
	s.Require().NoError(err)
	s.Require().Equal(int64(1), product.ID)
	s.Require().True(product.Available)
}

func (s *ProductServiceTestSuite) TestCreate_Duplicate() {
	s.repo.createFn = func(context.Context, *domain.CreateProductInput) (*domain.Product, error) {
		return nil, storeerr.NewKnownRequestError(storeerr.CodeDuplicateKey, "products_name_key", nil)
	}

	_, err := s.service.Create(s.ctx, &domain.CreateProductInput{Name: "Vinyl", Price: 1})
	s.requireRPCError(err, http.StatusConflict, "Duplicate value")
	s.Require().Zero(s.logs.Len())
}

func (s *ProductServiceTestSuite) TestCreate_Validation() {
	s.repo.createFn = func(context.Context, *domain.CreateProductInput) (*domain.Product, error) {
		return nil, storeerr.NewValidationError("invalid arguments: Name failed on required", nil)
	}

	_, err := s.service.Create(s.ctx, &domain.CreateProductInput{})
	s.requireRPCError(err, http.StatusBadRequest, "Invalid data in ProductsService::create")
	s.Require().Equal(1, s.logs.Len())
	s.Require().Contains(s.logs.All()[0].Message, "Name failed on required")
}

func (s *ProductServiceTestSuite) TestList_BuildsMeta() {
	s.repo.countFn = func(_ context.Context, onlyAvailable bool) (int64, error) {
		s.Require().True(onlyAvailable)
		return 25, nil
	}
	s.repo.findManyFn = func(_ context.Context, limit, offset int, onlyAvailable bool) ([]domain.Product, error) {
		s.Require().Equal(10, limit)
		s.Require().Equal(10, offset)
		s.Require().True(onlyAvailable)
		return []domain.Product{{ID: 11}, {ID: 12}}, nil
	}

	list, err := s.service.List(s.ctx, domain.Page{Page: 2})
	s.Require().NoError(err)
	s.Require().Len(list.Data, 2)
	s.Require().Equal(int64(25), list.Meta.TotalItems)
	s.Require().Equal(3, list.Meta.TotalPages)
	s.Require().Equal(10, list.Meta.PerPage)
	s.Require().NotNil(list.Meta.NextPage)
	s.Require().Equal(3, *list.Meta.NextPage)
	s.Require().NotNil(list.Meta.PreviousPage)
	s.Require().Equal(1, *list.Meta.PreviousPage)
}

func (s *ProductServiceTestSuite) TestList_CountFails() {
	s.repo.countFn = func(context.Context, bool) (int64, error) {
		return 0, errors.New("connection reset by peer")
	}

	_, err := s.service.List(s.ctx, domain.Page{})
	s.requireRPCError(err, http.StatusInternalServerError, "Unexpected error in ProductsService::findAll")
	s.Require().Equal(1, s.logs.Len())
	s.Require().Contains(s.logs.All()[0].Message, "connection reset by peer")
}

func (s *ProductServiceTestSuite) TestList_ValidationError() {
	s.repo.countFn = func(context.Context, bool) (int64, error) { return 0, nil }
	s.repo.findManyFn = func(context.Context, int, int, bool) ([]domain.Product, error) {
		return nil, storeerr.NewValidationError("bad filter", nil)
	}

	_, err := s.service.List(s.ctx, domain.Page{})
	s.requireRPCError(err, http.StatusBadRequest, "Invalid data in ProductsService::findAll")
	s.Require().Contains(s.logs.All()[0].Message, "bad filter")
}

func (s *ProductServiceTestSuite) TestGetByID_NotFoundBypassesTranslator() {
	s.repo.findUniqueFn = func(_ context.Context, _ int64, onlyAvailable bool) (*domain.Product, error) {
		s.Require().True(onlyAvailable)
		return nil, nil
	}

	_, err := s.service.GetByID(s.ctx, 42)
	s.requireRPCError(err, http.StatusNotFound, "Product with ID 42 not found")
	s.Require().Zero(s.logs.Len())
}

func (s *ProductServiceTestSuite) TestGetByID_StoreError() {
	s.repo.findUniqueFn = func(context.Context, int64, bool) (*domain.Product, error) {
		return nil, context.DeadlineExceeded
	}

	_, err := s.service.GetByID(s.ctx, 42)
	s.requireRPCError(err, http.StatusInternalServerError, "Unexpected error in ProductsService::findOne")
}

func (s *ProductServiceTestSuite) TestUpdate_RecordNotFound() {
	s.repo.updateFn = func(context.Context, int64, *domain.UpdateProductInput) (*domain.Product, error) {
		return nil, storeerr.NewKnownRequestError(storeerr.CodeRecordNotFound, "record not found", nil)
	}

	name := "Renamed"
	_, err := s.service.Update(s.ctx, 42, &domain.UpdateProductInput{Name: &name})
	s.requireRPCError(err, http.StatusNotFound, "Product with ID 42 not found")
	s.Require().Zero(s.logs.Len())
}

func (s *ProductServiceTestSuite) TestUpdate_ValueTooLong() {
	s.repo.updateFn = func(context.Context, int64, *domain.UpdateProductInput) (*domain.Product, error) {
		return nil, storeerr.NewKnownRequestError(storeerr.CodeValueTooLong, "value too long", nil)
	}

	_, err := s.service.Update(s.ctx, 1, &domain.UpdateProductInput{})
	s.requireRPCError(err, http.StatusBadRequest, "Value too long for a field")
}

func (s *ProductServiceTestSuite) TestSoftDelete_Success() {
	s.repo.findUniqueFn = func(_ context.Context, id int64, _ bool) (*domain.Product, error) {
		return &domain.Product{ID: id, Available: true}, nil
	}
	s.repo.updateFn = func(_ context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error) {
		s.Require().NotNil(input.Available)
		s.Require().False(*input.Available)
		s.Require().Nil(input.Name)
		return &domain.Product{ID: id, Available: false}, nil
	}

	product, err := s.service.SoftDelete(s.ctx, 5)
	s.Require().NoError(err)
	s.Require().False(product.Available)
	s.Require().Equal(1, s.repo.updateCalls)
}

func (s *ProductServiceTestSuite) TestSoftDelete_MissingSkipsUpdate() {
	s.repo.findUniqueFn = func(context.Context, int64, bool) (*domain.Product, error) {
		return nil, nil
	}

	_, err := s.service.SoftDelete(s.ctx, 5)
	s.requireRPCError(err, http.StatusNotFound, "Product with ID 5 not found")
	s.Require().Zero(s.repo.updateCalls)
}

func (s *ProductServiceTestSuite) TestSoftDelete_RowVanishedBeforeUpdate() {
	s.repo.findUniqueFn = func(_ context.Context, id int64, _ bool) (*domain.Product, error) {
		return &domain.Product{ID: id, Available: true}, nil
	}
	s.repo.updateFn = func(context.Context, int64, *domain.UpdateProductInput) (*domain.Product, error) {
		return nil, storeerr.NewKnownRequestError(storeerr.CodeRecordNotFound, "record not found", nil)
	}

	_, err := s.service.SoftDelete(s.ctx, 5)
	s.requireRPCError(err, http.StatusNotFound, "Product with ID 5 not found")
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func TestProductVars(t *testing.T) {
	vars := productVars(42)
	require.Equal(t, "Product with ID 42 not found", rpcerr.Interpolate("{{entity}} with ID {{id}} not found", vars))
	assert.Equal(t, domain.ProductEntity, vars["entity"])
}
