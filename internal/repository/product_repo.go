package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/domain"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/storeerr"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ProductRepository is the data-access client consumed by the service.
// Failures are either *storeerr.KnownRequestError, *storeerr.ValidationError,
// or an unclassified driver/context error.
type ProductRepository interface {
	Create(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error)
	FindMany(ctx context.Context, limit, offset int, onlyAvailable bool) ([]domain.Product, error)
	FindUnique(ctx context.Context, id int64, onlyAvailable bool) (*domain.Product, error)
	Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error)
	Count(ctx context.Context, onlyAvailable bool) (int64, error)
}

const productColumns = `id, name, description, price, category, available, created_at, updated_at`

type productRepo struct {
	pool     *pgxpool.Pool
	validate *validator.Validate
	tracer   trace.Tracer
	logger   *zap.Logger
}

func NewProductRepository(pool *pgxpool.Pool, logger *zap.Logger) ProductRepository {
	return &productRepo{
		pool:     pool,
		validate: validator.New(),
		logger:   logger,
		tracer:   otel.Tracer("products-ms/product_repo"),
	}
}

func (r *productRepo) Create(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	if input == nil {
		return nil, storeerr.NewValidationError("create input is required", nil)
	}

	span.SetAttributes(
		attribute.String("name", input.Name),
	)

	if err := r.validate.StructCtx(ctx, input); err != nil {
		return nil, r.fail(ctx, span, "invalid create input", storeerr.FromValidation(err))
	}

	query := `
		INSERT INTO products (name, description, price, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns

	product, err := scanProduct(r.pool.QueryRow(
		ctx,
		query,
		input.Name,
		input.Description,
		input.Price,
		input.Category,
	))
	if err != nil {
		return nil, r.fail(ctx, span, "Error creating product", storeerr.FromPg(err))
	}

	return product, nil
}

func (r *productRepo) FindMany(ctx context.Context, limit, offset int, onlyAvailable bool) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindMany")
	defer span.End()

	span.SetAttributes(
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
		attribute.Bool("only_available", onlyAvailable),
	)

	if limit <= 0 || offset < 0 {
		return nil, r.fail(ctx, span, "invalid pagination",
			storeerr.NewValidationError(fmt.Sprintf("invalid pagination: take=%d skip=%d", limit, offset), nil))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if onlyAvailable {
		query += ` WHERE available = TRUE`
	}
	query += ` ORDER BY id ASC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, r.fail(ctx, span, "Error selecting products", storeerr.FromPg(err))
	}
	defer rows.Close()

	products := make([]domain.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, r.fail(ctx, span, "Failed to scan rows", storeerr.FromPg(err))
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(ctx, span, "Rows iteration error", storeerr.FromPg(err))
	}

	span.SetAttributes(attribute.Int("result_count", len(products)))

	return products, nil
}

func (r *productRepo) FindUnique(ctx context.Context, id int64, onlyAvailable bool) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindUnique")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
		attribute.Bool("only_available", onlyAvailable),
	)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if onlyAvailable {
		query += ` AND available = TRUE`
	}

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, r.fail(ctx, span, "Error get by id", storeerr.FromPg(err), zap.Int64("id", id))
	}

	return product, nil
}

func (r *productRepo) Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
	)

	if input != nil {
		if err := r.validate.StructCtx(ctx, input); err != nil {
			return nil, r.fail(ctx, span, "invalid update input", storeerr.FromValidation(err), zap.Int64("id", id))
		}
	}

	query, args := buildUpdate(id, input)

	product, err := scanProduct(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, r.fail(ctx, span, "Failed to update product", storeerr.FromPg(err), zap.Int64("id", id))
	}

	return product, nil
}

func (r *productRepo) Count(ctx context.Context, onlyAvailable bool) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Count")
	defer span.End()

	query := `SELECT COUNT(*) FROM products`
	if onlyAvailable {
		query += ` WHERE available = TRUE`
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, r.fail(ctx, span, "Failed to count products", storeerr.FromPg(err))
	}

	return total, nil
}

// buildUpdate returns the UPDATE ... RETURNING statement for the non-nil
// fields of input. An empty input degrades to a plain select so the caller
// still gets the row, or RECORD_NOT_FOUND.
func buildUpdate(id int64, input *domain.UpdateProductInput) (string, []any) {
	if input.IsEmpty() {
		return `SELECT ` + productColumns + ` FROM products WHERE id = $1`, []any{id}
	}

	var updates []string
	var args []any
	argID := 1

	set := func(column string, value any) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if input.Name != nil {
		set("name", *input.Name)
	}
	if input.Description != nil {
		set("description", *input.Description)
	}
	if input.Price != nil {
		set("price", *input.Price)
	}
	if input.Category != nil {
		set("category", *input.Category)
	}
	if input.Available != nil {
		set("available", *input.Available)
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(updates, ", "),
		argID,
		productColumns,
	)

	return query, args
}

func (r *productRepo) fail(ctx context.Context, span trace.Span, msg string, err error, fields ...zap.Field) error {
	span.RecordError(err)

	var known *storeerr.KnownRequestError
	if errors.As(err, &known) {
		fields = append(fields, zap.String("store_code", known.Code))
	}
	mylogger.Debug(ctx, r.logger, msg, append(fields, zap.Error(err))...)

	return err
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Available,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}
