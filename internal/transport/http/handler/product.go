package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/domain"
	"github.com/Nest-Commerce-Microservices/products-ms/internal/service"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler returns service errors untouched; the app's ErrorHandler
// serializes them.
type ProductHandler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *zap.Logger
	timeout  time.Duration
}

func NewProductHandler(service service.ProductService, logger *zap.Logger, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		timeout:  timeout,
	}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	input := new(domain.CreateProductInput)
	if err := c.BodyParser(input); err != nil {
		mylogger.Warn(ctx, h.logger, "failed to parse body in create", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(input); err != nil {
		return h.invalidInput(ctx, c, err)
	}

	product, err := h.service.Create(ctx, input)
	if err != nil {
		return err
	}

	mylogger.Info(ctx, h.logger, "create product succeeded", zap.Int64("product_id", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var page domain.Page
	if err := c.QueryParser(&page); err != nil {
		mylogger.Warn(ctx, h.logger, "invalid pagination query", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "invalid pagination query")
	}

	if err := h.validate.Struct(page); err != nil {
		return h.invalidInput(ctx, c, err)
	}

	list, err := h.service.List(ctx, page)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(list)
}

func (h *ProductHandler) FindByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	id, err := h.productID(ctx, c)
	if err != nil {
		return err
	}

	product, err := h.service.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	id, err := h.productID(ctx, c)
	if err != nil {
		return err
	}

	input := new(domain.UpdateProductInput)
	if err := c.BodyParser(input); err != nil {
		mylogger.Warn(ctx, h.logger, "failed to parse body in update", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(input); err != nil {
		return h.invalidInput(ctx, c, err)
	}

	product, err := h.service.Update(ctx, id, input)
	if err != nil {
		return err
	}

	mylogger.Info(ctx, h.logger, "update product succeeded", zap.Int64("product_id", id))
	return c.Status(fiber.StatusOK).JSON(product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	id, err := h.productID(ctx, c)
	if err != nil {
		return err
	}

	product, err := h.service.SoftDelete(ctx, id)
	if err != nil {
		return err
	}

	mylogger.Info(ctx, h.logger, "product deleted successfully", zap.Int64("product_id", id))
	return c.Status(fiber.StatusOK).JSON(product)
}

func (h *ProductHandler) productID(ctx context.Context, c *fiber.Ctx) (int64, error) {
	idStr := c.Params("id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		mylogger.Warn(ctx, h.logger, "invalid product id", zap.String("id", idStr))
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	return id, nil
}

func (h *ProductHandler) invalidInput(ctx context.Context, c *fiber.Ctx, err error) error {
	mylogger.Warn(ctx, h.logger, "input validation failed", zap.Error(err))

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  fiber.StatusBadRequest,
		"message": "Invalid request data",
		"errors":  utils.FormatValidationError(err),
	})
}
