package rest

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

type Pagination[T any] struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Items      []T   `json:"items"`
}

func GetPageRequest(c fiber.Ctx) domain.PageRequest {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("size", strconv.Itoa(domain.DefaultPageSize)))
	return domain.NewPageRequest(page, size)
}

func NewPagination[T, U any](page domain.Page[T], fn func(T) U) Pagination[U] {
	mapped := domain.MapPage(page, fn)
	return Pagination[U]{
		Page:       mapped.Page,
		Size:       mapped.Size,
		Total:      mapped.Total,
		TotalPages: mapped.TotalPages(),
		Items:      mapped.Items,
	}
}

var validate = validator.New()

func ValidateInput(input any) error {
	return validate.Struct(input)
}

func accountID(c fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}
	return id, nil
}

// bindBody 解析並驗證 request body
func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return fiber.ErrBadRequest
	}
	if err := ValidateInput(out); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// ErrorHandler 將業務錯誤轉換成 HTTP 狀態碼
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		code = fiber.StatusConflict
	case errors.As(err, &fe):
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
