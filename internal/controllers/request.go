package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hoagiehub/config"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
	"hoagiehub/internal/services"
)

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodes the JSON body into dst and runs its validate tags.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Validation(err.Error())
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperror.Validation(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be an email"
	case "url":
		return field + " must be a URL"
	case "mongodb":
		return field + " must be a valid id"
	case "min":
		return fmt.Sprintf("%s must have at least %s characters or items", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters or items", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// pageQuery reads ?page= and ?limit=. Missing values take the defaults;
// anything that is not a positive integer is rejected.
func pageQuery(c *fiber.Ctx) (models.PageQuery, error) {
	page, err := intQuery(c, "page", config.DefaultPage)
	if err != nil {
		return models.PageQuery{}, err
	}
	limit, err := intQuery(c, "limit", config.DefaultLimit)
	if err != nil {
		return models.PageQuery{}, err
	}
	return services.NewPageQuery(page, limit)
}

func intQuery(c *fiber.Ctx, key string, fallback int64) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation(fmt.Sprintf("Validation failed (numeric string is expected) for %s", key))
	}
	return n, nil
}
