package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	ContextKeyUser contextKey = "userObject"

	maxBodyBytes = 1 << 20
)

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(ContextKeyUser).(*models.User)
	return user
}

// NewValidator reports fields by their json names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return validate
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := fieldPath(err.Namespace())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			errorMessages[field] = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of %s", err.Field(), strings.ReplaceAll(err.Param(), " ", ", "))
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

// fieldPath drops the root struct name: "orderRequest.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// DecodeJSON reads a single JSON object from r into dst. Malformed bodies are
// reported as InvalidInput with invalidMessage.
func DecodeJSON(r *http.Request, dst interface{}, invalidMessage string) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.UseNumber()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.InvalidInput(invalidMessage)
		}
		return apperror.Wrap(apperror.KindInvalidInput, invalidMessage, err)
	}
	return nil
}

// Validate runs validate on v and converts failures into an InvalidInput
// error carrying per-field messages.
func Validate(validate *validator.Validate, v interface{}, message string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperror.InvalidFields(message, FormatValidationErrors(validationErrs))
	}
	return fmt.Errorf("failed to validate request: %w", err)
}

// AbsoluteURL joins a stored relative path onto the scheme and host the
// request came in on.
func AbsoluteURL(r *http.Request, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return fmt.Sprintf("%s://%s/%s", scheme, r.Host, strings.TrimLeft(path, "/"))
}
