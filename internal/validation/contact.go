// Package validation checks contact submissions before they are stored.
package validation

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Zachkp/portfolio-server/internal/apperrors"
	"github.com/Zachkp/portfolio-server/internal/model"
)

// ContactInput is a contact submission as received from either the JSON
// API or a form post.
type ContactInput struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required"`
	Message      string  `json:"message" validate:"required"`
	Service      *string `json:"service"`
	ServicePrice any     `json:"servicePrice"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Contact trims the required fields of in and checks that none of them is
// empty. The error is a ValidationError listing every missing field.
func Contact(in *ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Service != nil && strings.TrimSpace(*in.Service) == "" {
		in.Service = nil
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewBadRequestError("invalid contact", err)
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	return apperrors.NewValidationError(missing)
}

// ToContact builds the record to store from a validated input.
func (in *ContactInput) ToContact() *model.Contact {
	return &model.Contact{
		Name:         in.Name,
		Email:        in.Email,
		Message:      in.Message,
		Service:      in.Service,
		ServicePrice: ServicePrice(in.ServicePrice),
	}
}

// ServicePrice coerces a submitted price to an integer. Anything absent,
// non-numeric or outside the range of int becomes 0; fractional values are
// truncated. Numbers and numeric strings go through the same bounds.
func ServicePrice(v any) int {
	switch p := v.(type) {
	case nil:
		return 0
	case int:
		return p
	case int64:
		return fromInt64(p)
	case float64:
		return truncate(p)
	case json.Number:
		return parsePrice(p.String())
	case string:
		return parsePrice(p)
	default:
		return 0
	}
}

func parsePrice(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromInt64(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return truncate(f)
	}
	return 0
}

func truncate(f float64) int {
	// 2^63 is exactly representable; anything at or beyond it overflows int64
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return fromInt64(int64(f))
}

func fromInt64(n int64) int {
	if int64(int(n)) != n {
		return 0
	}
	return int(n)
}
