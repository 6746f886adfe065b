// Package validator adapts go-playground/validator to echo.Validator and
// registers the field rules used by the request DTOs.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"cinegraph/internal/domain/entity"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
)

// Custom tags registered by New.
const (
	TagLogin       = "login"       // non-empty, no whitespace
	TagNotFuture   = "notfuture"   // date not after today (UTC)
	TagCinemaEpoch = "cinemaepoch" // date not before the first public screening
	TagNotBlank    = "notblank"    // not only whitespace
)

// Date is the wire format of every calendar date in request and response bodies.
const Date = time.DateOnly

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds the validator with the custom tags registered.
func New() *CustomValidator {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *CustomValidator {
	cv := &CustomValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	// Report json names instead of Go field names.
	cv.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	// Registration only fails on an empty tag or a nil func.
	_ = cv.validate.RegisterValidation(TagLogin, validateLogin)
	_ = cv.validate.RegisterValidation(TagNotFuture, cv.validateNotFuture)
	_ = cv.validate.RegisterValidation(TagCinemaEpoch, validateCinemaEpoch)
	_ = cv.validate.RegisterValidation(TagNotBlank, validators.NotBlank)

	return cv
}

// Validate runs the struct rules and flattens the failures into one message.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", TagNotBlank:
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", fe.Field())
	case TagLogin:
		return fmt.Sprintf("%s must not be empty or contain whitespace", fe.Field())
	case TagNotFuture:
		return fmt.Sprintf("%s must not be in the future", fe.Field())
	case TagCinemaEpoch:
		return fmt.Sprintf("%s must not be before %s", fe.Field(), entity.CinemaEpoch.Format(Date))
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

func validateLogin(fl validator.FieldLevel) bool {
	login := fl.Field().String()

	return login != "" && strings.IndexFunc(login, unicode.IsSpace) < 0
}

func (cv *CustomValidator) validateNotFuture(fl validator.FieldLevel) bool {
	date, ok := parseDate(fl)
	if !ok {
		return false
	}
	today := truncateDay(cv.now().UTC())

	return !date.After(today)
}

func validateCinemaEpoch(fl validator.FieldLevel) bool {
	date, ok := parseDate(fl)
	if !ok {
		return false
	}

	return !date.Before(entity.CinemaEpoch)
}

// parseDate accepts string fields in Date format and time.Time fields.
func parseDate(fl validator.FieldLevel) (time.Time, bool) {
	field := fl.Field()
	if t, ok := field.Interface().(time.Time); ok {
		return truncateDay(t.UTC()), true
	}
	if field.Kind() != reflect.String {
		return time.Time{}, false
	}
	t, err := time.Parse(Date, field.String())
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
