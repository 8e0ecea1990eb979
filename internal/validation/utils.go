package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/errs"
)

// validate is the shared validator instance used by request payloads.
var validate = validator.New()

// Struct runs tag-based validation on a request payload.
func Struct(v any) error {
	return validate.Struct(v)
}

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by calling validation.Struct.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue that cannot be
// expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it. The
// payload must be a pointer so Echo can populate it from body and path
// parameters. Failures become field-level 400 errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("Malformed request payload", false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errorsAsHTTP(err, &httpErr) {
			return httpErr
		}
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		var customErrors CustomValidationErrors
		if !errorsAs(err, &customErrors) {
			return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
		}
		for _, customErr := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: customErr.Field,
				Error: customErr.Message,
			})
		}
	}

	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		var msg string

		switch fieldErr.Tag() {
		case "required":
			msg = "is required"
		case "min":
			if fieldErr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fieldErr.Param())
			}
		case "max":
			if fieldErr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fieldErr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fieldErr.Param())
			}
		case "gt":
			msg = fmt.Sprintf("must be greater than %s", fieldErr.Param())
		case "gte":
			msg = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fieldErr.Param())
		case "email":
			msg = "must be a valid email address"
		case "uuid":
			msg = "must be a valid UUID"
		default:
			if fieldErr.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fieldErr.Tag(), fieldErr.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fieldErr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// errorsAs is a tiny wrapper to keep extractValidationError readable.
func errorsAs(err error, target *CustomValidationErrors) bool {
	custom, ok := err.(CustomValidationErrors)
	if ok {
		*target = custom
	}
	return ok
}

// errorsAsHTTP detects Validate implementations that return a taxonomy error
// directly; those pass through untouched.
func errorsAsHTTP(err error, target **errs.HTTPError) bool {
	httpErr, ok := err.(*errs.HTTPError)
	if ok {
		*target = httpErr
	}
	return ok
}

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format. Identifier path
// parameters are rejected with a 400 before touching the store.
func IsValidUUID(id string) bool {
	return uuidRegex.MatchString(id)
}
