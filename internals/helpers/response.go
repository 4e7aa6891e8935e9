package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationMessages turns validator errors into field => messages, keyed by
// the json name of the field. Map keys validated with `dive,keys` are
// reported as "<field>.<key>".
func ValidationMessages(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		if err != nil {
			out["_"] = []string{err.Error()}
		}
		return out
	}
	for _, fe := range ve {
		key := fieldKey(fe.Namespace())
		out[key] = append(out[key], messageFor(fe))
	}
	return out
}

// fieldKey drops the struct name prefix: "RecordRequest.attendances[abc]" => "attendances.abc".
func fieldKey(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("The %s must be a valid UUID.", field)
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must have at least %s item(s).", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("The %s must be a date in the format %s.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	default:
		return fmt.Sprintf("The %s is invalid (%s).", field, fe.Tag())
	}
}

// JsonFromValidator answers 422 for validator errors, 400 for anything else.
func JsonFromValidator(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	return JsonValidationError(c, ValidationMessages(err))
}
