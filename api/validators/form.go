package validators

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// maxFormBytes bounds urlencoded bodies.
const maxFormBytes = 1 << 20

var (
	validate = newValidator()
	decoder  = newDecoder()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			if tag := strings.SplitN(f.Tag.Get(key), ",", 2)[0]; tag != "" && tag != "-" {
				return tag
			}
		}
		return f.Name
	})
	return v
}

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("form")
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		amount, err := decimal.NewFromString(vals[0])
		if err != nil {
			return nil, err
		}
		return amount, nil
	}, decimal.Decimal{})
	return d
}

// DecodeForm binds the request's urlencoded or multipart body into the
// `form`-tagged fields of dest, then validates dest. Values are bound
// exactly as submitted; callers that want trimming do it per field.
func DecodeForm(w http.ResponseWriter, r *http.Request, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("form destination must be a struct pointer, got %T", dest))
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body").WithDetails(map[string]any{"error": err.Error()})
	}

	if err := decoder.Decode(dest, r.PostForm); err != nil {
		return formatDecodeErrors(err)
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// FirstDetail returns one human readable validation message, for views that show a single error line.
func FirstDetail(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return ""
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || len(details) == 0 {
		return typed.Message()
	}
	fields := make([]string, 0, len(details))
	for field := range details {
		fields = append(fields, field)
	}
	first := fields[0]
	for _, f := range fields[1:] {
		if f < first {
			first = f
		}
	}
	return first + " " + details[first]
}

// formatDecodeErrors reports fields whose submitted text does not convert to the field type.
func formatDecodeErrors(err error) *pkgerrors.Error {
	var errs form.DecodeErrors
	if !errors.As(err, &errs) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	details := make(map[string]string, len(errs))
	for field := range errs {
		details[field] = "must be a number"
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must be a number"
	}
	return "is invalid"
}
