package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"storeflight/shared/constant"
	"storeflight/shared/failure"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate *val.Validate

	basicEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	currencyPattern   = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// Normalizer is implemented by request bodies that trim or default their
// fields before validation.
type Normalizer interface {
	Normalize()
}

func registerBasicEmailValidation(field val.FieldLevel) bool {
	return basicEmailPattern.MatchString(field.Field().String())
}

func registerDateValidation(field val.FieldLevel) bool {
	_, err := time.Parse(constant.DateOnlyFormat, field.Field().String())

	return err == nil
}

func registerCurrencyValidation(field val.FieldLevel) bool {
	return currencyPattern.MatchString(field.Field().String())
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()

		return f
	}

	return nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("basicemail", registerBasicEmailValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("date", registerDateValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("currency", registerCurrencyValidation)
	if err != nil {
		panic(err)
	}
}

// Decode reads a JSON body from r into data without validating it.
func Decode[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return nil
}

// DecodeOptional is Decode for endpoints whose body may be omitted. An
// empty body leaves data untouched.
func DecodeOptional[T any](r io.Reader, data *T) error {
	err := json.NewDecoder(r).Decode(data)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

// ValidateStruct normalizes data when it implements Normalizer and then
// validates it.
func ValidateStruct[T any](data *T) error {
	if n, ok := any(data).(Normalizer); ok {
		n.Normalize()
	}

	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
