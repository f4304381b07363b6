package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"time"

	"edurooms/shared/constant"
	"edurooms/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	validate *val.Validate

	clockPattern   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// registerClockValidation accepts a 24h "HH:MM" time of day.
func registerClockValidation(field val.FieldLevel) bool {
	return clockPattern.MatchString(field.Field().String())
}

// registerISODateValidation accepts "YYYY-MM-DD" strings naming a real calendar day.
func registerISODateValidation(field val.FieldLevel) bool {
	value := field.Field().String()
	if !isoDatePattern.MatchString(value) {
		return false
	}

	_, err := time.Parse(constant.ISODateLayout, value)

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("clock", registerClockValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("isodate", registerISODateValidation)
	if err != nil {
		panic(err)
	}
}

// Validate decodes JSON from r into data and validates the result.
// Unknown fields and type mismatches (a capacity sent as "30") are rejected at decode time.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(data)
	if err != nil {
		return failure.Format(fmt.Sprintf("failed to decode request body: %s", err.Error())) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
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
