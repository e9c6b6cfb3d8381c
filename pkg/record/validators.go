package record

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// tagValidate evaluates validator tags for Tag. It is safe for concurrent use.
var tagValidate = validator.New()

// Numeric accepts Go integer and floating-point values and rejects
// everything else, including numeric strings.
func Numeric() ValidateFunc {
	return func(candidate any, _ Snapshot) error {
		if candidate == nil {
			return errors.New("value must be a number, got nil")
		}
		switch reflect.ValueOf(candidate).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return nil
		default:
			return fmt.Errorf("value must be a number, got %T", candidate)
		}
	}
}

// Tag accepts candidates that satisfy a go-playground/validator tag such as
// "gte=0,lte=150" or "email". An unknown tag rejects every value.
func Tag(tag string) ValidateFunc {
	return func(candidate any, _ Snapshot) (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("bad validation tag %q: %v", tag, p)
			}
		}()

		verr := tagValidate.Var(candidate, tag)
		if verr == nil {
			return nil
		}
		var fieldErrs validator.ValidationErrors
		if errors.As(verr, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			constraint := fe.Tag()
			if fe.Param() != "" {
				constraint += "=" + fe.Param()
			}
			return fmt.Errorf("value %v does not satisfy %s", fe.Value(), constraint)
		}
		return verr
	}
}

// All accepts a candidate only if every fn accepts it. The first rejection
// is returned.
func All(fns ...ValidateFunc) ValidateFunc {
	return func(candidate any, snap Snapshot) error {
		for _, fn := range fns {
			if err := fn(candidate, snap); err != nil {
				return err
			}
		}
		return nil
	}
}

// OneOf accepts only candidates deeply equal to one of values.
func OneOf(values ...any) ValidateFunc {
	return func(candidate any, _ Snapshot) error {
		for _, v := range values {
			if reflect.DeepEqual(candidate, v) {
				return nil
			}
		}
		return fmt.Errorf("value %v is not one of %v", candidate, values)
	}
}
