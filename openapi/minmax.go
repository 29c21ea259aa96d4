package openapi

import (
	"fmt"
	"reflect"

	"github.com/Gobd/genspec"
)

type thresholdRule struct {
	threshold any
	min       bool
	exclusive bool
}

// Minimum returns an option that sets the schema minimum.
func Minimum(threshold any) SchemaOption {
	return thresholdRule{
		threshold: threshold,
		min:       true,
	}
}

// Maximum returns an option that sets the schema maximum.
func Maximum(threshold any) SchemaOption {
	return thresholdRule{
		threshold: threshold,
	}
}

// ExclusiveMinimum is like Minimum but excludes the threshold itself.
func ExclusiveMinimum(threshold any) SchemaOption {
	return thresholdRule{
		threshold: threshold,
		min:       true,
		exclusive: true,
	}
}

// ExclusiveMaximum is like Maximum but excludes the threshold itself.
func ExclusiveMaximum(threshold any) SchemaOption {
	return thresholdRule{
		threshold: threshold,
		exclusive: true,
	}
}

func (r thresholdRule) Describe(schema *genspec.Entity) error {
	n, err := getNumber(r.threshold)
	if err != nil {
		return err
	}
	key, flag := "maximum", "exclusiveMaximum"
	if r.min {
		key, flag = "minimum", "exclusiveMinimum"
	}
	schema.Set(key, n)
	if r.exclusive {
		schema.Set(flag, genspec.Boolean(true))
	}
	return nil
}

var floatType = reflect.TypeOf(float64(0))

// getNumber keeps integer thresholds integral so they encode without a fraction.
func getNumber(unk any) (genspec.Value, error) {
	v := reflect.Indirect(reflect.ValueOf(unk))
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return genspec.ValueOf(v.Interface())
	case reflect.Invalid, reflect.String, reflect.Bool:
		return nil, fmt.Errorf("cannot convert %T to a number", unk)
	}
	if !v.Type().ConvertibleTo(floatType) {
		return nil, fmt.Errorf("cannot convert %v to float64", v.Type())
	}
	return genspec.Number(v.Convert(floatType).Float()), nil
}
