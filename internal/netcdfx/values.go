package netcdfx

import (
	"fmt"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// netcdfGroup is the slice of api.Group the extractor needs, kept narrow so
// tests can stub it.
type netcdfGroup interface {
	GetVariable(name string) (*api.Variable, error)
}

// toFloat64Slice converts a one-dimensional variable payload to float64,
// whatever numeric type the file stored.
func toFloat64Slice(values any) ([]float64, error) {
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected a slice, got %T", values)
	}
	out := make([]float64, rv.Len())
	for i := range out {
		v, err := scalarFloat(rv.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// floatAt indexes a nested-slice payload and converts the element to float64.
func floatAt(rv reflect.Value, idxs []int) (float64, error) {
	for _, i := range idxs {
		if rv.Kind() != reflect.Slice {
			return 0, fmt.Errorf("expected a slice at depth, got %s", rv.Kind())
		}
		if i >= rv.Len() {
			return 0, fmt.Errorf("index %d out of range (len %d)", i, rv.Len())
		}
		rv = rv.Index(i)
	}
	return scalarFloat(rv)
}

func scalarFloat(rv reflect.Value) (float64, error) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return float64(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return float64(rv.Uint()), nil
	default:
		return 0, fmt.Errorf("unsupported element kind %s", rv.Kind())
	}
}
