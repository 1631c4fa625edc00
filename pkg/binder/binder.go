package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Func populates v, a pointer to struct, from parts of the request.
type Func func(r *http.Request, v any) error

// Query binds URL query parameters to fields tagged `query:"name"`.
// Untagged fields use the lowercased field name; `query:"-"` skips a field.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}

// Path binds path parameters to fields tagged `path:"name"` using extractor,
// typically chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) Func {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor is nil", ErrInvalidPath)
		}
		rv, err := structValue(v, ErrInvalidPath)
		if err != nil {
			return err
		}
		values := make(map[string][]string)
		rt := rv.Type()
		for i := range rt.NumField() {
			name, skip := parseFieldTag(rt.Field(i), "path")
			if skip {
				continue
			}
			if val := extractor(r, name); val != "" {
				values[name] = []string{val}
			}
		}
		return bindValues(rv, "path", values, ErrInvalidPath)
	}
}

func structValue(v any, bindErr error) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}
	return rv, nil
}
