package binder

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv, err := structValue(v, bindErr)
	if err != nil {
		return err
	}
	return bindValues(rv, tagName, values, bindErr)
}

func bindValues(rv reflect.Value, tagName string, values map[string][]string, bindErr error) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, skip := parseFieldTag(fieldType, tagName)
		if skip {
			continue
		}
		fieldValues, ok := values[name]
		if !ok || len(fieldValues) == 0 {
			continue
		}
		if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, fieldType.Name, err)
		}
	}
	return nil
}

// parseFieldTag returns the parameter name of a field and whether to skip it.
func parseFieldTag(field reflect.StructField, tagName string) (string, bool) {
	tag := field.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(field.Name), false
	case "-":
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func setFieldValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	if fieldType.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), values)
	}

	// uuid.UUID and friends
	if reflect.PointerTo(fieldType).Implements(textUnmarshalerType) {
		u := field.Addr().Interface().(encoding.TextUnmarshaler)
		return u.UnmarshalText([]byte(values[0]))
	}

	if fieldType.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(fieldType, len(values), len(values))
		for i, value := range values {
			if err := setFieldValue(slice.Index(i), fieldType.Elem(), []string{strings.TrimSpace(value)}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]
	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)
	case reflect.Bool:
		switch strings.ToLower(value) {
		case "on", "yes":
			field.SetBool(true)
		case "off", "no":
			field.SetBool(false)
		default:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid bool value %q", value)
			}
			field.SetBool(b)
		}
	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}
	return nil
}
