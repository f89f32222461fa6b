package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Bind populates target from parsed form values using `form` struct tags.
// Target must be a non-nil pointer to a struct. Fields without a tag bind
// by their lowercase name; `form:"-"` skips a field.
//
// Supported field types:
//   - Basic types: string, int, int64, uint, uint64, float32, float64, bool
//   - Slices of basic types for repeated fields and comma-separated values
//   - Pointers for optional fields
//
// Values for absent fields are left at their zero value. Bool fields
// accept the HTML form vocabulary ("on", "yes", "off", "no") alongside
// strconv forms.
func Bind(values url.Values, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToBindForm)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToBindForm)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		sf := rt.Field(i)
		name, ok := fieldKey(sf)
		if !ok {
			continue
		}

		vals := values[name]
		if len(vals) == 0 {
			continue
		}

		if err := assign(field, vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrFailedToBindForm, sf.Name, err)
		}
	}

	return nil
}

// fieldKey resolves the form key for a struct field. Untagged fields bind
// by their lowercase name; `form:"-"` opts a field out.
func fieldKey(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("form")
	switch tag {
	case "":
		return strings.ToLower(sf.Name), true
	case "-":
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, true
}

// assign converts vals into one struct field, allocating pointers and
// building slices as the field type demands.
func assign(field reflect.Value, vals []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return assign(field.Elem(), vals)
	case reflect.Slice:
		return assignSlice(field, vals)
	default:
		return assignScalar(field, vals[0])
	}
}

// assignSlice fills a slice field. Repeated form fields and a single
// comma-separated value both contribute one element per item.
func assignSlice(field reflect.Value, vals []string) error {
	var items []string
	for _, v := range vals {
		for _, item := range strings.Split(v, ",") {
			items = append(items, strings.TrimSpace(item))
		}
	}

	slice := reflect.MakeSlice(field.Type(), len(items), len(items))
	for i, item := range items {
		if err := assign(slice.Index(i), []string{item}); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}

func assignScalar(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(sanitize(value))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}

	return nil
}

// parseBool accepts strconv forms plus the vocabulary HTML checkboxes and
// selects actually submit.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid bool value %q", value)
	}
	return b, nil
}

// sanitize strips NUL bytes, CR/LF, and the remaining control characters
// from a form value before it lands in a struct field, closing off header
// and log injection through text fields. Tabs survive.
func sanitize(value string) string {
	return strings.Map(func(r rune) rune {
		if r < ' ' && r != '\t' {
			return -1
		}
		return r
	}, value)
}
