// Package output prints command results as text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
)

// ParseFormat normalizes a format name. The empty string means Text.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "":
		return Text, nil
	case Text, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use text, json or yaml)", s)
	}
}

// Texter is implemented by values with a human-oriented text form.
type Texter interface {
	WriteText(w io.Writer) error
}

// Write encodes v to w. In text mode v should be a Texter; anything else is
// printed with fmt.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(emptySlice(v))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(emptySlice(v)); err != nil {
			return err
		}
		return enc.Close()
	case Text, "":
		if t, ok := v.(Texter); ok {
			return t.WriteText(w)
		}
		_, err := fmt.Fprintln(w, v)
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// emptySlice turns a nil slice into an empty one so encoders print [] rather
// than null.
func emptySlice(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}
	return v
}
