package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetSkip
)

// Field is one exported component field with its rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"angle": WidgetAngle,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// ParseTag parses an inspect struct tag of the form
// `inspect:"widget[,option:value...]"`, e.g. `inspect:"bar,max:2"`.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")
	widget, ok := widgetNames[strings.TrimSpace(parts[0])]
	if !ok {
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		if k, v, found := strings.Cut(strings.TrimSpace(part), ":"); found {
			options[k] = v
		}
	}
	return widget, options
}

// ExtractFields returns the inspectable fields of a component struct or
// pointer to one. Fields tagged skip and unexported fields are left out.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		fv := v.Field(i)
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}
	return fields
}

func autoDetectWidget(v reflect.Value) Widget {
	if v.Kind() == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// FormatValue formats a field value, honoring an optional printf format.
// Stringers (such as task enums) print by name.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch v := value.(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 2, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// GetMax returns the max option as a float, defaulting to 1.
func GetMax(options map[string]string) float32 {
	if s, ok := options["max"]; ok {
		if m, err := strconv.ParseFloat(s, 32); err == nil && m > 0 {
			return float32(m)
		}
	}
	return 1
}

// GetFloatValue extracts a float32 from numeric field values.
func GetFloatValue(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case int64:
		return float32(v), true
	default:
		return 0, false
	}
}
