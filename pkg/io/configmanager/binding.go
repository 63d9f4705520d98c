package configmanager

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	v1alpha1 "github.com/gdstools/gdskit/pkg/apis/project/v1alpha1"
)

// flagNameOverrides fixes spellings where the derived name deviates from
// the conventional flag vocabulary.
//
//nolint:gochecknoglobals // Flag spelling table is immutable package configuration.
var flagNameOverrides = map[string]string{
	"NoData": "nodata",
}

// AddFlagsFromFields registers one flag per field selector on the command,
// deriving each flag's name from the selected field's name. Selectors whose
// flag name is already taken are skipped.
func (m *ConfigManager) AddFlagsFromFields(cmd *cobra.Command) {
	flags := cmd.Flags()

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		name := m.GenerateFlagName(fieldPtr)
		if name == "" || flags.Lookup(name) != nil {
			continue
		}

		registerFlag(flags, fieldPtr, name, selector)
	}
}

// GenerateFlagName derives the flag name for a field selected from the
// manager's configuration, kebab-casing the field's Go name. It returns an
// empty string for pointers outside the configuration.
func (m *ConfigManager) GenerateFlagName(fieldPtr any) string {
	pointer := reflect.ValueOf(fieldPtr)
	if pointer.Kind() != reflect.Pointer || pointer.IsNil() {
		return ""
	}

	fieldName := findFieldName(reflect.ValueOf(m.Config).Elem(), pointer.Pointer(), pointer.Type().Elem())
	if fieldName == "" {
		return ""
	}

	if override, ok := flagNameOverrides[fieldName]; ok {
		return override
	}

	return camelToKebab(fieldName)
}

// findFieldName walks the struct for the field at the target address. The
// type must match too, because a struct shares its address with its first
// field.
func findFieldName(structValue reflect.Value, target uintptr, fieldType reflect.Type) string {
	for i := range structValue.NumField() {
		field := structValue.Field(i)
		if !field.CanAddr() {
			continue
		}

		if field.Addr().Pointer() == target && field.Type() == fieldType {
			return structValue.Type().Field(i).Name
		}

		if field.Kind() == reflect.Struct {
			if name := findFieldName(field, target, fieldType); name != "" {
				return name
			}
		}
	}

	return ""
}

func camelToKebab(name string) string {
	var builder strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(rune(name[i-1])) {
				builder.WriteByte('-')
			}

			builder.WriteRune(unicode.ToLower(r))

			continue
		}

		builder.WriteRune(r)
	}

	return builder.String()
}

// registerFlag binds the config field directly to a flag so parsed values
// land in the configuration before loading starts.
func registerFlag(flags *pflag.FlagSet, fieldPtr any, name string, selector FieldSelector[v1alpha1.Project]) {
	switch typed := fieldPtr.(type) {
	case pflag.Value:
		if selector.DefaultValue != nil {
			setFieldValue(fieldPtr, selector.DefaultValue)
		}

		flags.Var(typed, name, selector.Description)
	case *string:
		defaultValue, _ := selector.DefaultValue.(string)
		flags.StringVar(typed, name, defaultValue, selector.Description)
	case *bool:
		defaultValue, _ := selector.DefaultValue.(bool)
		flags.BoolVar(typed, name, defaultValue, selector.Description)
	case *int:
		defaultValue, _ := selector.DefaultValue.(int)
		flags.IntVar(typed, name, defaultValue, selector.Description)
	case *float64:
		defaultValue, _ := selector.DefaultValue.(float64)
		flags.Float64Var(typed, name, defaultValue, selector.Description)
	}
}

// flagValueSetter lets enum fields parse their own flag text.
type flagValueSetter interface {
	Set(value string) error
}

func setFieldValueFromFlag(fieldPtr any, value string) {
	switch typed := fieldPtr.(type) {
	case flagValueSetter:
		_ = typed.Set(value)
	case *string:
		*typed = value
	case *bool:
		if parsed, err := strconv.ParseBool(value); err == nil {
			*typed = parsed
		}
	case *int:
		if parsed, err := strconv.Atoi(value); err == nil {
			*typed = parsed
		}
	case *float64:
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*typed = parsed
		}
	}
}

func setFieldValue(fieldPtr, value any) {
	if value == nil {
		return
	}

	field := reflect.ValueOf(fieldPtr)
	if field.Kind() != reflect.Pointer || field.IsNil() {
		return
	}

	target := field.Elem()

	source := reflect.ValueOf(value)
	if !source.Type().ConvertibleTo(target.Type()) {
		return
	}

	target.Set(source.Convert(target.Type()))
}

func isFieldEmpty(fieldPtr any) bool {
	value := reflect.ValueOf(fieldPtr)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return true
	}

	return value.Elem().IsZero()
}
