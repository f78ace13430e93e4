package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned by Get and Set for a key that is not in the file format.
var ErrUnknownKey = errors.New("unknown configuration key")

// Setting is one dotted key and its current value.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Get returns the value of a dotted key such as "output.locale".
func (c *Config) Get(key string) (string, error) {
	field, err := c.field(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(field.Interface()), nil
}

// Set parses value into the field named by a dotted key. Non-string fields
// accept YAML scalars ("true", "3600", "0.4").
func (c *Config) Set(key, value string) error {
	field, err := c.field(key)
	if err != nil {
		return err
	}
	if field.Kind() == reflect.String {
		field.SetString(value)
		return nil
	}
	parsed := reflect.New(field.Type())
	if err := yaml.Unmarshal([]byte(value), parsed.Interface()); err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	field.Set(parsed.Elem())
	return nil
}

// List returns every setting in file order.
func (c *Config) List() []Setting {
	var out []Setting
	root := reflect.ValueOf(c).Elem()
	for i := range root.NumField() {
		sf := root.Type().Field(i)
		section := yamlName(sf)
		if section == "" {
			continue
		}
		sv := root.Field(i)
		for j := range sv.NumField() {
			name := yamlName(sv.Type().Field(j))
			if name == "" {
				continue
			}
			out = append(out, Setting{
				Key:   section + "." + name,
				Value: fmt.Sprint(sv.Field(j).Interface()),
			})
		}
	}
	return out
}

// field resolves "section.name" to a settable struct field.
func (c *Config) field(key string) (reflect.Value, error) {
	section, name, ok := strings.Cut(strings.TrimSpace(key), ".")
	if !ok || section == "" || name == "" {
		return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	sv, found := fieldByYAMLName(reflect.ValueOf(c).Elem(), section)
	if !found || sv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	fv, found := fieldByYAMLName(sv, name)
	if !found {
		return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return fv, nil
}

func fieldByYAMLName(v reflect.Value, name string) (reflect.Value, bool) {
	for i := range v.NumField() {
		if yamlName(v.Type().Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// yamlName returns the yaml key of an exported field, or "" for fields that
// are not serialized.
func yamlName(sf reflect.StructField) string {
	if !sf.IsExported() {
		return ""
	}
	tag := sf.Tag.Get("yaml")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(sf.Name)
	}
	return name
}
