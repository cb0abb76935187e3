// Package configbinder binds loosely typed property maps onto configuration structs.
package configbinder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// BindProperties binds a map of properties to a target struct using mapstructure.
// It uses the "yaml" tag for binding and allows weakly typed input (e.g., string to int conversion).
// Fields of target that have no corresponding key are left untouched, so the target
// can be pre-populated with defaults.
//
// Parameters:
//
//	properties: The map of properties to bind. Nested sections are nested maps.
//	target: A pointer to the struct to bind the properties to.
//
// Returns:
//
//	An error if binding fails.
func BindProperties(properties map[string]interface{}, target interface{}) error {
	if len(properties) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(properties); err != nil {
		targetType := reflect.TypeOf(target)
		if targetType.Kind() == reflect.Ptr {
			targetType = targetType.Elem()
		}
		return fmt.Errorf("failed to bind properties to struct %s: %w", targetType.Name(), err)
	}
	return nil
}

// ExpandDottedKeys turns flat dotted keys ("server.port") into the nested map
// shape BindProperties expects ({"server": {"port": ...}}). Keys are lower-cased.
// A key that is both a leaf and a section ("a=1" and "a.b=2") is reported as an error.
func ExpandDottedKeys(flat map[string]string) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for key, value := range flat {
		parts := strings.Split(strings.ToLower(key), ".")
		node := out
		for i, part := range parts {
			if part == "" {
				return nil, fmt.Errorf("invalid property key '%s'", key)
			}
			if i == len(parts)-1 {
				if _, isSection := node[part].(map[string]interface{}); isSection {
					return nil, fmt.Errorf("property '%s' conflicts with a nested section", key)
				}
				node[part] = value
				break
			}
			next, exists := node[part]
			if !exists {
				child := make(map[string]interface{})
				node[part] = child
				node = child
				continue
			}
			child, ok := next.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("property '%s' conflicts with a scalar value", key)
			}
			node = child
		}
	}
	return out, nil
}
