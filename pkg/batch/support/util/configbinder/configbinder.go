// Package configbinder binds the string property bags declared on job
// definition elements to typed component settings structs.
package configbinder

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// BindProperties binds a map of string properties (the <property> bag of a
// step or component) to a target struct using mapstructure. It uses the
// "yaml" tag for binding and allows weakly typed input, so numeric and
// boolean settings can be declared as attribute strings.
//
// Parameters:
//
//	props: The property map to bind. An empty or nil map binds nothing.
//	target: A pointer to the settings struct to populate.
//
// Returns:
//
//	An error if binding fails.
func BindProperties(props map[string]string, target interface{}) error {
	if len(props) == 0 {
		return nil
	}

	// mapstructure wants map[string]interface{} input.
	intermediate := make(map[string]interface{}, len(props))
	for k, v := range props {
		intermediate[k] = v
	}

	decoderConfig := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           target,
		TagName:          "yaml", // Use "yaml" tag for binding.
		WeaklyTypedInput: true,   // Allow converting strings to numeric types.
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(intermediate); err != nil {
		targetType := reflect.TypeOf(target)
		if targetType.Kind() == reflect.Ptr {
			targetType = targetType.Elem()
		}
		return fmt.Errorf("failed to bind properties to struct %s: %w", targetType.Name(), err)
	}

	return nil
}
