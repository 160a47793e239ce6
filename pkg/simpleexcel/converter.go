package simpleexcel

import (
	"fmt"
	"reflect"
)

// ConvertToDynamicData flattens a struct, or a slice of structs, into maps
// usable as section data. Map fields become one key per entry named
// "<Field>_<key>". The `excel` tag renames a field and `excel:"-"` skips it.
func ConvertToDynamicData(data interface{}) (interface{}, error) {
	val := reflect.ValueOf(data)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		return flattenStruct(val)
	case reflect.Slice:
		return flattenSlice(val)
	default:
		return nil, fmt.Errorf("expected struct or slice, got %v", val.Kind())
	}
}

func flattenStruct(val reflect.Value) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if fieldType.PkgPath != "" {
			continue
		}
		fieldName := fieldType.Name
		if tag, ok := fieldType.Tag.Lookup("excel"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				fieldName = tag
			}
		}

		if field.Kind() == reflect.Map {
			if field.IsNil() {
				continue
			}
			iter := field.MapRange()
			for iter.Next() {
				result[fmt.Sprintf("%s_%v", fieldName, iter.Key().Interface())] = iter.Value().Interface()
			}
			continue
		}
		result[fieldName] = field.Interface()
	}

	return result, nil
}

func flattenSlice(val reflect.Value) ([]map[string]interface{}, error) {
	result := make([]map[string]interface{}, val.Len())

	for i := 0; i < val.Len(); i++ {
		elem := val.Index(i)
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}

		if elem.Kind() != reflect.Struct {
			return nil, fmt.Errorf("expected slice of structs, got slice of %v", elem.Kind())
		}

		flattened, err := flattenStruct(elem)
		if err != nil {
			return nil, err
		}
		result[i] = flattened
	}

	return result, nil
}
