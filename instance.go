package modelcheck

import (
	"reflect"

	"gorm.io/modelcheck/model"
	"gorm.io/modelcheck/utils"
)

var (
	modelType      = reflect.TypeOf((*model.Model)(nil)).Elem()
	modelNamespace = reflect.TypeOf(model.Base{}).PkgPath()
)

// IsSubtype class is base, embeds base or its pointer implements base
func IsSubtype(class, base reflect.Type) bool {
	class, base = utils.Indirect(class), utils.Indirect(base)
	if class == nil || base == nil {
		return false
	}
	if base.Kind() == reflect.Interface {
		return class.Implements(base) || reflect.PtrTo(class).Implements(base)
	}
	return embeds(class, base, map[reflect.Type]bool{})
}

func embeds(class, base reflect.Type, visited map[reflect.Type]bool) bool {
	if class == base {
		return true
	}
	if class.Kind() != reflect.Struct || visited[class] {
		return false
	}
	visited[class] = true

	for i := 0; i < class.NumField(); i++ {
		if field := class.Field(i); field.Anonymous && embeds(utils.Indirect(field.Type), base, visited) {
			return true
		}
	}
	return false
}

// validateInstance returns nil when class passes, or is skipped as a non model class
func (v *Validator) validateInstance(class reflect.Type) (skipped bool, err error) {
	name := utils.TypeName(class)

	if required, ok := v.RequiredBaseTypePerClass[name]; ok {
		if !IsSubtype(class, required) {
			return false, &InstanceKindError{Class: name, Allowed: []string{utils.TypeName(required)}}
		}
		return false, nil
	}

	allowed := make([]string, 0, len(v.AllowedBaseTypes))
	for _, base := range v.AllowedBaseTypes {
		if IsSubtype(class, base) {
			return false, nil
		}
		allowed = append(allowed, utils.TypeName(base))
	}

	if v.AllowNonModelClasses && !IsSubtype(class, modelType) {
		return true, nil
	}
	return false, &InstanceKindError{Class: name, Allowed: allowed}
}
