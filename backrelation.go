package modelcheck

import (
	"context"

	"gorm.io/modelcheck/utils"
)

// verifyBackRelations checks every edge of registry is answered by its target, failures are reported per edge
func (v *Validator) verifyBackRelations(ctx context.Context, registry *Registry) []error {
	var errs []error

	registry.Each(func(class string, edges []Edge) {
		skipped := v.SkipBackRelationMethodsPerClass[class]
		if utils.Contains(skipped, Wildcard) {
			v.Logger.Info(ctx, "skip back relations of %s", class)
			return
		}

		for _, edge := range edges {
			if utils.Contains(skipped, edge.Method) {
				v.Logger.Info(ctx, "skip back relation of %s.%s()", class, edge.Method)
				continue
			}

			err := v.verifyBackRelation(registry, edge)
			if err != nil {
				errs = append(errs, err)
			}
			v.report(ctx, err, "%s.%s() has a back relation on %s", edge.Source, edge.Method, edge.Target)
		}
	})

	return errs
}

func (v *Validator) verifyBackRelation(registry *Registry, edge Edge) error {
	reverse := registry.Reverse(edge.Target, edge.Source)
	if len(reverse) == 0 {
		return &MissingBackRelationError{Edge: edge}
	}

	if !v.BackRelationTypeValidationEnabled {
		return nil
	}

	expected := edge.Kind.Inverses()
	if len(expected) == 0 {
		return &UnknownRelationKindError{Edge: edge}
	}

	for _, back := range reverse {
		if edge.Kind.Accepts(back.Kind) {
			return nil
		}
	}
	return &IncompatibleBackRelationError{Edge: edge, Found: reverse, Expected: expected}
}
