package modelcheck

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"gorm.io/modelcheck/logger"
	"gorm.io/modelcheck/model"
	"gorm.io/modelcheck/utils"
)

// Validator validates model classes and their relations, assertions are reported to its Sink
//
//	func TestModels(t *testing.T) {
//	  v := modelcheck.New(modelcheck.NewTestingSink(t), modelcheck.WithConnPool(db))
//	  v.AssertModels(context.Background())
//	}
type Validator struct {
	*Config
	sink Sink
}

// Report result of a run
type Report struct {
	ID        uuid.UUID
	StartedAt time.Time
	Duration  time.Duration
	// Classes validated classes, in order
	Classes  []string
	Registry *Registry
	Failures []error
}

// Passed no failure happened
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// New initialize a validator, sink defaults to StrictSink
func New(sink Sink, opts ...Option) *Validator {
	config := DefaultConfig()
	for _, opt := range opts {
		opt.Apply(config)
	}

	if len(config.AllowedBaseTypes) == 0 {
		config.AllowedBaseTypes = []reflect.Type{modelType}
	}

	if config.ClassLister == nil {
		config.ClassLister = model.DefaultTypeRegistry
	}

	if config.Reflector == nil {
		config.Reflector = MethodReflector{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	if config.Runtime == nil {
		config.Runtime = model.Open(config.connPool, &model.Config{Logger: config.Logger})
	}

	if sink == nil {
		sink = StrictSink{}
	}

	return &Validator{Config: config, sink: sink}
}

// AssertModels validates classes, or the classes listed in ModelSearchPaths when none given,
// then checks back relations of all of them
func (v *Validator) AssertModels(ctx context.Context, classes ...interface{}) *Report {
	report := v.newReport()
	for _, class := range v.resolveClasses(ctx, report, classes) {
		v.assertModel(ctx, report, class)
	}

	if v.BackRelationValidationEnabled {
		report.Failures = append(report.Failures, v.verifyBackRelations(ctx, report.Registry)...)
	}
	return v.finish(ctx, report)
}

// AssertModel validates class and its methods, back relations are not checked
func (v *Validator) AssertModel(ctx context.Context, class interface{}) *Report {
	report := v.newReport()
	if typ, err := v.resolveClass(class); err != nil {
		report.Failures = append(report.Failures, err)
		v.report(ctx, err, "")
	} else {
		v.assertModel(ctx, report, typ)
	}
	return v.finish(ctx, report)
}

// AssertModelInstance validates class against its required or allowed base types
func (v *Validator) AssertModelInstance(class interface{}) error {
	ctx := context.Background()
	typ, err := v.resolveClass(class)
	if err == nil {
		var skipped bool
		if skipped, err = v.validateInstance(typ); skipped {
			v.Logger.Info(ctx, "skip non model class %s", utils.TypeName(typ))
			return nil
		}
	}
	v.report(ctx, err, "%s is an instance of an allowed type", utils.TypeName(typ))
	return err
}

// AssertModelMethods validates every method of class
func (v *Validator) AssertModelMethods(ctx context.Context, class interface{}) *Report {
	report := v.newReport()
	if typ, err := v.resolveClass(class); err != nil {
		report.Failures = append(report.Failures, err)
		v.report(ctx, err, "")
	} else {
		report.Classes = append(report.Classes, utils.TypeName(typ))
		v.assertMethods(ctx, report, typ)
	}
	return v.finish(ctx, report)
}

// AssertModelMethod validates method of class, unknown methods are ignored
func (v *Validator) AssertModelMethod(ctx context.Context, class interface{}, method string) error {
	typ, err := v.resolveClass(class)
	if err != nil {
		v.report(ctx, err, "")
		return err
	}

	for _, m := range v.Reflector.Methods(typ) {
		if m.Name == method {
			report := v.newReport()
			v.assertMethod(ctx, report, typ, m)
			return errors.Join(report.Failures...)
		}
	}
	v.Logger.Info(ctx, "%s has no method %s", utils.TypeName(typ), method)
	return nil
}

func (v *Validator) newReport() *Report {
	return &Report{ID: uuid.New(), StartedAt: time.Now(), Registry: NewRegistry()}
}

func (v *Validator) finish(ctx context.Context, report *Report) *Report {
	report.Duration = time.Since(report.StartedAt)
	v.Logger.Info(ctx, "[%s] validated %d classes, %d relations, %d failures in %v",
		report.ID, len(report.Classes), report.Registry.Len(), len(report.Failures), report.Duration)
	return report
}

func (v *Validator) resolveClasses(ctx context.Context, report *Report, classes []interface{}) []reflect.Type {
	var (
		types []reflect.Type
		seen  = map[reflect.Type]bool{}
		add   = func(typ reflect.Type) {
			if !seen[typ] {
				seen[typ] = true
				types = append(types, typ)
			}
		}
	)

	if len(classes) > 0 {
		for _, class := range classes {
			typ, err := v.resolveClass(class)
			if err != nil {
				report.Failures = append(report.Failures, err)
				v.report(ctx, err, "")
				continue
			}
			add(typ)
		}
		return types
	}

	paths := v.ModelSearchPaths
	if len(paths) == 0 {
		paths = []string{DefaultModelPath}
	}
	for _, path := range paths {
		listed, err := v.ClassLister.List(path)
		if err != nil {
			err = fmt.Errorf("list classes of %s: %w", path, err)
			report.Failures = append(report.Failures, err)
			v.report(ctx, err, "")
			continue
		}
		if len(listed) == 0 {
			v.Logger.Warn(ctx, "[%s] no classes found in %s, search paths are package import paths", report.ID, path)
		} else {
			v.Logger.Info(ctx, "[%s] found %d classes in %s", report.ID, len(listed), path)
		}
		for _, typ := range listed {
			add(typ)
		}
	}
	return types
}

// resolveClass class could be a class name, a reflect.Type or a value of the class
func (v *Validator) resolveClass(class interface{}) (reflect.Type, error) {
	var typ reflect.Type
	switch c := class.(type) {
	case string:
		if resolver, ok := v.ClassLister.(ClassResolver); ok {
			typ, _ = resolver.Lookup(c)
		}
	case reflect.Type:
		typ = utils.Indirect(c)
	default:
		typ = utils.Indirect(reflect.TypeOf(class))
	}

	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrUnknownClass, class)
	}
	return typ, nil
}

func (v *Validator) assertModel(ctx context.Context, report *Report, class reflect.Type) {
	name := utils.TypeName(class)
	report.Classes = append(report.Classes, name)
	v.Logger.Info(ctx, "[%s] validating %s", report.ID, name)

	skipped, err := v.validateInstance(class)
	if skipped {
		v.Logger.Info(ctx, "[%s] skip non model class %s", report.ID, name)
		return
	}
	v.report(ctx, err, "%s is an instance of an allowed type", name)
	if err != nil {
		report.Failures = append(report.Failures, err)
		return
	}

	v.assertMethods(ctx, report, class)
}

func (v *Validator) assertMethods(ctx context.Context, report *Report, class reflect.Type) {
	for _, method := range v.Reflector.Methods(class) {
		v.assertMethod(ctx, report, class, method)
	}
}

func (v *Validator) assertMethod(ctx context.Context, report *Report, class reflect.Type, method Method) {
	name := utils.TypeName(class)

	classification, err := v.classify(ctx, class, method)
	if err != nil {
		report.Failures = append(report.Failures, err)
		v.report(ctx, err, "")
		return
	}
	if !classification.Applicable {
		return
	}

	if v.BackRelationValidationEnabled {
		report.Registry.Append(Edge{
			Source: name,
			Method: method.Name,
			Kind:   classification.Kind,
			Target: utils.TypeName(classification.Target),
		})
	}

	err = v.execute(ctx, class, method, classification.Relation)
	if err != nil {
		report.Failures = append(report.Failures, err)
	}
	v.report(ctx, err, "%s.%s() returns a collection", name, method.Name)
}

// report passes the assertion described by format when err is nil, fails it with err otherwise
func (v *Validator) report(ctx context.Context, err error, format string, args ...interface{}) {
	if err == nil {
		v.sink.True(true, fmt.Sprintf(format, args...))
		return
	}

	v.Logger.Warn(ctx, "%v", err)

	var invalid *InvalidRelationError
	if errors.As(err, &invalid) {
		v.sink.Equal("", err.Error(), err.Error())
		return
	}
	v.sink.True(false, err.Error())
}
