package container

import (
	"fmt"
	"reflect"
)

// parametersResolver turns parameter descriptors into call arguments.
//
// For each parameter, in order of precedence:
//  1. an explicit argument with the parameter's name;
//  2. a contextual value for the owner ("$name", or the reference identifier);
//  3. for reference parameters, a recursively resolved instance;
//  4. the declared default.
type parametersResolver struct {
	container  *Container
	owner      string
	parameters []ParameterDescriptor
	args       Args
	contextual map[string]contextualEntry
	stack      []string
}

func (r *parametersResolver) arguments() ([]reflect.Value, error) {
	out := make([]reflect.Value, len(r.parameters))
	for i, p := range r.parameters {
		v, err := r.argument(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r *parametersResolver) argument(p ParameterDescriptor) (reflect.Value, error) {
	if v, ok := r.args[p.Name]; ok {
		return r.assign(p, v)
	}

	if e, ok := r.contextual["$"+p.Name]; ok {
		return r.fromContextual(p, e)
	}

	if p.Kind == Reference {
		if e, ok := r.contextual[p.Ref]; ok {
			return r.fromContextual(p, e)
		}
		inst, err := r.classInstance(p.Ref)
		if err != nil {
			return reflect.Value{}, err
		}
		return r.assign(p, inst)
	}

	if p.HasDefault {
		return r.assign(p, p.Default)
	}
	return reflect.Value{}, fmt.Errorf("%w: parameter %q (%s) of %s has no argument and no default value", ErrUnsatisfiable, p.Name, p.Type, r.owner)
}

func (r *parametersResolver) fromContextual(p ParameterDescriptor, e contextualEntry) (reflect.Value, error) {
	if e.isValue {
		return r.assign(p, e.value)
	}
	inst, err := r.classInstance(e.target)
	if err != nil {
		return reflect.Value{}, err
	}
	return r.assign(p, inst)
}

// classInstance resolves id with no explicit arguments; bindings are
// chased again from scratch.
func (r *parametersResolver) classInstance(id string) (any, error) {
	return (&instanceResolver{container: r.container, id: id, stack: r.stack}).instance()
}

func (r *parametersResolver) assign(p ParameterDescriptor, v any) (reflect.Value, error) {
	rv, ok := assignValue(p.Type, v)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: parameter %q of %s is %s, got %T", ErrTypeMismatch, p.Name, r.owner, p.Type, v)
	}
	return rv, nil
}

// assignValue adapts v to t. nil becomes the zero value, a pointer whose
// element fits is dereferenced, and numeric or named-basic values convert
// within their kind family when the value is representable in t.
func assignValue(t reflect.Type, v any) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Type().AssignableTo(t) {
		return rv.Elem(), true
	}
	if family(rv.Kind()) != 0 && family(rv.Kind()) == family(t.Kind()) && rv.Type().ConvertibleTo(t) && fits(rv, t) {
		return rv.Convert(t), true
	}
	return reflect.Value{}, false
}

// fits reports whether rv converts to t without overflow. rv and t belong
// to the same kind family.
func fits(rv reflect.Value, t reflect.Type) bool {
	dst := reflect.New(t).Elem()
	switch family(t.Kind()) {
	case 1:
		return !dst.OverflowInt(rv.Int())
	case 2:
		return !dst.OverflowUint(rv.Uint())
	case 3:
		return !dst.OverflowFloat(rv.Float())
	default:
		return true
	}
}

func family(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 1
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 2
	case reflect.Float32, reflect.Float64:
		return 3
	case reflect.String:
		return 4
	case reflect.Bool:
		return 5
	default:
		return 0
	}
}
