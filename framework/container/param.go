package container

import (
	"fmt"
	"reflect"
	"strconv"
)

// Kind classifies the declared type of a parameter.
type Kind int

const (
	// Untyped parameters are declared as the empty interface.
	Untyped Kind = iota

	// Builtin parameters have a primitive or unnamed composite type. They
	// are never injected; the value comes from an explicit argument or a
	// default.
	Builtin

	// Reference parameters have an interface, named struct or pointer to
	// named struct type and are injected by resolving their identifier.
	Reference
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case Untyped:
		return "untyped"
	case Builtin:
		return "builtin"
	case Reference:
		return "reference"
	default:
		return "unknown"
	}
}

// KindOf classifies a Go type the way the resolver does.
func KindOf(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Untyped
		}
		return Reference
	case reflect.Struct:
		if t.Name() != "" {
			return Reference
		}
	case reflect.Ptr:
		if e := t.Elem(); e.Kind() == reflect.Struct && e.Name() != "" {
			return Reference
		}
	}
	return Builtin
}

// ── Param builder ─────────────────────────────────────────────────────────────

// ParamSpec names a constructor or method parameter and optionally gives it
// a default value or an explicit injection identifier. Build one with Param.
//
//	container.Param("arg1").Default("x")
//	container.Param("config").Ref("ConfigInterface")
type ParamSpec struct {
	name       string
	ref        string
	def        any
	hasDefault bool
}

// Param starts a parameter description for the given name.
func Param(name string) ParamSpec {
	return ParamSpec{name: name}
}

// Default sets the value used when neither an explicit argument nor
// injection supplies one.
func (p ParamSpec) Default(v any) ParamSpec {
	p.def = v
	p.hasDefault = true
	return p
}

// Ref overrides the identifier resolved for a reference parameter. Without
// it the identifier is TypeKey of the declared type.
func (p ParamSpec) Ref(id string) ParamSpec {
	p.ref = id
	return p
}

// ── Descriptors ───────────────────────────────────────────────────────────────

// ParameterDescriptor is the resolver's view of one declared parameter.
type ParameterDescriptor struct {
	Name       string
	Kind       Kind
	Type       reflect.Type
	Ref        string // identifier injected for Reference parameters
	HasDefault bool
	Default    any
}

func (d ParameterDescriptor) String() string {
	return fmt.Sprintf("%s %s (%s)", d.Name, d.Type, d.Kind)
}

// describe builds descriptors for the inputs of fn. Parameters without a
// matching ParamSpec are named by position.
func describe(fn reflect.Type, specs []ParamSpec) ([]ParameterDescriptor, error) {
	if len(specs) > fn.NumIn() {
		return nil, fmt.Errorf("%w: %d parameter names for %d parameters", ErrInvalidDefinition, len(specs), fn.NumIn())
	}

	descs := make([]ParameterDescriptor, fn.NumIn())
	for i := range descs {
		t := fn.In(i)
		d := ParameterDescriptor{
			Name: strconv.Itoa(i),
			Kind: KindOf(t),
			Type: t,
		}
		if d.Kind == Reference {
			d.Ref = typeKey(t)
		}
		if i < len(specs) {
			s := specs[i]
			if s.name != "" {
				d.Name = s.name
			}
			if s.ref != "" {
				// An untyped parameter with an identifier becomes injectable;
				// builtins never are.
				if d.Kind == Builtin {
					return nil, fmt.Errorf("%w: parameter %q has builtin type %s and cannot take a reference", ErrInvalidDefinition, d.Name, t)
				}
				d.Kind = Reference
				d.Ref = s.ref
			}
			d.HasDefault = s.hasDefault
			d.Default = s.def
		}
		descs[i] = d
	}
	return descs, nil
}
