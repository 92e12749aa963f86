package container

import (
	"fmt"
	"reflect"
)

// methodInvoker calls a method on an instance with injected arguments.
type methodInvoker struct {
	container *Container
	instance  any
	method    string
	args      Args
}

func (m *methodInvoker) value() (any, error) {
	rv := reflect.ValueOf(m.instance)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: method %s called on a nil instance", ErrReflection, m.method)
	}

	fn := rv.MethodByName(m.method)
	if !fn.IsValid() {
		return nil, fmt.Errorf("%w: method %T.%s does not exist", ErrReflection, m.instance, m.method)
	}
	fnType := fn.Type()
	if fnType.IsVariadic() {
		return nil, fmt.Errorf("%w: method %T.%s is variadic", ErrReflection, m.instance, m.method)
	}

	owner := fmt.Sprintf("%T.%s", m.instance, m.method)
	descs, err := describe(fnType, m.container.methodSpecs(rv.Type(), m.method))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", owner, err)
	}

	pr := &parametersResolver{
		container:  m.container,
		owner:      owner,
		parameters: descs,
		args:       m.args,
	}
	in, err := pr.arguments()
	if err != nil {
		return nil, err
	}

	m.container.logger().Debug().Str("method", owner).Int("params", len(in)).Msg("invoking")

	return results(fn.Call(in))
}

// results maps return values onto (any, error): a trailing error is split
// off, one remaining value is returned as is and several come back as []any.
func results(out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		last := out[n-1]
		out = out[:n-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		vals := make([]any, len(out))
		for i, v := range out {
			vals[i] = v.Interface()
		}
		return vals, nil
	}
}
