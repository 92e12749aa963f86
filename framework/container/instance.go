package container

import (
	"fmt"
	"reflect"
	"strings"
)

// instanceResolver produces an instance for one identifier: it follows
// bindings, then builds the resulting type from its definition.
type instanceResolver struct {
	container *Container
	id        string
	args      Args

	// identifiers under construction further up the call chain
	stack []string
}

func (r *instanceResolver) instance() (any, error) {
	c := r.container
	log := c.logger()

	target, shared, found, err := c.chase(r.id)
	if err != nil {
		return nil, err
	}
	if found {
		log.Debug().Str("id", r.id).Str("target", target).Msg("resolved singleton")
		return shared, nil
	}

	def, ok := c.definition(target)
	if !ok {
		// A deferred provider may define the type rather than bind it.
		loaded, err := c.loadDeferred(target)
		if err != nil {
			return nil, err
		}
		if loaded {
			def, ok = c.definition(target)
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %w: type %s does not exist", ErrReflection, ErrNotFound, target)
	}

	for _, s := range r.stack {
		if s == target {
			chain := append(append([]string{}, r.stack...), target)
			return nil, fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(chain, " -> "))
		}
	}

	if !def.hasConstructor() {
		log.Debug().Str("id", r.id).Str("target", target).Msg("constructed without constructor")
		return def.shell()
	}

	fnType := def.constructor.Type()
	var in []reflect.Value
	if fnType.NumIn() > 0 {
		descs, err := describe(fnType, def.params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, err)
		}
		pr := &parametersResolver{
			container:  c,
			owner:      target,
			parameters: descs,
			args:       r.args,
			contextual: c.contextualFor(target),
			stack:      append(append([]string(nil), r.stack...), target),
		}
		if in, err = pr.arguments(); err != nil {
			return nil, err
		}
	}

	log.Debug().Str("id", r.id).Str("target", target).Int("params", len(in)).Msg("constructing")

	results := def.constructor.Call(in)
	if len(results) == 2 && !results[1].IsNil() {
		// Constructor failures belong to the caller untouched.
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

// chase follows the binding chain for id. It returns the identifier to
// construct, or the live instance when the chain ends in a singleton.
func (c *Container) chase(id string) (target string, shared any, found bool, err error) {
	mode := c.mode()
	seen := map[string]bool{id: true}

	for {
		b, ok := c.lookup(id)
		if !ok && !c.Defined(id) {
			loaded, err := c.loadDeferred(id)
			if err != nil {
				return "", nil, false, err
			}
			if loaded {
				b, ok = c.lookup(id)
			}
		}
		switch {
		case !ok:
			return id, nil, false, nil
		case b.shared:
			return id, b.instance, true, nil
		case b.target == id:
			return id, nil, false, nil
		}

		id = b.target
		if mode == SingleHop {
			return id, nil, false, nil
		}
		if seen[id] {
			return "", nil, false, fmt.Errorf("%w: %s is bound back into its own chain", ErrCircularBinding, id)
		}
		seen[id] = true
	}
}

func (c *Container) loadDeferred(id string) (bool, error) {
	c.mu.RLock()
	hook := c.deferred
	c.mu.RUnlock()
	if hook == nil {
		return false, nil
	}
	return hook(id)
}
