package container

import "errors"

var (
	// ErrNotFound is returned by Get when no binding exists for an
	// identifier. Resolution of an identifier that is neither bound nor
	// defined also matches it.
	ErrNotFound = errors.New("container entry not found")

	// ErrReflection is returned when an identifier cannot be constructed
	// (no definition in the catalog) or a method does not exist on an
	// instance.
	ErrReflection = errors.New("cannot reflect")

	// ErrUnsatisfiable is returned when a builtin or untyped parameter has
	// neither an explicit argument nor a default value.
	ErrUnsatisfiable = errors.New("unresolvable parameter")

	// ErrTypeMismatch is returned when a supplied or resolved value cannot
	// be assigned to the declared parameter type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCircularBinding is returned when identifier bindings form a cycle
	// while chasing indirection.
	ErrCircularBinding = errors.New("circular binding")

	// ErrCircularDependency is returned when a type depends on itself
	// through its constructor parameters. The message includes the chain.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrInvalidDefinition is returned by Define, DefineType and
	// DescribeMethod for malformed definitions.
	ErrInvalidDefinition = errors.New("invalid definition")
)
