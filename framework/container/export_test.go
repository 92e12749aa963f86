package container

// NewIsolated exposes a fresh, non-global container to external tests.
// Keep it in a _test.go file: outside tests, Instance is the only container.
var NewIsolated = newContainer
