package container

// contextualEntry is what a concrete type receives for one need: another
// identifier to resolve, or a ready value.
type contextualEntry struct {
	target  string
	value   any
	isValue bool
}

// ContextualBuilder implements the fluent contextual binding API.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(S3::class)
//	c.When("PhotoController").Needs("Filesystem").Give("S3Filesystem")
//
//	// Laravel: $app->when(Mailer::class)->needs('$from')->give('noreply@example.com')
//	c.When("Mailer").Needs("$from").GiveValue("noreply@example.com")
type ContextualBuilder struct {
	container *Container
	concrete  string
	needs     string
}

// When starts a contextual binding chain for the concrete identifier being
// constructed (after indirection).
func (c *Container) When(concrete string) *ContextualBuilder {
	return &ContextualBuilder{container: c, concrete: concrete}
}

// Needs specifies the dependency: a reference identifier, or "$name" for a
// parameter addressed by name.
func (b *ContextualBuilder) Needs(abstract string) *ContextualBuilder {
	b.needs = abstract
	return b
}

// Give resolves target whenever the concrete type needs the dependency.
func (b *ContextualBuilder) Give(target string) {
	b.set(contextualEntry{target: target})
}

// GiveValue hands over value as is. Use it for primitives and pre-built
// instances.
//
//	c.When("App2").Needs("$arg1").GiveValue("value1")
func (b *ContextualBuilder) GiveValue(value any) {
	b.set(contextualEntry{value: value, isValue: true})
}

func (b *ContextualBuilder) set(e contextualEntry) {
	b.container.mu.Lock()
	defer b.container.mu.Unlock()

	if _, ok := b.container.contextual[b.concrete]; !ok {
		b.container.contextual[b.concrete] = make(map[string]contextualEntry)
	}
	b.container.contextual[b.concrete][b.needs] = e
}

// contextualFor returns a snapshot of the contextual entries for concrete.
func (c *Container) contextualFor(concrete string) map[string]contextualEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := c.contextual[concrete]
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]contextualEntry, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
