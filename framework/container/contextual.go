package container

// ContextualBuilder implements the fluent contextual binding API.
//
//	// Laravel: $app->when(PlaygroundController::class)->needs(Mailer::class)->give(...)
//	c.When("forms.playground").Needs("mailer").Give(func(c *container.Container) any {
//	    return mail.NewLog(logger)
//	})
type ContextualBuilder struct {
	container *Container
	concrete  string
	needs     string
}

// Needs specifies which abstract the concrete type depends on.
func (b *ContextualBuilder) Needs(abstract string) *ContextualBuilder {
	b.needs = abstract
	return b
}

// Give provides the factory that should be used when the concrete type
// resolves the specified abstract.
func (b *ContextualBuilder) Give(factory Factory) {
	b.container.mu.Lock()
	defer b.container.mu.Unlock()

	if _, ok := b.container.contextual[b.concrete]; !ok {
		b.container.contextual[b.concrete] = make(map[string]Factory)
	}
	b.container.contextual[b.concrete][b.needs] = factory
}

// GiveValue is a shorthand for Give when the value is a simple scalar or
// pre-built instance (no factory logic needed).
//
//	// Laravel: ->give('no-reply@example.com')
//	c.When("auth.magiclink").Needs("mail.from").GiveValue("no-reply@example.com")
func (b *ContextualBuilder) GiveValue(value any) {
	b.Give(func(_ *Container) any { return value })
}
