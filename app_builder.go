package lumen

// AppBuilder assembles an App whose resources and entities must exist before
// modules install, such as a logger or the externally owned player entity.
type AppBuilder struct {
	app       *App
	modules   []Module
	resources []any
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: NewApp()}
}

func (b *AppBuilder) UseStates(initialState State, finalState State) *AppBuilder {
	b.app.UseStates(initialState, finalState)
	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

// UseResources registers resources ahead of every module, so a Logger given
// here is the one modules log to while installing.
func (b *AppBuilder) UseResources(resources ...any) *AppBuilder {
	b.resources = append(b.resources, resources...)
	return b
}

// UseLighting adds the default lighting module set.
func (b *AppBuilder) UseLighting(lighting LightingModule, fixedDt float32) *AppBuilder {
	return b.UseModule(DefaultModules(lighting, fixedDt)...)
}

// Commands queues entities before the build; they exist once Build returns.
func (b *AppBuilder) Commands() *Commands {
	return b.app.Commands()
}

// Build installs every module and enters the initial state.
func (b *AppBuilder) Build() *App {
	b.app.addResources(b.resources...)
	b.app.UseModules(b.modules...)
	b.app.build()
	return b.app
}
