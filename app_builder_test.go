package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockModule struct {
	installed bool
	logger    Logger
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	m.logger = app.Logger()
}

func TestAppBuilder_Stateless(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.False(t, app.stateful)
	assert.Equal(t, State(0), app.initialState)
	assert.Equal(t, State(0), app.finalState)
}

func TestAppBuilder_UseStates(t *testing.T) {
	app := NewAppBuilder().UseStates(StatePlaying, StatePaused).Build()

	assert.True(t, app.stateful)
	assert.Equal(t, StatePlaying, app.State())
	assert.Equal(t, StatePaused, app.finalState)
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	module1 := &MockModule{}
	module2 := &MockModule{}

	builder := NewAppBuilder().UseModule(module1).UseModule(module2)
	require.Len(t, builder.modules, 2)

	builder.Build()
	assert.True(t, module1.installed)
	assert.True(t, module2.installed)
}

func TestAppBuilder_ResourcesPrecedeModules(t *testing.T) {
	logger := &recordingLogger{}
	module := &MockModule{}

	NewAppBuilder().UseResources(logger).UseModule(module).Build()

	assert.Same(t, logger, module.logger)
}

func TestAppBuilder_UseLighting(t *testing.T) {
	logger := &recordingLogger{}
	builder := NewAppBuilder().UseResources(logger)
	cmd := builder.Commands()

	tr := NewTransform(mgl32.Vec3{1, 0, 0})
	player := NewPlayer(cmd.AddEntity(&tr))
	app := builder.UseLighting(LightingModule{Player: player}, 0.1).Build()

	assert.True(t, cmd.EntityExists(player.Entity), "queued entities exist after Build")
	assert.Same(t, player, Resource[Player](app))
	require.NotEmpty(t, logger.Lines())
	assert.Contains(t, logger.Lines()[0], "INFO: lighting: player")

	app.Step()
	assert.Equal(t, float32(0.1), Resource[Time](app).Dt)
}
