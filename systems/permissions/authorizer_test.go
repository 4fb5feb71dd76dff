package permissions

import (
	"testing"

	"github.com/go-home-io/guestkey/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getAuthorizer() (*Authorizer, *Matrix) {
	m := NewMatrix(&ConstructMatrix{Logger: mocks.FakeNewLogger(nil), Settings: getSettings()})
	return NewAuthorizer(mocks.FakeNewLogger(nil), m), m
}

// Tests that forbidden attempts are logged.
func TestForbiddenAttemptIsLogged(t *testing.T) {
	logger := mocks.FakeNewLogger(nil)
	m := NewMatrix(&ConstructMatrix{Logger: logger, Settings: getSettings()})
	a := NewAuthorizer(logger, m)

	cmd := &Command{Type: CmdToggleLight, Entity: "light.3_1_lights"}
	call, err := a.Prepare(cmd)
	require.NoError(t, err)

	assert.False(t, a.Authorize("32", call))
	entry := logger.Find("[SECURITY] Forbidden attempt to control entity")
	require.NotNil(t, entry)
	assert.Equal(t, "32", entry.Fields["booking"])
	assert.Equal(t, "light.3_1_lights", entry.Fields["entity"])

	assert.True(t, a.Authorize("31", call))
}

// Tests that category is derived from the command, not from the entity.
func TestCategoryFromCommand(t *testing.T) {
	a, _ := getAuthorizer()

	call, err := a.Prepare(&Command{Type: CmdToggleLight, Entity: "climate.3_1_trv"})
	require.NoError(t, err)
	assert.False(t, a.Authorize("31", call))
}

// Tests that unsupported commands are rejected before matrix lookup.
func TestPrepareRejectsUnknown(t *testing.T) {
	logger := mocks.FakeNewLogger(nil)
	a := NewAuthorizer(logger, NewMatrix(&ConstructMatrix{Logger: logger, Settings: getSettings()}))

	_, err := a.Prepare(&Command{Type: "open_door", Entity: "lock.front_door"})
	_, ok := err.(*ErrUnsupportedCommand)
	assert.True(t, ok)
	assert.NotNil(t, logger.Find("Rejected device command"))
	assert.Nil(t, logger.Find("[SECURITY] Forbidden attempt to control entity"))
}

// Tests shared entities.
func TestSharedEntity(t *testing.T) {
	a, _ := getAuthorizer()
	temp := Temperature(19)
	call, err := a.Prepare(&Command{Type: CmdSetTemperature, Entity: "climate.3_2_trv", Temperature: &temp})
	require.NoError(t, err)

	assert.True(t, a.Authorize("3a", call))
	assert.True(t, a.Authorize("32", call))
	assert.False(t, a.Authorize("31", call))
}

// Tests controls listing per booking.
func TestControls(t *testing.T) {
	a, _ := getAuthorizer()

	assert.Equal(t, map[Category][]string{
		CategoryClimate: {"climate.3_1_trv"},
		CategoryLights:  {"light.3_1_lights"},
	}, a.Controls("31"))

	assert.Equal(t, map[Category][]string{
		CategoryClimate: {"climate.3_2_trv"},
		CategoryLights:  {},
	}, a.Controls("32"))

	assert.Equal(t, map[Category][]string{
		CategoryClimate: {},
		CategoryLights:  {},
	}, a.Controls("99"))
}
