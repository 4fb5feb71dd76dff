package settings

import (
	"os"
	"testing"

	"github.com/go-home-io/guestkey/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests env function.
func TestTemplateEnv(t *testing.T) {
	require.NoError(t, os.Setenv("GUESTKEY_TPL_VALUE", "abc"))
	defer os.Unsetenv("GUESTKEY_TPL_VALUE") // nolint: errcheck

	logger := mocks.FakeNewLogger(nil)
	p := newTemplateProvider(logger)

	out, err := p.Process([]byte(`token: {{ env "GUESTKEY_TPL_VALUE" }} & {{ env "GUESTKEY_TPL_MISSING" }}`))
	require.NoError(t, err)
	assert.Equal(t, "token: abc & ", string(out))
	assert.NotNil(t, logger.Find("Environment variable is not set"))
}

// Tests broken template.
func TestTemplateBroken(t *testing.T) {
	p := newTemplateProvider(mocks.FakeNewLogger(nil))
	_, err := p.Process([]byte(`{{ env `))
	assert.Error(t, err)

	_, err = p.Process([]byte(`{{ unknown "x" }}`))
	assert.Error(t, err)
}
