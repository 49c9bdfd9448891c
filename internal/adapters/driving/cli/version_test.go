package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	// Save and restore version
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	res := runCLI(t, "version")

	assert.NoError(t, res.err)
	assert.Contains(t, res.stdout, "docchat version test-version-1.0.0")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	res := runCLI(t, "version")

	assert.NoError(t, res.err)
	assert.Contains(t, res.stdout, "docchat version dev")
}

func TestVersionCmd_SkipsBootstrap(t *testing.T) {
	called := false
	SetBootstrap(func(_ context.Context, _ Options) (*Services, error) {
		called = true
		return nil, errors.New("should not run")
	})
	defer SetBootstrap(nil)

	res := runCLI(t, "version")

	assert.NoError(t, res.err)
	assert.False(t, called)
}
