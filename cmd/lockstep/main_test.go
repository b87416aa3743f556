package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lockstep version ")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--transport", "memory", "--total-spaces", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid!")
}

func TestValidateCommand_BadTransport(t *testing.T) {
	_, err := execute(t, "validate", "--transport", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", "--machines")
	require.NoError(t, err)

	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, `barrierController[/"barrierController"/]`)
	assert.Contains(t, out, `signalController[\"signalController"\]`)
	assert.Contains(t, out, "%% barrier")
	assert.Contains(t, out, "[*] --> IDLE")
	assert.Contains(t, out, "[*] --> AVAILABLE")
}

func TestDescribeCommand_Raw(t *testing.T) {
	out, err := execute(t, "describe", "--raw")
	require.NoError(t, err)

	assert.Contains(t, out, "## barrier (state machine)")
	assert.Contains(t, out, "## parkingManagement (state machine)")
	assert.Contains(t, out, "- `barrierController.TO_BARRIER -> barrier.FROM_BARRIER_CONTROLLER`")
}
