package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_MissingProfile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"does-not-exist.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"profile", "assumptions", "catalog", "ev", "ice", "log-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}

	cmd.SetArgs([]string{"a.yaml", "b.yaml"})
	assert.Error(t, cmd.Execute(), "At most one positional profile")
}
