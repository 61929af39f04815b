//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"search", "verify", "serve"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
	assert.Equal(t, "dealdigger", rootCmd.Use)
}
