package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptions(t *testing.T) {
	options := parseOptions([]string{"--platform", "db2", "-p", "pg", "--rollback", "--verify", "changes.yml"})

	assert.Equal(t, "changes.yml", options.ChangesFile)
	assert.Equal(t, []string{"db2", "pg"}, options.Platforms)
	assert.True(t, options.Rollback)
	assert.True(t, options.Verify)
	assert.False(t, options.Debug)
	assert.Equal(t, -1, options.Concurrency)
}

func TestParseOptionsReadsStdinByDefault(t *testing.T) {
	options := parseOptions([]string{"--concurrency", "0"})

	assert.Equal(t, "-", options.ChangesFile)
	assert.Empty(t, options.Platforms)
	assert.Equal(t, 0, options.Concurrency)
}
