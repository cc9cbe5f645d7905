package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goldenFile = `First:
  platform: postgres
  up: |
    drop table a;
    drop table b;
  down: |
    create table a;

Second:
  platform: postgres
  up: |
    drop table c;
`

func TestReplaceBlock(t *testing.T) {
	updated, err := replaceBlock(goldenFile, "First", "up", "drop table x;\n")
	require.NoError(t, err)
	assert.Equal(t, `First:
  platform: postgres
  up: |
    drop table x;
  down: |
    create table a;

Second:
  platform: postgres
  up: |
    drop table c;
`, updated)

	updated, err = replaceBlock(goldenFile, "First", "down", "drop table y;\ndrop table z;\n")
	require.NoError(t, err)
	assert.Equal(t, `First:
  platform: postgres
  up: |
    drop table a;
    drop table b;
  down: |
    drop table y;
    drop table z;

Second:
  platform: postgres
  up: |
    drop table c;
`, updated)

	updated, err = replaceBlock(goldenFile, "Second", "up", "drop table d;\n")
	require.NoError(t, err)
	assert.Contains(t, updated, "  up: |\n    drop table a;\n")
	assert.Contains(t, updated, "Second:\n  platform: postgres\n  up: |\n    drop table d;\n")
}

func TestReplaceBlockMissingField(t *testing.T) {
	_, err := replaceBlock(goldenFile, "Second", "down", "drop table d;\n")
	assert.ErrorContains(t, err, "test Second has no 'down: |' block")
}
