package config

import (
	"testing"

	"github.com/sqldef/ddlgen/ddl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig("testdata/config.yml")
	require.NoError(t, err)

	db2 := config.Overrides(ddl.DB2)
	require.NotNil(t, db2.MaxConstraintLength)
	assert.Equal(t, 30, *db2.MaxConstraintLength)
	require.NotNil(t, db2.HistorySuffix)
	assert.Equal(t, "_hist", *db2.HistorySuffix)

	postgres := config.Overrides(ddl.Postgres)
	require.NotNil(t, postgres.DropTableIfExists)
	assert.Equal(t, "drop table ", *postgres.DropTableIfExists)

	assert.Equal(t, ddl.Overrides{}, config.Overrides(ddl.Oracle))

	d, err := config.Dialect(ddl.Postgres)
	require.NoError(t, err)
	assert.Equal(t, "drop table ", d.Lexicon().DropTable)
	assert.False(t, d.Lexicon().InlineUniqueWhenNullable)

	d, err = config.Dialect(ddl.DB2)
	require.NoError(t, err)
	assert.Equal(t, 30, d.Naming().MaxLength)
}

func TestParseConfigEmptyPath(t *testing.T) {
	config, err := ParseConfig("")
	require.NoError(t, err)
	assert.Equal(t, ddl.Overrides{}, config.Overrides(ddl.Postgres))

	d, err := config.Dialect(ddl.MySQL)
	require.NoError(t, err)
	assert.Equal(t, ddl.MySQL, d.Platform())
}

func TestParseConfigErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "platforms:\n  db2:\n    max_length: 30\n",
		"unknown top level": "dialects: {}\n",
		"unknown platform":  "platforms:\n  sybase: {}\n",
		"duplicate alias":   "platforms:\n  postgres: {}\n  pg: {}\n",
		"too short":         "platforms:\n  oracle:\n    max_constraint_length: 5\n",
		"bad history":       "platforms:\n  oracle:\n    history: temporal\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfigBytes([]byte(content))
			assert.ErrorIs(t, err, ddl.ErrInvalidConfiguration)
		})
	}

	_, err := ParseConfig("testdata/missing.yml")
	assert.Error(t, err)
}
