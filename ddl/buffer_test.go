package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferAppendWithSpace(t *testing.T) {
	var b Buffer
	b.Append("create table t (").AppendWithSpace("id int").AppendWithSpace("").AppendName("not_null")
	b.EndOfStatement()
	b.Append("drop table ").AppendWithSpace("t").EndOfStatement()
	b.Append("  ").EndOfStatement()

	assert.Equal(t, []string{"create table t (id int not_null", "drop table t"}, b.Statements())
	assert.Equal(t, "create table t (id int not_null;\ndrop table t;\n", b.String())
}

func TestBufferFreeze(t *testing.T) {
	var b Buffer
	assert.True(t, b.IsEmpty())

	b.Append("select 1")
	assert.False(t, b.IsEmpty())
	assert.Empty(t, b.Statements())

	b.Freeze()
	b.Freeze()
	assert.Equal(t, []string{"select 1"}, b.Statements())
	assert.Panics(t, func() { b.Append("select 2") })
	assert.Panics(t, func() { b.EndOfStatement() })
}

func TestJoinStatements(t *testing.T) {
	assert.Equal(t, "", JoinStatements(nil))
	assert.Equal(t, "a;\nb;\n", JoinStatements([]string{"a", "b"}))
}
