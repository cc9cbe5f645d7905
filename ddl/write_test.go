package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestAlterTable(w *WriteContext, table string) *AlterTable {
	return w.AlterTable(table, func() *AlterTable {
		return NewAlterTable(table, "alter table "+table, nil)
	})
}

func TestWriteContextSectionOrder(t *testing.T) {
	w := NewWriteContext()
	w.ApplyPostAlter().AppendStatement("post")
	w.ApplyForeignKeys().AppendStatement("fk")
	w.Apply().AppendStatement("apply")

	assert.Equal(t, []string{"apply", "fk", "post"}, w.Statements())
}

func TestWriteContextFlushesAlterTablesInOrder(t *testing.T) {
	w := NewWriteContext()
	w.Apply().AppendStatement("create table a")
	newTestAlterTable(w, "users").Add(AlterCmd{Operation: "drop column", Column: "a"})
	newTestAlterTable(w, "orders").Add(AlterCmd{Operation: "drop column", Column: "b"})
	newTestAlterTable(w, "users").AddRaw("update users set c = 0 where c is null")

	w.Apply().AppendStatement("drop table t")
	newTestAlterTable(w, "users").Add(AlterCmd{Operation: "drop column", Column: "d"})
	newTestAlterTable(w, "items").Add(AlterCmd{Operation: "drop column", Column: "e"})

	assert.Equal(t, []string{
		"create table a",
		"alter table users drop column a",
		"update users set c = 0 where c is null",
		"alter table users drop column d",
		"alter table orders drop column b",
		"drop table t",
		"alter table items drop column e",
	}, w.Statements())
}

func TestWriteContextKeepsOneBatchPerTable(t *testing.T) {
	calls := 0
	reorg := func(at *AlterTable) []AlterCmd {
		calls++
		return append(at.Commands(), AlterCmd{Raw: "reorg " + at.Table()})
	}
	w := NewWriteContext()
	batch := func() *AlterTable {
		return w.AlterTable("users", func() *AlterTable {
			return NewAlterTable("users", "alter table users", reorg)
		})
	}
	batch().Add(AlterCmd{Operation: "drop column", Column: "a"})
	w.Apply().AppendStatement("drop sequence s")
	batch().AddRaw("drop index ix_users_a")
	batch().Add(AlterCmd{Operation: "drop column", Column: "b"})

	assert.Equal(t, []string{
		"alter table users drop column a",
		"drop index ix_users_a",
		"alter table users drop column b",
		"reorg users",
		"drop sequence s",
	}, w.Statements())
	assert.Equal(t, 1, calls)
}

func TestAlterTableCommitsOnce(t *testing.T) {
	calls := 0
	at := NewAlterTable("users", "alter table users", func(at *AlterTable) []AlterCmd {
		calls++
		return append(at.Commands(), AlterCmd{Raw: "reorg"})
	})
	at.Add(AlterCmd{Operation: "drop column", Column: "a"})

	assert.Equal(t, []string{"alter table users drop column a", "reorg"}, at.statements())
	assert.Nil(t, at.statements())
	assert.Equal(t, 1, calls)
	assert.Panics(t, func() { at.AddRaw("late") })
}

func TestWriteContextComplete(t *testing.T) {
	w := NewWriteContext()
	w.Apply().AppendStatement("apply")
	w.Rollback().Apply().AppendStatement("undo")
	w.Complete()

	assert.Panics(t, func() { w.Apply().AppendStatement("late") })
	assert.Panics(t, func() { newTestAlterTable(w, "users") })
	assert.Panics(t, func() { w.Rollback().Apply().AppendStatement("late") })

	assert.Equal(t, "apply;\n", w.Script(false))
	assert.Equal(t, "apply;\nundo;\n", w.Script(true))
	assert.Equal(t, []string{"undo"}, w.RollbackStatements())
}

func TestRollbackCreatedAfterComplete(t *testing.T) {
	w := NewWriteContext()
	w.Complete()
	assert.Empty(t, w.RollbackStatements())
	assert.Panics(t, func() { w.Rollback().Apply().AppendStatement("late") })
}
