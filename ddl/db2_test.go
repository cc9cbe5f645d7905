package ddl

import (
	"testing"

	"github.com/sqldef/ddlgen/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDb2RequiresReorg(t *testing.T) {
	tests := []struct {
		name  string
		cmd   AlterCmd
		reorg bool
	}{
		{"raw", AlterCmd{Raw: "update users set a = 0 where a is null"}, false},
		{"add column", AlterCmd{Operation: "add column", Column: "a", Alternation: "int"}, false},
		{"drop column", AlterCmd{Operation: "drop column", Column: "a"}, true},
		{"set not null", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set not null"}, true},
		{"drop not null", AlterCmd{Operation: "alter column", Column: "a", Alternation: "drop not null"}, true},
		{"set default", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set default 0"}, false},
		{"varchar increase", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set data type varchar(100)", PreviousType: "varchar(50)"}, false},
		{"vargraphic increase", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set data type VARGRAPHIC(100)", PreviousType: "vargraphic(50)"}, false},
		{"varchar decrease", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set data type varchar(20)", PreviousType: "varchar(50)"}, true},
		{"varchar same length", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set data type varchar(50)", PreviousType: "varchar(50)"}, true},
		{"unknown previous type", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set data type varchar(100)"}, true},
		{"char increase", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set data type char(20)", PreviousType: "char(10)"}, true},
		{"base change", AlterCmd{Operation: "alter column", Column: "a", Alternation: "set data type clob(1M)", PreviousType: "varchar(50)"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reorg, db2RequiresReorg(db2Spec.lexicon, tt.cmd))
		})
	}
}

func TestDb2ReorgFollowsLexiconOverrides(t *testing.T) {
	setType := "type "
	setNull := "set null"
	d := mustDialect(t, DB2, Overrides{ColumnSetType: &setType, ColumnSetNull: &setNull})

	w := NewWriteContext()
	require.NoError(t, d.AlterColumn(w, migration.AlterColumn{Table: "users", Column: "a", Type: "integer", CurrentType: "smallint"}))
	assert.Equal(t, []string{
		"alter table users alter column a type integer",
		"call sysproc.admin_cmd('reorg table users')",
	}, w.Statements())

	notNull := false
	w = NewWriteContext()
	require.NoError(t, d.AlterColumn(w, migration.AlterColumn{Table: "users", Column: "b", NotNull: &notNull}))
	assert.Equal(t, []string{
		"alter table users alter column b set null",
		"call sysproc.admin_cmd('reorg table users')",
	}, w.Statements())

	w = NewWriteContext()
	require.NoError(t, d.AlterColumn(w, migration.AlterColumn{Table: "users", Column: "c", Type: "varchar(100)", CurrentType: "varchar(50)"}))
	assert.Equal(t, []string{"alter table users alter column c type varchar(100)"}, w.Statements())
}

func TestDb2PostProcessAppendsSingleReorg(t *testing.T) {
	d := mustDialect(t, DB2, Overrides{})
	at := NewAlterTable("users", "alter table users", d.postProcess())
	at.Add(AlterCmd{Operation: "drop column", Column: "a"})
	at.Add(AlterCmd{Operation: "drop column", Column: "b"})

	assert.Equal(t, []string{
		"alter table users drop column a",
		"alter table users drop column b",
		"call sysproc.admin_cmd('reorg table users')",
	}, at.statements())

	unchanged := NewAlterTable("users", "alter table users", d.postProcess())
	unchanged.Add(AlterCmd{Operation: "add column", Column: "c", Alternation: "int"})
	assert.Equal(t, []string{"alter table users add column c int"}, unchanged.statements())
}

func TestDb2GuardEscapesQuotes(t *testing.T) {
	d, err := New(DB2, Overrides{})
	require.NoError(t, err)

	stmt := d.guarded(objectConstraint, "app.users", "ck_status", "alter table app.users drop constraint ck_status -- 'x'")
	assert.Contains(t, stmt, "constname = 'CK_STATUS'")
	assert.Contains(t, stmt, "tabname = 'USERS'")
	assert.Contains(t, stmt, "prepare stmt from 'alter table app.users drop constraint ck_status -- ''x''';")
}
