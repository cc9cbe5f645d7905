package ddl

import (
	"strings"
	"testing"

	"github.com/sqldef/ddlgen/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDialect(t *testing.T, p Platform, overrides Overrides) *Dialect {
	t.Helper()
	d, err := New(p, overrides)
	require.NoError(t, err)
	return d
}

func TestParsePlatform(t *testing.T) {
	tests := map[string]Platform{
		"postgres":   Postgres,
		"PostgreSQL": Postgres,
		"pg":         Postgres,
		"mssql":      SQLServer,
		" sqlite3 ":  SQLite,
		"db2":        DB2,
		"hana":       HANA,
		"mariadb":    MariaDB,
	}
	for input, expected := range tests {
		p, err := ParsePlatform(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, p, input)
	}

	_, err := ParsePlatform("sybase")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewRejectsInvalidOverrides(t *testing.T) {
	_, err := New("sybase", Overrides{})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	history := HistoryStrategy("temporal")
	_, err = New(Postgres, Overrides{History: &history})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.ErrorContains(t, err, `unknown history strategy "temporal"`)
}

func TestEveryPlatformIsRegistered(t *testing.T) {
	for _, p := range Platforms() {
		d := mustDialect(t, p, Overrides{})
		assert.Equal(t, p, d.Platform())
		assert.NotNil(t, d.History(), p)
	}
}

// Every platform must be able to add and drop a named unique constraint over nullable columns,
// whichever object it uses to represent it.
func TestNullableUniqueConstraintParity(t *testing.T) {
	uq := migration.UniqueConstraint{
		Name:     "uq_users_email",
		Table:    "users",
		Columns:  []string{"email", "tenant"},
		Nullable: []string{"email"},
	}
	for _, p := range Platforms() {
		t.Run(string(p), func(t *testing.T) {
			d := mustDialect(t, p, Overrides{})

			add, err := d.AddUniqueConstraint(uq)
			require.NoError(t, err)
			assert.Contains(t, add, "uq_users_email")
			assert.Contains(t, strings.ReplaceAll(add, " ", ""), "(email,tenant)")

			drop, err := d.DropUniqueConstraint(uq.Table, uq.Name)
			require.NoError(t, err)
			assert.Contains(t, drop, "uq_users_email")
		})
	}
}

// Without nullable columns every platform keeps the plain unique constraint syntax.
func TestUniqueConstraintWithoutNullableColumnsParity(t *testing.T) {
	uq := migration.UniqueConstraint{
		Name:    "uq_users_email",
		Table:   "users",
		Columns: []string{"email", "tenant"},
	}
	for _, p := range Platforms() {
		t.Run(string(p), func(t *testing.T) {
			if p == SQLite {
				t.Skip("sqlite cannot add constraints to an existing table and always creates a unique index")
			}
			d := mustDialect(t, p, Overrides{})

			add, err := d.AddUniqueConstraint(uq)
			require.NoError(t, err)
			base, err := d.baseAddUniqueConstraint(uq)
			require.NoError(t, err)
			assert.Equal(t, base, add)
		})
	}
}

func TestDropSequenceUsesTruncatedName(t *testing.T) {
	const name = "a_very_long_sequence_name_exceeding_thirty_chars_seq"
	for _, p := range []Platform{Oracle, DB2, Postgres} {
		t.Run(string(p), func(t *testing.T) {
			overrides := Overrides{}
			if p != Oracle {
				length := 30
				overrides.MaxConstraintLength = &length
			}
			d := mustDialect(t, p, overrides)
			truncated := d.Naming().Truncate(name)
			require.NotEqual(t, name, truncated)

			stmt, err := d.DropSequence(name)
			require.NoError(t, err)
			assert.NotContains(t, stmt, name)
			assert.Contains(t, stmt, truncated)
			if d.guard != nil {
				assert.Contains(t, stmt, "'"+d.Naming().Lookup(name)+"'")
			}
		})
	}
}

func TestMoveTablespaceFillsMissingNames(t *testing.T) {
	d := mustDialect(t, DB2, Overrides{})
	tests := []struct {
		name     string
		ts       *migration.Tablespace
		expected string
	}{
		{"nil", nil, "'USERS','USERSPACE1','USERSPACE1','USERSPACE1'"},
		{"index and lob", &migration.Tablespace{Index: "TS2", Lob: "TS3"}, "'USERS','USERSPACE1','TS2','TS3'"},
		{"data only", &migration.Tablespace{Data: "TS1"}, "'USERS','TS1','USERSPACE1','USERSPACE1'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := d.MoveTablespace("users", tt.ts)
			require.NoError(t, err)
			assert.Contains(t, stmt, "(CURRENT_SCHEMA,"+tt.expected+",")
		})
	}
}

func TestConvertType(t *testing.T) {
	tests := []struct {
		platform Platform
		logical  string
		native   string
	}{
		{Postgres, "varchar(50)", "varchar(50)"},
		{Postgres, "clob", "text"},
		{Postgres, "int", "integer"},
		{Postgres, "Double Precision", "double precision"},
		{MySQL, "boolean", "tinyint(1)"},
		{MariaDB, "uuid", "varchar(40)"},
		{SQLServer, "varchar(100)", "nvarchar(100)"},
		{SQLServer, "clob", "nvarchar(max)"},
		{Oracle, "varchar(20)", "varchar2(20)"},
		{Oracle, "BIGINT", "number(19)"},
		{Oracle, "double", "number(19,4)"},
		{DB2, "clob(64K) inline length 500", "clob(64K) inline length 500"},
		{HANA, "varchar(20)", "nvarchar(20)"},
		{Generic, "", ""},
	}
	for _, tt := range tests {
		d := mustDialect(t, tt.platform, Overrides{})
		assert.Equal(t, tt.native, d.ConvertType(tt.logical), "%s %s", tt.platform, tt.logical)
	}
}

func TestConvertDefault(t *testing.T) {
	sqlserver := mustDialect(t, SQLServer, Overrides{})
	assert.Equal(t, "1", sqlserver.ConvertDefault("TRUE"))
	assert.Equal(t, "0", sqlserver.ConvertDefault("false"))

	postgres := mustDialect(t, Postgres, Overrides{})
	assert.Equal(t, "true", postgres.ConvertDefault("true"))
	assert.Equal(t, "current_timestamp", postgres.ConvertDefault("now()"))
	assert.Equal(t, "'x'", postgres.ConvertDefault("'x'"))
}

func TestApplyUnknownKind(t *testing.T) {
	d := mustDialect(t, Postgres, Overrides{})
	err := d.Apply(NewWriteContext(), migration.Change{Kind: migration.ChangeKind("rename_table"), Table: "users"})
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestHistoryStrategies(t *testing.T) {
	assert.IsType(t, mirrorHistory{}, mustDialect(t, Postgres, Overrides{}).History())
	assert.IsType(t, nativeHistory{}, mustDialect(t, SQLServer, Overrides{}).History())

	native := HistoryNative
	assert.IsType(t, nativeHistory{}, mustDialect(t, Postgres, Overrides{History: &native}).History())

	err := mustDialect(t, SQLite, Overrides{}).History().DropColumn(NewWriteContext(), "users", "a")
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	suffix := "_hist"
	w := NewWriteContext()
	d := mustDialect(t, Generic, Overrides{HistorySuffix: &suffix})
	require.NoError(t, d.History().AddColumn(w, "users", migration.Column{Name: "note", Type: "varchar(20)", NotNull: true, Default: "''"}))
	assert.Equal(t, []string{"alter table users_hist add column note varchar(20) default '' not null"}, w.Statements())
}

func TestMirrorHistoryLeavesOutChecksAndIdentity(t *testing.T) {
	d := mustDialect(t, Generic, Overrides{})
	w := NewWriteContext()
	column := migration.Column{Name: "seq", Type: "int", NotNull: true, Default: "0", Identity: true, Check: "seq >= 0"}
	require.NoError(t, d.History().AddColumn(w, "users", column))
	assert.Equal(t, []string{"alter table users_history add column seq integer default 0 not null"}, w.Statements())

	notNull := true
	w = NewWriteContext()
	require.NoError(t, d.History().AlterColumn(w, migration.AlterColumn{Table: "users", Column: "seq", NotNull: &notNull, Check: "seq > 0"}))
	assert.Equal(t, []string{"alter table users_history alter column seq set not null"}, w.Statements())

	w = NewWriteContext()
	require.NoError(t, d.History().AlterColumn(w, migration.AlterColumn{Table: "users", Column: "seq", Check: "seq > 0"}))
	assert.Empty(t, w.Statements())
}

func TestHanaPostProcess(t *testing.T) {
	at := NewAlterTable("users", "alter table users", mustDialect(t, HANA, Overrides{}).postProcess())
	at.Add(AlterCmd{Operation: "add", Column: "a", Alternation: "integer"})
	at.Add(AlterCmd{Operation: "add", Column: "b", Alternation: "integer"})
	at.Add(AlterCmd{Operation: "drop", Column: "c"})
	at.Add(AlterCmd{Operation: "alter", Column: "d", Alternation: "integer null"})
	at.Add(AlterCmd{Operation: "alter", Column: "D", Alternation: "integer not null"})
	at.AddRaw("update users set e = 0 where e is null")
	at.Add(AlterCmd{Operation: "drop", Column: "f"})

	assert.Equal(t, []string{
		"alter table users add (a integer, b integer)",
		"alter table users drop (c)",
		"alter table users alter (d integer null)",
		"alter table users alter (D integer not null)",
		"update users set e = 0 where e is null",
		"alter table users drop (f)",
	}, at.statements())
}
