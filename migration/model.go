// Package migration describes platform-neutral schema changes, the input of DDL generation.
package migration

// DropDefault is the default value meaning "remove the column default".
const DropDefault = "$DROP"

type ChangeKind string

const (
	KindCreateTable          ChangeKind = "create_table"
	KindDropTable            ChangeKind = "drop_table"
	KindAddColumn            ChangeKind = "add_column"
	KindDropColumn           ChangeKind = "drop_column"
	KindAlterColumn          ChangeKind = "alter_column"
	KindRenameColumn         ChangeKind = "rename_column"
	KindAddUniqueConstraint  ChangeKind = "add_unique"
	KindDropUniqueConstraint ChangeKind = "drop_unique"
	KindDropConstraint       ChangeKind = "drop_constraint"
	KindAddCheckConstraint   ChangeKind = "add_check"
	KindAddForeignKey        ChangeKind = "add_foreign_key"
	KindDropForeignKey       ChangeKind = "drop_foreign_key"
	KindCreateIndex          ChangeKind = "create_index"
	KindDropIndex            ChangeKind = "drop_index"
	KindDropSequence         ChangeKind = "drop_sequence"
	KindMoveTablespace       ChangeKind = "move_tablespace"
)

type Column struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	NotNull        bool   `yaml:"not_null"`
	Default        string `yaml:"default"`
	Check          string `yaml:"check"`
	CheckName      string `yaml:"check_name"`
	Identity       bool   `yaml:"identity"`
	PrimaryKey     bool   `yaml:"primary_key"`
	HistoryExclude bool   `yaml:"history_exclude"`
}

// AlterColumn describes the new state of an existing column. Nil fields are left unchanged.
// The Current* fields describe the column before the change; platforms whose syntax
// restates the whole column definition need them.
type AlterColumn struct {
	Table          string  `yaml:"table"`
	Column         string  `yaml:"column"`
	Type           string  `yaml:"type"`
	CurrentType    string  `yaml:"current_type"`
	NotNull        *bool   `yaml:"not_null"`
	CurrentNotNull bool    `yaml:"current_not_null"`
	Default        *string `yaml:"default"`
	CurrentDefault string  `yaml:"current_default"`
	Check          string  `yaml:"check"`
	CheckName      string  `yaml:"check_name"`
	DropCheck      string  `yaml:"drop_check"` // name of the check constraint being replaced
	WithHistory    bool    `yaml:"with_history"`
}

// DropsDefault reports whether the change removes the column default.
func (a AlterColumn) DropsDefault() bool {
	return a.Default != nil && *a.Default == DropDefault
}

// NewDefault returns the default value to set, if any.
func (a AlterColumn) NewDefault() (string, bool) {
	if a.Default == nil || *a.Default == DropDefault {
		return "", false
	}
	return *a.Default, true
}

type ForeignKeyMode string

const (
	ModeRestrict   ForeignKeyMode = "restrict"
	ModeCascade    ForeignKeyMode = "cascade"
	ModeSetNull    ForeignKeyMode = "set null"
	ModeSetDefault ForeignKeyMode = "set default"
	ModeNoAction   ForeignKeyMode = "no action"
)

type ForeignKey struct {
	Name       string         `yaml:"name"`
	Table      string         `yaml:"table"`
	Columns    []string       `yaml:"columns"`
	RefTable   string         `yaml:"ref_table"`
	RefColumns []string       `yaml:"ref_columns"`
	OnDelete   ForeignKeyMode `yaml:"on_delete"`
	OnUpdate   ForeignKeyMode `yaml:"on_update"`
	IndexName  string         `yaml:"index_name"`
}

type UniqueConstraint struct {
	Name     string   `yaml:"name"`
	Table    string   `yaml:"table"`
	Columns  []string `yaml:"columns"`
	Nullable []string `yaml:"nullable"` // subset of Columns that accept null
}

type Index struct {
	Name       string   `yaml:"name"`
	Table      string   `yaml:"table"`
	Columns    []string `yaml:"columns"`
	Unique     bool     `yaml:"unique"`
	Concurrent bool     `yaml:"concurrent"`
}

type Tablespace struct {
	Data  string `yaml:"data"`
	Index string `yaml:"index"`
	Lob   string `yaml:"lob"`
}

func (t *Tablespace) IsEmpty() bool {
	return t == nil || (t.Data == "" && t.Index == "" && t.Lob == "")
}

type CreateTable struct {
	Name        string      `yaml:"name"`
	Columns     []Column    `yaml:"columns"`
	PrimaryKey  string      `yaml:"primary_key"` // constraint name, derived when empty
	Tablespace  *Tablespace `yaml:"tablespace"`
	WithHistory bool        `yaml:"with_history"`
}

// Change is one record of a change set. Only the fields relevant to Kind are set.
type Change struct {
	Kind        ChangeKind        `yaml:"kind"`
	Table       string            `yaml:"table"`
	WithHistory bool              `yaml:"with_history"`
	CreateTable *CreateTable      `yaml:"create_table"`
	Column      *Column           `yaml:"column"`
	ColumnName  string            `yaml:"column_name"`
	NewName     string            `yaml:"new_name"`
	Alter       *AlterColumn      `yaml:"alter"`
	Name        string            `yaml:"name"`
	Check       string            `yaml:"check"`
	Unique      *UniqueConstraint `yaml:"unique"`
	ForeignKey  *ForeignKey       `yaml:"foreign_key"`
	Index       *Index            `yaml:"index"`
	Tablespace  *Tablespace       `yaml:"tablespace"`
}
