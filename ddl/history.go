package ddl

import (
	"github.com/sqldef/ddlgen/migration"
)

const defaultHistorySuffix = "_history"

// HistoryDdl propagates column changes of a table to its history table.
type HistoryDdl interface {
	AddColumn(w *WriteContext, table string, column migration.Column) error
	DropColumn(w *WriteContext, table, column string) error
	AlterColumn(w *WriteContext, alter migration.AlterColumn) error
}

func newHistoryDdl(d *Dialect, strategy HistoryStrategy, suffix string) HistoryDdl {
	switch strategy {
	case HistoryNative:
		return nativeHistory{}
	case HistoryNone:
		return noHistory{platform: d.platform}
	default:
		return mirrorHistory{dialect: d, suffix: suffix}
	}
}

// mirrorHistory repeats column changes on "<table><suffix>", without check constraints.
type mirrorHistory struct {
	dialect *Dialect
	suffix  string
}

func (h mirrorHistory) historyTable(table string) string {
	return table + h.suffix
}

func (h mirrorHistory) AddColumn(w *WriteContext, table string, column migration.Column) error {
	return h.dialect.AddColumn(w, h.historyTable(table), column, true)
}

func (h mirrorHistory) DropColumn(w *WriteContext, table, column string) error {
	return h.dialect.DropColumn(w, h.historyTable(table), column)
}

// AlterColumn mirrors type, default and nullability. Check constraints stay on the base table.
func (h mirrorHistory) AlterColumn(w *WriteContext, alter migration.AlterColumn) error {
	if alter.Type == "" && alter.NotNull == nil && alter.Default == nil {
		return nil
	}
	return h.dialect.AlterColumn(w, migration.AlterColumn{
		Table:          h.historyTable(alter.Table),
		Column:         alter.Column,
		Type:           alter.Type,
		CurrentType:    alter.CurrentType,
		NotNull:        alter.NotNull,
		CurrentNotNull: alter.CurrentNotNull,
		Default:        alter.Default,
		CurrentDefault: alter.CurrentDefault,
	})
}

// nativeHistory relies on the database propagating changes to its history table.
type nativeHistory struct{}

func (nativeHistory) AddColumn(*WriteContext, string, migration.Column) error { return nil }
func (nativeHistory) DropColumn(*WriteContext, string, string) error            { return nil }
func (nativeHistory) AlterColumn(*WriteContext, migration.AlterColumn) error    { return nil }

type noHistory struct {
	platform Platform
}

func (h noHistory) AddColumn(*WriteContext, string, migration.Column) error {
	return unsupported(h.platform, "history tables")
}

func (h noHistory) DropColumn(*WriteContext, string, string) error {
	return unsupported(h.platform, "history tables")
}

func (h noHistory) AlterColumn(*WriteContext, migration.AlterColumn) error {
	return unsupported(h.platform, "history tables")
}
