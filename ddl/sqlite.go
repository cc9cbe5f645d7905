package ddl

import (
	"fmt"

	"github.com/sqldef/ddlgen/migration"
)

var sqliteSpec = platformSpec{
	lexicon: func() Lexicon {
		l := baseLexicon
		l.IdentitySuffix = ""
		l.TrueLiteral = "1"
		l.FalseLiteral = "0"
		return l
	}(),
	naming:  Naming{MaxLength: 64, Case: CasePreserve},
	history: HistoryNone,
	ops: operations{
		addColumn: sqliteAddColumn,
		alterColumn: func(d *Dialect, w *WriteContext, alter migration.AlterColumn) error {
			return unsupported(d.platform, "altering columns")
		},
		addUnique: func(d *Dialect, uq migration.UniqueConstraint) (string, error) {
			return d.CreateIndex(migration.Index{Name: uq.Name, Table: uq.Table, Columns: uq.Columns, Unique: true})
		},
		dropUnique: func(d *Dialect, table, name string) (string, error) {
			return d.DropIndex(table, name)
		},
		dropConstraint: func(d *Dialect, table, name string) (string, error) {
			return "", unsupported(d.platform, "dropping constraints")
		},
		addCheck: func(d *Dialect, table, name, expression string) (string, error) {
			return "", unsupported(d.platform, "adding constraints to existing tables")
		},
		addForeignKey: func(d *Dialect, fk migration.ForeignKey) (string, error) {
			return "", unsupported(d.platform, "adding foreign keys to existing tables")
		},
		dropForeignKey: func(d *Dialect, table, name string) (string, error) {
			return "", unsupported(d.platform, "dropping foreign keys")
		},
		dropSequence: func(d *Dialect, name string) (string, error) {
			return "", unsupported(d.platform, "sequences")
		},
	},
}

// sqliteAddColumn inlines the check constraint since SQLite cannot add one afterwards.
func sqliteAddColumn(d *Dialect, w *WriteContext, table string, column migration.Column, onHistoryTable bool) error {
	def := d.columnDefinition(column, onHistoryTable)
	if column.Check != "" && !onHistoryTable {
		def += fmt.Sprintf(" constraint %s check (%s)", d.checkName(table, column.Name, column.CheckName), column.Check)
	}
	d.alterTable(w, table).Add(AlterCmd{
		Operation:   d.lexicon.AddColumn,
		Column:      column.Name,
		Alternation: def,
	})
	return nil
}
