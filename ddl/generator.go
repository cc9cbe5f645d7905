package ddl

import (
	"fmt"
	"log/slog"

	"github.com/sqldef/ddlgen/migration"
)

type GenerateOptions struct {
	// Rollback also renders the inverse of reversible changes into the rollback sections.
	Rollback bool
}

// Generate renders an ordered change set for one platform. The returned write context
// is completed and read-only.
func Generate(d *Dialect, changes []migration.Change, opts GenerateOptions) (*WriteContext, error) {
	w := NewWriteContext()
	for i, change := range changes {
		slog.Debug("Generating DDL", "platform", d.platform, "kind", change.Kind, "table", change.Table)
		if err := d.Apply(w, change); err != nil {
			return nil, fmt.Errorf("change #%d (%s %s): %w", i+1, change.Kind, change.Table, err)
		}
	}

	if opts.Rollback {
		rollback := w.Rollback()
		for i := len(changes) - 1; i >= 0; i-- {
			if err := d.Revert(rollback, changes[i]); err != nil {
				return nil, fmt.Errorf("rollback of change #%d (%s %s): %w", i+1, changes[i].Kind, changes[i].Table, err)
			}
		}
	}

	w.Complete()
	return w, nil
}

// Apply renders one change into w. Statements on an existing table join that table's
// batch so they keep their order relative to its column changes.
func (d *Dialect) Apply(w *WriteContext, change migration.Change) error {
	if err := checkRecord(change); err != nil {
		return err
	}
	switch change.Kind {
	case migration.KindCreateTable:
		return d.CreateTable(w, *change.CreateTable)
	case migration.KindDropTable:
		return w.Apply().appendResult(d.DropTable(change.Table))
	case migration.KindAddColumn:
		if err := d.AddColumn(w, change.Table, *change.Column, false); err != nil {
			return err
		}
		if change.WithHistory && !change.Column.HistoryExclude {
			return d.history.AddColumn(w, change.Table, *change.Column)
		}
		return nil
	case migration.KindDropColumn:
		if err := d.DropColumn(w, change.Table, change.ColumnName); err != nil {
			return err
		}
		if change.WithHistory {
			return d.history.DropColumn(w, change.Table, change.ColumnName)
		}
		return nil
	case migration.KindAlterColumn:
		if err := d.AlterColumn(w, *change.Alter); err != nil {
			return err
		}
		if change.Alter.WithHistory {
			return d.history.AlterColumn(w, *change.Alter)
		}
		return nil
	case migration.KindRenameColumn:
		return d.RenameColumn(w, change.Table, change.ColumnName, change.NewName)
	case migration.KindAddUniqueConstraint:
		return d.alterTable(w, change.Unique.Table).appendResult(d.AddUniqueConstraint(*change.Unique))
	case migration.KindDropUniqueConstraint:
		return d.alterTable(w, change.Table).appendResult(d.DropUniqueConstraint(change.Table, change.Name))
	case migration.KindDropConstraint:
		return d.alterTable(w, change.Table).appendResult(d.DropConstraint(change.Table, change.Name))
	case migration.KindAddCheckConstraint:
		return w.ApplyPostAlter().appendResult(d.AddCheckConstraint(change.Table, d.checkConstraintName(change), change.Check))
	case migration.KindAddForeignKey:
		if err := w.ApplyForeignKeys().appendResult(d.AddForeignKey(*change.ForeignKey)); err != nil {
			return err
		}
		if change.ForeignKey.IndexName == "" {
			return nil
		}
		return w.ApplyForeignKeys().appendResult(d.CreateIndex(foreignKeyIndex(*change.ForeignKey)))
	case migration.KindDropForeignKey:
		return d.alterTable(w, change.Table).appendResult(d.DropForeignKey(change.Table, change.Name))
	case migration.KindCreateIndex:
		return d.alterTable(w, change.Index.Table).appendResult(d.CreateIndex(*change.Index))
	case migration.KindDropIndex:
		return d.alterTable(w, change.Table).appendResult(d.DropIndex(change.Table, change.Name))
	case migration.KindDropSequence:
		return w.Apply().appendResult(d.DropSequence(change.Name))
	case migration.KindMoveTablespace:
		return d.alterTable(w, change.Table).appendResult(d.MoveTablespace(change.Table, change.Tablespace))
	default:
		return fmt.Errorf("change kind %q: %w", change.Kind, ErrUnsupportedOperation)
	}
}

// Revert renders the inverse of a reversible change into w. Other changes are skipped.
func (d *Dialect) Revert(w *WriteContext, change migration.Change) error {
	if err := checkRecord(change); err != nil {
		return err
	}
	switch change.Kind {
	case migration.KindCreateTable:
		return w.Apply().appendResult(d.DropTable(change.CreateTable.Name))
	case migration.KindAddColumn:
		if err := d.DropColumn(w, change.Table, change.Column.Name); err != nil {
			return err
		}
		if change.WithHistory && !change.Column.HistoryExclude {
			return d.history.DropColumn(w, change.Table, change.Column.Name)
		}
		return nil
	case migration.KindAddUniqueConstraint:
		if change.Unique.Name == "" {
			slog.Warn("Cannot revert an unnamed unique constraint", "table", change.Table)
			return nil
		}
		return d.alterTable(w, change.Unique.Table).appendResult(d.DropUniqueConstraint(change.Unique.Table, change.Unique.Name))
	case migration.KindAddCheckConstraint:
		return d.alterTable(w, change.Table).appendResult(d.DropConstraint(change.Table, d.checkConstraintName(change)))
	case migration.KindAddForeignKey:
		fk := *change.ForeignKey
		name := fk.Name
		if name == "" {
			name = d.naming.ConstraintName(fk.Table, fk.Columns[0], "fkey")
		}
		at := d.alterTable(w, fk.Table)
		if fk.IndexName != "" {
			if err := at.appendResult(d.DropIndex(fk.Table, fk.IndexName)); err != nil {
				return err
			}
		}
		return at.appendResult(d.DropForeignKey(fk.Table, name))
	case migration.KindCreateIndex:
		return d.alterTable(w, change.Index.Table).appendResult(d.DropIndex(change.Index.Table, d.indexName(*change.Index)))
	}
	return nil
}

// checkRecord rejects changes whose nested record is missing. Changes decoded by
// migration.Parse always pass.
func checkRecord(change migration.Change) error {
	var record string
	switch change.Kind {
	case migration.KindCreateTable:
		if change.CreateTable == nil {
			record = "create_table"
		}
	case migration.KindAddColumn:
		if change.Column == nil {
			record = "column"
		}
	case migration.KindAlterColumn:
		if change.Alter == nil {
			record = "alter"
		}
	case migration.KindAddUniqueConstraint:
		if change.Unique == nil {
			record = "unique"
		}
	case migration.KindAddForeignKey:
		if change.ForeignKey == nil || len(change.ForeignKey.Columns) == 0 {
			record = "foreign_key.columns"
		}
	case migration.KindCreateIndex:
		if change.Index == nil || len(change.Index.Columns) == 0 {
			record = "index.columns"
		}
	}
	if record != "" {
		return invalid("%s change on %q has no %s", change.Kind, change.Table, record)
	}
	return nil
}

func foreignKeyIndex(fk migration.ForeignKey) migration.Index {
	return migration.Index{Name: fk.IndexName, Table: fk.Table, Columns: fk.Columns}
}

func (d *Dialect) checkConstraintName(change migration.Change) string {
	switch {
	case change.Name != "":
		return d.naming.Truncate(change.Name)
	case change.ColumnName != "":
		return d.naming.ConstraintName(change.Table, change.ColumnName, "check")
	default:
		return d.naming.Truncate(NormaliseTable(change.Table) + "_check")
	}
}
