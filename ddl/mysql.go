package ddl

import (
	"fmt"

	"github.com/sqldef/ddlgen/migration"
)

var mysqlLexicon = func() Lexicon {
	l := baseLexicon
	l.DropConstraint = "drop constraint "
	l.IdentitySuffix = " auto_increment"
	l.AlterColumn = "modify"
	return l
}()

var mysqlSpec = platformSpec{
	lexicon:           mysqlLexicon,
	naming:            Naming{MaxLength: 64, Case: CasePreserve},
	history:           HistoryMirror,
	defaultTablespace: migration.Tablespace{Data: "innodb_file_per_table"},
	ops:               mysqlOperations,
}

var mysqlOperations = operations{
	alterColumn: mysqlAlterColumn,
	dropUnique: func(d *Dialect, table, name string) (string, error) {
		return fmt.Sprintf("%s drop index %s", d.alterTableHeader(table), d.naming.Truncate(name)), nil
	},
	dropForeignKey: func(d *Dialect, table, name string) (string, error) {
		return fmt.Sprintf("%s drop foreign key %s", d.alterTableHeader(table), d.naming.Truncate(name)), nil
	},
	dropIndex: func(d *Dialect, table, name string) (string, error) {
		return fmt.Sprintf("drop index %s on %s", d.naming.Truncate(name), table), nil
	},
	dropSequence: func(d *Dialect, name string) (string, error) {
		return "", unsupported(d.platform, "sequences")
	},
	moveTablespace: func(d *Dialect, table string, ts migration.Tablespace) (string, error) {
		return fmt.Sprintf("%s tablespace %s", d.alterTableHeader(table), ts.Data), nil
	},
	addTablespace: func(d *Dialect, b *Buffer, ts migration.Tablespace) error {
		b.AppendWithSpace("tablespace " + ts.Data)
		return nil
	},
}

// mysqlAlterColumn restates the full column definition in a single modify command.
func mysqlAlterColumn(d *Dialect, w *WriteContext, alter migration.AlterColumn) error {
	at := d.alterTable(w, alter.Table)
	if err := d.dropReplacedCheck(at, alter); err != nil {
		return err
	}

	if alter.Type != "" || alter.NotNull != nil || alter.Default != nil {
		def, err := d.restatedColumn(alter)
		if err != nil {
			return err
		}
		if alter.NotNull != nil && *alter.NotNull {
			d.fillNulls(at, alter)
		}
		at.Add(d.alterCmd(alter, def))
	}
	return d.addPostAlterCheck(w, alter.Table, alter.Column, alter.CheckName, alter.Check)
}

// restatedColumn renders "type[ not null][ default x]" for the state after the change.
func (d *Dialect) restatedColumn(alter migration.AlterColumn) (string, error) {
	typ := alter.Type
	if typ == "" {
		typ = alter.CurrentType
	}
	if typ == "" {
		return "", invalid("%s restates the column definition of %s.%s and needs its current type", d.platform, alter.Table, alter.Column)
	}

	def := d.ConvertType(typ)
	if notNullAfter(alter) {
		def += " not null"
	}
	if value, ok := defaultAfter(alter); ok {
		def += " default " + d.ConvertDefault(value)
	}
	return def, nil
}

func notNullAfter(alter migration.AlterColumn) bool {
	if alter.NotNull != nil {
		return *alter.NotNull
	}
	return alter.CurrentNotNull
}

func defaultAfter(alter migration.AlterColumn) (string, bool) {
	if alter.DropsDefault() {
		return "", false
	}
	if value, ok := alter.NewDefault(); ok {
		return value, true
	}
	return alter.CurrentDefault, alter.CurrentDefault != ""
}
