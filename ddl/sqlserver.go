package ddl

import (
	"fmt"
	"strings"

	"github.com/sqldef/ddlgen/migration"
)

var sqlserverSpec = platformSpec{
	lexicon: func() Lexicon {
		l := baseLexicon
		l.IdentitySuffix = " identity(1,1)"
		l.AddColumn = "add"
		l.InlineUniqueWhenNullable = false
		l.TrueLiteral = "1"
		l.FalseLiteral = "0"
		return l
	}(),
	naming:  Naming{MaxLength: 128, Case: CasePreserve},
	history: HistoryNative,
	ops: operations{
		alterColumn: sqlserverAlterColumn,
		addUnique:   sqlserverAddUniqueConstraint,
		dropUnique:  sqlserverDropUniqueConstraint,
		dropIndex:   sqlserverDropIndex,
		foreignKeyActions: func(d *Dialect, fk migration.ForeignKey) string {
			return fmt.Sprintf(" on delete %s on update %s", sqlserverForeignKeyMode(fk.OnDelete), sqlserverForeignKeyMode(fk.OnUpdate))
		},
		renameColumn: func(d *Dialect, w *WriteContext, table, from, to string) error {
			d.alterTable(w, table).AddRaw(fmt.Sprintf("EXEC sp_rename '%s.%s', '%s', 'COLUMN'", table, from, to))
			return nil
		},
		addTablespace: func(d *Dialect, b *Buffer, ts migration.Tablespace) error {
			b.AppendWithSpace("on " + ts.Data)
			return nil
		},
	},
}

func sqlserverForeignKeyMode(mode migration.ForeignKeyMode) migration.ForeignKeyMode {
	mode = foreignKeyMode(mode)
	if mode == migration.ModeRestrict {
		return migration.ModeNoAction
	}
	return mode
}

// sqlserverAddUniqueConstraint creates a unique index filtered on the nullable columns,
// because SQL Server unique constraints allow a single null.
func sqlserverAddUniqueConstraint(d *Dialect, uq migration.UniqueConstraint) (string, error) {
	if len(uq.Nullable) == 0 {
		return d.baseAddUniqueConstraint(uq)
	}
	name := d.indexName(migration.Index{Name: uq.Name, Table: uq.Table, Columns: uq.Columns, Unique: true})
	conditions := make([]string, 0, len(uq.Nullable))
	for _, column := range uq.Nullable {
		conditions = append(conditions, column+" is not null")
	}
	return fmt.Sprintf("create unique nonclustered index %s on %s%s where %s",
		name, uq.Table, columnList(uq.Columns), strings.Join(conditions, " and ")), nil
}

// sqlserverDropUniqueConstraint drops either representation of a unique constraint.
func sqlserverDropUniqueConstraint(d *Dialect, table, name string) (string, error) {
	dropConstraint, err := d.DropConstraint(table, name)
	if err != nil {
		return "", err
	}
	dropIndex, err := sqlserverDropIndex(d, table, name)
	if err != nil {
		return "", err
	}
	return dropConstraint + "\n" + dropIndex, nil
}

func sqlserverDropIndex(d *Dialect, table, name string) (string, error) {
	return fmt.Sprintf("drop index if exists %s on %s", d.naming.Truncate(name), table), nil
}

// sqlserverAlterColumn restates type and nullability together. Defaults are separate
// constraints and are dropped by looking up their generated name.
func sqlserverAlterColumn(d *Dialect, w *WriteContext, alter migration.AlterColumn) error {
	at := d.alterTable(w, alter.Table)
	if err := d.dropReplacedCheck(at, alter); err != nil {
		return err
	}

	if alter.Default != nil && (alter.DropsDefault() || alter.CurrentDefault != "") {
		at.AddRaw(sqlserverDropDefault(alter.Table, alter.Column))
	}
	if alter.Type != "" || alter.NotNull != nil {
		typ := alter.Type
		if typ == "" {
			typ = alter.CurrentType
		}
		if typ == "" {
			return invalid("%s restates the column definition of %s.%s and needs its current type", d.platform, alter.Table, alter.Column)
		}
		nullability := " null"
		if notNullAfter(alter) {
			nullability = " not null"
		}
		if alter.NotNull != nil && *alter.NotNull {
			d.fillNulls(at, alter)
		}
		at.Add(d.alterCmd(alter, d.ConvertType(typ)+nullability))
	}
	if value, ok := alter.NewDefault(); ok {
		at.AddRaw(fmt.Sprintf("%s add default %s for %s", d.alterTableHeader(alter.Table), d.ConvertDefault(value), alter.Column))
	}
	return d.addPostAlterCheck(w, alter.Table, alter.Column, alter.CheckName, alter.Check)
}

func sqlserverDropDefault(table, column string) string {
	return fmt.Sprintf("delimiter $$\nDECLARE @Tmp nvarchar(200);select @Tmp = t1.name from sys.default_constraints t1\n"+
		"  join sys.columns t2 on t1.object_id = t2.default_object_id\n"+
		"  where t1.parent_object_id = OBJECT_ID('%s') and t2.name = '%s';\n"+
		"if @Tmp is not null EXEC('alter table %s drop constraint ' + @Tmp)$$", table, column, table)
}
