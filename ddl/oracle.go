package ddl

import (
	"fmt"

	"github.com/sqldef/ddlgen/migration"
	"github.com/sqldef/ddlgen/util"
)

var oracleSpec = platformSpec{
	lexicon: func() Lexicon {
		l := baseLexicon
		l.DropTableCascade = " cascade constraints purge"
		l.AddColumn = "add"
		l.AlterColumn = "modify"
		l.ColumnSetType = ""
		l.ColumnSetNotNull = "not null"
		l.ColumnSetNull = "null"
		l.ColumnSetDefault = "default"
		l.ColumnDropDefault = "default null"
		l.TrueLiteral = "1"
		l.FalseLiteral = "0"
		return l
	}(),
	naming:            Naming{MaxLength: 30, Case: CaseUpper},
	history:           HistoryMirror,
	guard:             &catalogGuard{lookup: oracleCatalogLookup, render: oracleGuard},
	defaultTablespace: migration.Tablespace{Data: "USERS", Index: "USERS", Lob: "USERS"},
	ops: operations{
		foreignKeyActions: oracleForeignKeyActions,
		moveTablespace: func(d *Dialect, table string, ts migration.Tablespace) (string, error) {
			return fmt.Sprintf("alter table %s move tablespace %s", table, ts.Data), nil
		},
		addTablespace: func(d *Dialect, b *Buffer, ts migration.Tablespace) error {
			b.AppendWithSpace("tablespace " + ts.Data)
			return nil
		},
	},
}

func oracleCatalogLookup(kind objectKind, table, name string) catalogLookup {
	switch kind {
	case objectIndex:
		return catalogLookup{view: "user_indexes", column: "index_name", where: []string{"index_name = " + util.StringConstant(name)}}
	case objectSequence:
		return catalogLookup{view: "user_sequences", column: "sequence_name", where: []string{"sequence_name = " + util.StringConstant(name)}}
	case objectTable:
		return catalogLookup{view: "user_tables", column: "table_name", where: []string{"table_name = " + util.StringConstant(table)}}
	default:
		return catalogLookup{
			view:   "user_constraints",
			column: "constraint_name",
			where:  []string{"constraint_name = " + util.StringConstant(name), "table_name = " + util.StringConstant(table)},
		}
	}
}

func oracleGuard(l catalogLookup, ddl string) string {
	return fmt.Sprintf("delimiter $$\ndeclare\n  cnt integer;\nbegin\n  select count(*) into cnt from %s where %s;\n  if cnt > 0 then\n    execute immediate '%s';\n  end if;\nend;\n$$",
		l.view, l.condition(), ddl)
}

// oracleForeignKeyActions omits restrict, the Oracle default, and has no on update clause.
func oracleForeignKeyActions(d *Dialect, fk migration.ForeignKey) string {
	switch mode := foreignKeyMode(fk.OnDelete); mode {
	case migration.ModeRestrict, migration.ModeNoAction:
		return ""
	default:
		return fmt.Sprintf(" on delete %s", mode)
	}
}
