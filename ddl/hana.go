package ddl

import (
	"fmt"
	"strings"

	"github.com/sqldef/ddlgen/migration"
	"github.com/sqldef/ddlgen/util"
)

var hanaSpec = platformSpec{
	lexicon: func() Lexicon {
		l := baseLexicon
		l.DropTableCascade = " cascade"
		l.AddColumn = "add"
		l.AlterColumn = "alter"
		l.DropColumn = "drop"
		return l
	}(),
	naming:  Naming{MaxLength: 127, Case: CaseUpper},
	history: HistoryMirror,
	guard:   &catalogGuard{lookup: hanaCatalogLookup, render: hanaGuard},
	ops: operations{
		alterColumn: hanaAlterColumn,
		renameColumn: func(d *Dialect, w *WriteContext, table, from, to string) error {
			d.alterTable(w, table).AddRaw(fmt.Sprintf("rename column %s.%s to %s", table, from, to))
			return nil
		},
		postProcess: hanaPostProcess,
	},
}

func hanaCatalogLookup(kind objectKind, table, name string) catalogLookup {
	schema := "schema_name = current_schema"
	switch kind {
	case objectIndex:
		return catalogLookup{view: "sys.indexes", column: "index_name", where: []string{schema, "index_name = " + util.StringConstant(name)}}
	case objectSequence:
		return catalogLookup{view: "sys.sequences", column: "sequence_name", where: []string{schema, "sequence_name = " + util.StringConstant(name)}}
	case objectTable:
		return catalogLookup{view: "sys.tables", column: "table_name", where: []string{schema, "table_name = " + util.StringConstant(table)}}
	default:
		return catalogLookup{
			view:   "sys.constraints",
			column: "constraint_name",
			where:  []string{schema, "constraint_name = " + util.StringConstant(name), "table_name = " + util.StringConstant(table)},
		}
	}
}

func hanaGuard(l catalogLookup, ddl string) string {
	return fmt.Sprintf("delimiter $$\ndo\nbegin\ndeclare cnt integer;\nselect count(*) into cnt from %s where %s;\nif :cnt > 0 then\n  exec '%s';\nend if;\nend;\n$$",
		l.view, l.condition(), ddl)
}

// hanaAlterColumn restates the column as "type[ default x] not null|null".
func hanaAlterColumn(d *Dialect, w *WriteContext, alter migration.AlterColumn) error {
	at := d.alterTable(w, alter.Table)
	if err := d.dropReplacedCheck(at, alter); err != nil {
		return err
	}

	if alter.Type != "" || alter.NotNull != nil || alter.Default != nil {
		typ := alter.Type
		if typ == "" {
			typ = alter.CurrentType
		}
		if typ == "" {
			return invalid("%s restates the column definition of %s.%s and needs its current type", d.platform, alter.Table, alter.Column)
		}
		def := d.ConvertType(typ)
		if value, ok := defaultAfter(alter); ok {
			def += " default " + d.ConvertDefault(value)
		}
		if notNullAfter(alter) {
			def += " not null"
		} else {
			def += " null"
		}
		if alter.NotNull != nil && *alter.NotNull {
			d.fillNulls(at, alter)
		}
		at.Add(d.alterCmd(alter, def))
	}
	return d.addPostAlterCheck(w, alter.Table, alter.Column, alter.CheckName, alter.Check)
}

// hanaPostProcess merges consecutive add, alter and drop commands into one parenthesised
// statement each. A batch ends at a different operation, a repeated column or a raw command.
func hanaPostProcess(_ *Dialect, at *AlterTable) []AlterCmd {
	var out, batch []AlterCmd
	columns := map[string]bool{}

	flush := func() {
		if len(batch) == 0 {
			return
		}
		parts := make([]string, 0, len(batch))
		for _, cmd := range batch {
			if cmd.Alternation == "" {
				parts = append(parts, cmd.Column)
			} else {
				parts = append(parts, cmd.Column+" "+cmd.Alternation)
			}
		}
		out = append(out, AlterCmd{Raw: fmt.Sprintf("%s %s (%s)", at.Header(), batch[0].Operation, strings.Join(parts, ", "))})
		batch = nil
		columns = map[string]bool{}
	}

	for _, cmd := range at.Commands() {
		if cmd.IsRaw() || !hanaBatchable(cmd.Operation) {
			flush()
			out = append(out, cmd)
			continue
		}
		column := strings.ToLower(cmd.Column)
		if len(batch) > 0 && (batch[0].Operation != cmd.Operation || columns[column]) {
			flush()
		}
		batch = append(batch, cmd)
		columns[column] = true
	}
	flush()
	return out
}

func hanaBatchable(operation string) bool {
	switch operation {
	case "add", "alter", "drop":
		return true
	}
	return false
}
