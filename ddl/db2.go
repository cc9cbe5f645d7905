package ddl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sqldef/ddlgen/migration"
	"github.com/sqldef/ddlgen/util"
)

const db2MoveTable = "CALL SYSPROC.ADMIN_MOVE_TABLE(CURRENT_SCHEMA,'%s','%s','%s','%s','','','','','','MOVE')"

var db2TypeFlags = []string{"compact", "logged"}

var db2Spec = platformSpec{
	lexicon: func() Lexicon {
		l := baseLexicon
		l.DropTable = "drop table "
		l.DropSequence = "drop sequence "
		l.DropConstraint = "drop constraint "
		l.DropIndex = "drop index "
		l.ColumnSetNull = "drop not null"
		l.ColumnSetType = "set data type "
		l.InlineUniqueWhenNullable = false
		return l
	}(),
	naming:    Naming{MaxLength: 128, Case: CaseUpper},
	history:   HistoryMirror,
	guard:     &catalogGuard{lookup: db2CatalogLookup, render: db2Guard},
	typeFlags: db2TypeFlags,
	defaultTablespace: migration.Tablespace{
		Data:  "USERSPACE1",
		Index: "USERSPACE1",
		Lob:   "USERSPACE1",
	},
	ops: operations{
		alterColumnType: db2AlterColumnType,
		addUnique:       db2AddUniqueConstraint,
		dropUnique:      db2DropUniqueConstraint,
		moveTablespace:  db2MoveTablespace,
		addTablespace:   db2AddTablespace,
		postProcess:     db2PostProcess,
	},
}

func db2CatalogLookup(kind objectKind, table, name string) catalogLookup {
	switch kind {
	case objectIndex:
		return catalogLookup{
			view:   "syscat.indexes",
			column: "indname",
			where:  []string{"indschema = current_schema", "indname = " + util.StringConstant(name)},
		}
	case objectSequence:
		return catalogLookup{
			view:   "syscat.sequences",
			column: "seqname",
			where:  []string{"seqschema = current_schema", "seqname = " + util.StringConstant(name)},
		}
	case objectTable:
		return catalogLookup{
			view:   "syscat.tables",
			column: "tabname",
			where:  []string{"tabschema = current_schema", "tabname = " + util.StringConstant(table)},
		}
	default:
		return catalogLookup{
			view:   "syscat.tabconst",
			column: "constname",
			where: []string{
				"tabschema = current_schema",
				"constname = " + util.StringConstant(name),
				"tabname = " + util.StringConstant(table),
			},
		}
	}
}

func db2Guard(l catalogLookup, ddl string) string {
	return fmt.Sprintf("delimiter $$\nbegin\nif exists (select %s from %s where %s) then\n  prepare stmt from '%s';\n  execute stmt;\nend if;\nend$$",
		l.column, l.view, l.condition(), ddl)
}

// db2AddUniqueConstraint uses a unique index excluding null keys when a column is nullable,
// since DB2 unique constraints require not null columns.
func db2AddUniqueConstraint(d *Dialect, uq migration.UniqueConstraint) (string, error) {
	if len(uq.Nullable) == 0 {
		return d.baseAddUniqueConstraint(uq)
	}
	if uq.Name == "" {
		return "", invalid("unique constraint on %s%s over nullable columns requires a name", uq.Table, columnList(uq.Columns))
	}
	return fmt.Sprintf("create unique index %s on %s%s exclude null keys", d.naming.Truncate(uq.Name), uq.Table, columnList(uq.Columns)), nil
}

// db2DropUniqueConstraint drops either representation of a unique constraint.
func db2DropUniqueConstraint(d *Dialect, table, name string) (string, error) {
	name = d.naming.Truncate(name)
	dropConstraint := d.guarded(objectConstraint, table, name, fmt.Sprintf("alter table %s drop constraint %s", table, name))
	dropIndex := d.guarded(objectIndex, table, name, "drop index "+name)
	return dropConstraint + "\n" + dropIndex, nil
}

func db2MoveTablespace(d *Dialect, table string, ts migration.Tablespace) (string, error) {
	return fmt.Sprintf(db2MoveTable, strings.ToUpper(table), ts.Data, ts.Index, ts.Lob), nil
}

func db2AddTablespace(d *Dialect, b *Buffer, ts migration.Tablespace) error {
	index, lob := ts.Index, ts.Lob
	if index == "" {
		index = ts.Data
	}
	if lob == "" {
		lob = ts.Data
	}
	b.AppendWithSpace(fmt.Sprintf("in %s index in %s long in %s", ts.Data, index, lob))
	return nil
}

// db2AlterColumnType sets the data type and inline length. Storage options such as
// compact or logged cannot be altered and are reported in a comment instead.
func db2AlterColumnType(d *Dialect, at *AlterTable, alter migration.AlterColumn) error {
	spec := ParseTypeSpec(d.ConvertType(alter.Type), db2TypeFlags...)
	at.Add(d.alterCmd(alter, d.lexicon.ColumnSetType+spec.Type()))
	if spec.InlineLength > 0 {
		at.Add(d.alterCmd(alter, fmt.Sprintf("set inline length %d", spec.InlineLength)))
	}
	if spec.HasOptions() {
		slog.Warn("Ignoring type options that cannot be altered", "table", alter.Table, "column", alter.Column, "options", spec.Options())
		at.AddRaw(fmt.Sprintf("-- ignored options for %s.%s: %s", alter.Table, alter.Column, spec.Options()))
	}
	return nil
}

// db2PostProcess appends a single table reorganization when any command leaves the
// table in reorg-pending state.
func db2PostProcess(d *Dialect, at *AlterTable) []AlterCmd {
	cmds := at.Commands()
	reorg := false
	for _, cmd := range cmds {
		reorg = reorg || db2RequiresReorg(d.lexicon, cmd)
	}
	if reorg {
		cmds = append(cmds, AlterCmd{Raw: fmt.Sprintf("call sysproc.admin_cmd('reorg table %s')", at.Table())})
	}
	return cmds
}

// db2RequiresReorg matches commands against the keywords of l, which may carry overrides.
func db2RequiresReorg(l Lexicon, cmd AlterCmd) bool {
	if cmd.IsRaw() {
		return false
	}
	switch cmd.Operation {
	case l.DropColumn:
		return true
	case l.AlterColumn:
		switch {
		case cmd.Alternation == l.ColumnSetNotNull, cmd.Alternation == l.ColumnSetNull:
			return true
		case l.ColumnSetType != "" && strings.HasPrefix(cmd.Alternation, l.ColumnSetType):
			return !db2LengthIncrease(cmd.PreviousType, strings.TrimPrefix(cmd.Alternation, l.ColumnSetType))
		}
	}
	return false
}

// db2LengthIncrease reports a pure length increase of a varchar or vargraphic column.
// Anything else, including decreases and unknown previous types, requires a reorg.
func db2LengthIncrease(previous, next string) bool {
	if previous == "" {
		return false
	}
	prev := ParseTypeSpec(previous, db2TypeFlags...)
	curr := ParseTypeSpec(next, db2TypeFlags...)
	if !strings.EqualFold(prev.Base, curr.Base) {
		return false
	}
	switch strings.ToLower(curr.Base) {
	case "varchar", "vargraphic":
	default:
		return false
	}
	prevLength, ok := prev.LengthValue()
	if !ok {
		return false
	}
	currLength, ok := curr.LengthValue()
	return ok && currLength > prevLength
}
