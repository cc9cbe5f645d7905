package ddl

import (
	"fmt"

	"github.com/sqldef/ddlgen/migration"
)

var postgresSpec = platformSpec{
	lexicon: func() Lexicon {
		l := baseLexicon
		l.DropTableCascade = " cascade"
		l.AlterTableIfExists = "if exists "
		l.ColumnSetType = "type "
		l.CreateIndexConcurrently = "concurrently "
		return l
	}(),
	naming:            Naming{MaxLength: 63, Case: CaseLower},
	history:           HistoryMirror,
	defaultTablespace: migration.Tablespace{Data: "pg_default", Index: "pg_default", Lob: "pg_default"},
	ops: operations{
		moveTablespace: func(d *Dialect, table string, ts migration.Tablespace) (string, error) {
			return fmt.Sprintf("%s set tablespace %s", d.alterTableHeader(table), ts.Data), nil
		},
		addTablespace: func(d *Dialect, b *Buffer, ts migration.Tablespace) error {
			b.AppendWithSpace("tablespace " + ts.Data)
			return nil
		},
	},
}
