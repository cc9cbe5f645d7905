package ddl

import "fmt"

var h2Spec = platformSpec{
	lexicon: baseLexicon,
	naming:  Naming{MaxLength: 64, Case: CaseUpper},
	history: HistoryMirror,
	ops: operations{
		renameColumn: func(d *Dialect, w *WriteContext, table, from, to string) error {
			d.alterTable(w, table).AddRaw(fmt.Sprintf("%s alter column %s rename to %s", d.alterTableHeader(table), from, to))
			return nil
		},
	},
}
