package ddl

import (
	"fmt"
)

var mariadbSpec = platformSpec{
	lexicon: func() Lexicon {
		l := mysqlLexicon
		l.DropConstraint = "drop constraint if exists "
		return l
	}(),
	naming:            mysqlSpec.naming,
	history:           HistoryMirror,
	defaultTablespace: mysqlSpec.defaultTablespace,
	ops: func() operations {
		ops := mysqlOperations
		ops.dropSequence = nil
		ops.dropForeignKey = func(d *Dialect, table, name string) (string, error) {
			return fmt.Sprintf("%s drop foreign key if exists %s", d.alterTableHeader(table), d.naming.Truncate(name)), nil
		}
		ops.dropIndex = func(d *Dialect, table, name string) (string, error) {
			return fmt.Sprintf("drop index if exists %s on %s", d.naming.Truncate(name), table), nil
		}
		return ops
	}(),
}
