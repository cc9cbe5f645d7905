package ddl

import (
	"strings"
)

type objectKind int

const (
	objectConstraint objectKind = iota
	objectIndex
	objectSequence
	objectTable
)

// catalogLookup is the catalog query proving that an object exists.
type catalogLookup struct {
	view   string
	column string
	where  []string
}

func (l catalogLookup) condition() string {
	return strings.Join(l.where, " and ")
}

// catalogGuard wraps drop statements of platforms without native "if exists" in a block
// that checks the catalog first and runs the statement dynamically.
type catalogGuard struct {
	lookup func(kind objectKind, table, name string) catalogLookup
	render func(l catalogLookup, ddl string) string
}

// guarded renders ddl behind the platform's existence check. Catalog names are normalised,
// the statement text is embedded as a string literal.
func (d *Dialect) guarded(kind objectKind, table, name, ddl string) string {
	l := d.guard.lookup(kind, d.naming.Lookup(table), d.naming.Lookup(name))
	return d.guard.render(l, strings.ReplaceAll(ddl, "'", "''"))
}
