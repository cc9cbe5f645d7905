package ddl

import (
	"fmt"
	"strings"

	"github.com/sqldef/ddlgen/util"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Case int

const (
	CasePreserve Case = iota
	CaseUpper
	CaseLower
)

// hashSuffixLength is the length of "_" followed by 8 hex digits.
const hashSuffixLength = 9

// Naming maps logical identifiers to the physical names of one platform.
type Naming struct {
	MaxLength int
	Case      Case
}

// Truncate shortens name to MaxLength, replacing the tail with a hash of the full name
// so that distinct long names stay distinct and the same name always maps to the same result.
func (n Naming) Truncate(name string) string {
	if n.MaxLength <= 0 || len(name) <= n.MaxLength {
		return name
	}
	if n.MaxLength <= hashSuffixLength {
		return name[:n.MaxLength]
	}
	return fmt.Sprintf("%s_%08x", name[:n.MaxLength-hashSuffixLength], uint32(xxh3.HashString(name)))
}

func (n Naming) Fold(name string) string {
	switch n.Case {
	case CaseUpper:
		return cases.Upper(language.Und).String(name)
	case CaseLower:
		return cases.Lower(language.Und).String(name)
	default:
		return name
	}
}

// Lookup returns the name as stored in the platform catalog.
func (n Naming) Lookup(name string) string {
	return n.Fold(n.Truncate(NormaliseTable(name)))
}

// ConstraintName derives "<table>_<column>_<suffix>" for constraints and indexes without a name.
func (n Naming) ConstraintName(table, column, suffix string) string {
	return n.Truncate(util.BuildConstraintName(NormaliseTable(table), column, suffix, n.MaxLength))
}

// NormaliseTable strips schema qualification and identifier quotes.
func NormaliseTable(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '`', '[', ']':
			return -1
		}
		return r
	}, name)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
