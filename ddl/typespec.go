package ddl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqldef/ddlgen/util"
)

// TypeSpec is a decomposed column type such as "clob(64K) inline length 500 compact not logged".
type TypeSpec struct {
	Base         string          // "clob"
	Length       string          // "(64K)", empty when absent
	InlineLength int             // 500, zero when absent
	Flags        map[string]bool // {"compact": true, "logged": false}
	Unrecognized []string
	Tail         string // raw text following Base and Length
}

// ParseTypeSpec splits a type string. Only the given flag words are recognized as options;
// "not <flag>" records the flag as false.
func ParseTypeSpec(typ string, flags ...string) TypeSpec {
	typ = strings.TrimSpace(typ)
	spec := TypeSpec{Flags: map[string]bool{}}

	known := map[string]bool{}
	for _, f := range flags {
		known[f] = true
	}
	isKeyword := func(word string) bool {
		word = strings.ToLower(word)
		return word == "inline" || word == "not" || known[word]
	}

	var rest string
	if open := strings.IndexByte(typ, '('); open >= 0 {
		end := strings.IndexByte(typ[open:], ')')
		if end < 0 {
			spec.Base = typ
			return spec
		}
		spec.Base = strings.TrimSpace(typ[:open])
		spec.Length = typ[open : open+end+1]
		rest = typ[open+end+1:]
	} else {
		words := strings.Fields(typ)
		i := 0
		for i < len(words) && (i == 0 || !isKeyword(words[i])) {
			i++
		}
		spec.Base = strings.Join(words[:i], " ")
		rest = strings.Join(words[i:], " ")
	}
	spec.Tail = strings.TrimSpace(rest)

	words := strings.Fields(spec.Tail)
	for i := 0; i < len(words); i++ {
		word := strings.ToLower(words[i])
		switch {
		case word == "inline" && i+2 < len(words) && strings.EqualFold(words[i+1], "length"):
			n, err := strconv.Atoi(words[i+2])
			if err != nil {
				spec.Unrecognized = append(spec.Unrecognized, words[i])
				continue
			}
			spec.InlineLength = n
			i += 2
		case word == "not" && i+1 < len(words) && known[strings.ToLower(words[i+1])]:
			spec.Flags[strings.ToLower(words[i+1])] = false
			i++
		case known[word]:
			spec.Flags[word] = true
		default:
			spec.Unrecognized = append(spec.Unrecognized, words[i])
		}
	}
	return spec
}

// Type returns the base type with its length, e.g. "varchar(50)".
func (s TypeSpec) Type() string {
	return s.Base + s.Length
}

// LengthValue returns the single numeric length, if the type has one.
func (s TypeSpec) LengthValue() (int, bool) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s.Length, "("), ")")
	n, err := strconv.Atoi(strings.TrimSpace(inner))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s TypeSpec) HasOptions() bool {
	return len(s.Flags) > 0 || len(s.Unrecognized) > 0
}

// Options describes flags and unrecognized words, e.g. "compact=true, logged=false".
func (s TypeSpec) Options() string {
	var parts []string
	for name, value := range util.CanonicalMapIter(s.Flags) {
		parts = append(parts, fmt.Sprintf("%s=%t", name, value))
	}
	parts = append(parts, s.Unrecognized...)
	return strings.Join(parts, ", ")
}
