package ddl

import (
	"strings"
)

var dataTypeAliases = map[string]string{
	"bool":              "boolean",
	"int":               "integer",
	"int2":              "smallint",
	"int4":              "integer",
	"int8":              "bigint",
	"numeric":           "decimal",
	"character varying": "varchar",
	"float8":            "double",
	"double precision":  "double",
}

var platformTypes = map[Platform]map[string]string{
	Postgres: {
		"double":   "double precision",
		"clob":     "text",
		"blob":     "bytea",
		"datetime": "timestamp",
		"tinyint":  "smallint",
	},
	MySQL: {
		"boolean":   "tinyint(1)",
		"clob":      "longtext",
		"blob":      "longblob",
		"timestamp": "datetime(6)",
		"uuid":      "varchar(40)",
	},
	SQLServer: {
		"varchar":   "nvarchar",
		"boolean":   "bit",
		"timestamp": "datetime2",
		"clob":      "nvarchar(max)",
		"blob":      "varbinary(max)",
		"uuid":      "uniqueidentifier",
		"double":    "float(32)",
	},
	Oracle: {
		"varchar": "varchar2",
		"boolean": "number(1)",
		"integer": "number(10)",
		"bigint":  "number(19)",
		"double":  "number(19,4)",
		"uuid":    "varchar2(40)",
		"json":    "clob",
	},
	DB2: {
		"uuid": "varchar(40)",
		"json": "clob",
	},
	HANA: {
		"varchar": "nvarchar",
		"clob":    "nclob",
		"uuid":    "varchar(40)",
	},
	SQLite: {
		"boolean": "int",
		"uuid":    "varchar(40)",
	},
}

func init() {
	platformTypes[MariaDB] = platformTypes[MySQL]
}

// normalizeTypeName lowercases a type name and resolves common aliases.
func normalizeTypeName(typeName string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(typeName), " "))
	if alias, ok := dataTypeAliases[normalized]; ok {
		normalized = alias
	}
	return normalized
}

// ConvertType maps a logical type to the platform's native type, keeping the length and
// any trailing options. A native type that carries its own length replaces the logical one.
func (d *Dialect) ConvertType(logical string) string {
	if logical == "" {
		return ""
	}
	spec := ParseTypeSpec(logical, d.typeFlags...)
	base := normalizeTypeName(spec.Base)
	length := spec.Length
	if native, ok := platformTypes[d.platform][base]; ok {
		base = native
		if strings.Contains(native, "(") {
			length = ""
		}
	}

	converted := base + length
	if spec.Tail != "" {
		converted += " " + spec.Tail
	}
	return converted
}

// ConvertDefault maps portable default literals to the platform's spelling.
func (d *Dialect) ConvertDefault(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return d.lexicon.TrueLiteral
	case "false":
		return d.lexicon.FalseLiteral
	case "now", "now()", "current_timestamp":
		return "current_timestamp"
	}
	return value
}
