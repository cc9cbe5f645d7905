package ddl

// Lexicon holds the keywords and clauses a platform uses when rendering DDL.
type Lexicon struct {
	DropTable          string // "drop table if exists "
	DropTableCascade   string // " cascade"
	DropSequence       string
	DropConstraint     string
	DropIndex          string
	AlterTableIfExists string
	IdentitySuffix     string

	AddColumn   string
	AlterColumn string
	DropColumn  string

	ColumnSetType     string // prefix of the new type, e.g. "type " or "set data type "
	ColumnSetNull     string
	ColumnSetNotNull  string
	ColumnSetDefault  string
	ColumnDropDefault string

	CreateIndexConcurrently string

	// InlineUniqueWhenNullable is set when a unique constraint over nullable columns
	// already ignores nulls on this platform.
	InlineUniqueWhenNullable bool

	TrueLiteral  string
	FalseLiteral string
}

var baseLexicon = Lexicon{
	DropTable:                "drop table if exists ",
	DropSequence:             "drop sequence if exists ",
	DropConstraint:           "drop constraint if exists ",
	DropIndex:                "drop index if exists ",
	IdentitySuffix:           " generated by default as identity",
	AddColumn:                "add column",
	AlterColumn:              "alter column",
	DropColumn:               "drop column",
	ColumnSetType:            "set data type ",
	ColumnSetNull:            "drop not null",
	ColumnSetNotNull:         "set not null",
	ColumnSetDefault:         "set default",
	ColumnDropDefault:        "drop default",
	InlineUniqueWhenNullable: true,
	TrueLiteral:              "true",
	FalseLiteral:             "false",
}

type HistoryStrategy string

const (
	HistoryMirror HistoryStrategy = "mirror"
	HistoryNative HistoryStrategy = "native"
	HistoryNone   HistoryStrategy = "none"
)

// Overrides replaces individual platform settings. Nil fields keep the platform default.
type Overrides struct {
	DropTableIfExists        *string          `yaml:"drop_table_if_exists"`
	DropSequenceIfExists     *string          `yaml:"drop_sequence_if_exists"`
	DropConstraintIfExists   *string          `yaml:"drop_constraint_if_exists"`
	DropIndexIfExists        *string          `yaml:"drop_index_if_exists"`
	IdentitySuffix           *string          `yaml:"identity_suffix"`
	ColumnSetNull            *string          `yaml:"column_set_null"`
	ColumnSetType            *string          `yaml:"column_set_type"`
	InlineUniqueWhenNullable *bool            `yaml:"inline_unique_when_nullable"`
	MaxConstraintLength      *int             `yaml:"max_constraint_length"`
	History                  *HistoryStrategy `yaml:"history"`
	HistorySuffix            *string          `yaml:"history_suffix"`
}

func (l Lexicon) withOverrides(o Overrides) Lexicon {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&l.DropTable, o.DropTableIfExists)
	set(&l.DropSequence, o.DropSequenceIfExists)
	set(&l.DropConstraint, o.DropConstraintIfExists)
	set(&l.DropIndex, o.DropIndexIfExists)
	set(&l.IdentitySuffix, o.IdentitySuffix)
	set(&l.ColumnSetNull, o.ColumnSetNull)
	set(&l.ColumnSetType, o.ColumnSetType)
	if o.InlineUniqueWhenNullable != nil {
		l.InlineUniqueWhenNullable = *o.InlineUniqueWhenNullable
	}
	return l
}

// Validate checks the override values that are not free-form SQL text.
func (o Overrides) Validate() error {
	if o.MaxConstraintLength != nil && *o.MaxConstraintLength <= hashSuffixLength {
		return invalid("max_constraint_length must be greater than %d, got %d", hashSuffixLength, *o.MaxConstraintLength)
	}
	if o.History != nil {
		switch *o.History {
		case HistoryMirror, HistoryNative, HistoryNone:
		default:
			return invalid("unknown history strategy %q", *o.History)
		}
	}
	return nil
}
