package migration

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

var ErrInvalidChange = errors.New("invalid change")

type ChangeSet struct {
	Changes []Change `yaml:"changes"`
}

// Parse decodes a YAML change set. Unknown fields are rejected, and nested records
// inherit the table of their change when they do not name one.
func Parse(buf []byte) ([]Change, error) {
	var set ChangeSet
	dec := yaml.NewDecoder(bytes.NewReader(buf), yaml.DisallowUnknownField())
	if err := dec.Decode(&set); err != nil {
		return nil, err
	}

	if err := Normalize(set.Changes); err != nil {
		return nil, err
	}
	return set.Changes, nil
}

// Normalize validates changes in place and propagates table names into nested records.
func Normalize(changes []Change) error {
	for i := range changes {
		if err := changes[i].normalize(); err != nil {
			return fmt.Errorf("change #%d (%s): %w", i+1, changes[i].Kind, err)
		}
	}
	return nil
}

func (c *Change) normalize() error {
	switch c.Kind {
	case KindCreateTable:
		if c.CreateTable == nil {
			return missing("create_table")
		}
		if c.CreateTable.Name == "" {
			c.CreateTable.Name = c.Table
		}
		c.Table = c.CreateTable.Name
		if len(c.CreateTable.Columns) == 0 {
			return missing("create_table.columns")
		}
	case KindAddColumn:
		if c.Column == nil || c.Column.Name == "" || c.Column.Type == "" {
			return missing("column.name and column.type")
		}
	case KindDropColumn:
		if c.ColumnName == "" {
			return missing("column_name")
		}
	case KindRenameColumn:
		if c.ColumnName == "" || c.NewName == "" {
			return missing("column_name and new_name")
		}
	case KindAlterColumn:
		if c.Alter == nil || c.Alter.Column == "" {
			return missing("alter.column")
		}
		if c.Alter.Table == "" {
			c.Alter.Table = c.Table
		}
		c.Table = c.Alter.Table
		c.Alter.WithHistory = c.Alter.WithHistory || c.WithHistory
	case KindAddUniqueConstraint:
		if c.Unique == nil || len(c.Unique.Columns) == 0 {
			return missing("unique.columns")
		}
		if c.Unique.Table == "" {
			c.Unique.Table = c.Table
		}
		c.Table = c.Unique.Table
	case KindAddCheckConstraint:
		if c.Check == "" {
			return missing("check")
		}
	case KindAddForeignKey:
		if c.ForeignKey == nil || len(c.ForeignKey.Columns) == 0 || c.ForeignKey.RefTable == "" {
			return missing("foreign_key.columns and foreign_key.ref_table")
		}
		if c.ForeignKey.Table == "" {
			c.ForeignKey.Table = c.Table
		}
		c.Table = c.ForeignKey.Table
	case KindCreateIndex:
		if c.Index == nil || len(c.Index.Columns) == 0 {
			return missing("index.columns")
		}
		if c.Index.Table == "" {
			c.Index.Table = c.Table
		}
		c.Table = c.Index.Table
	case KindDropUniqueConstraint, KindDropConstraint, KindDropForeignKey, KindDropIndex, KindDropSequence:
		if c.Name == "" {
			return missing("name")
		}
	case KindDropTable, KindMoveTablespace:
	case "":
		return missing("kind")
	default:
		return fmt.Errorf("unknown kind %q: %w", c.Kind, ErrInvalidChange)
	}

	if c.Table == "" && c.Kind != KindDropSequence {
		return missing("table")
	}
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%s is required: %w", field, ErrInvalidChange)
}
