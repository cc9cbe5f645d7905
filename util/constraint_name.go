package util

import "fmt"

// columnNameFloor is the length below which a column part is never truncated.
const columnNameFloor = 28

// BuildConstraintName generates "<table>_<column>_<suffix>" fitting in maxLength characters,
// truncating the way PostgreSQL names implicit constraints:
// - If column > 28 chars: reduce column to 28 first, then apply remaining overflow to table
// - If column <= 28 chars: truncate table
// Each part keeps at least one character. A name that still does not fit is returned as is,
// and callers are expected to shorten it further.
func BuildConstraintName(tableName, columnName, suffix string, maxLength int) string {
	fullName := fmt.Sprintf("%s_%s_%s", tableName, columnName, suffix)
	if maxLength <= 0 || len(fullName) <= maxLength {
		return fullName
	}

	overflow := len(fullName) - maxLength
	tableLen := len(tableName)
	columnLen := len(columnName)

	tableRemove := 0
	columnRemove := 0

	if columnLen > columnNameFloor {
		columnRemove = overflow
		if columnRemove > columnLen-columnNameFloor {
			tableRemove = columnRemove - (columnLen - columnNameFloor)
			columnRemove = columnLen - columnNameFloor
		}
	} else {
		tableRemove = overflow
	}

	// Short limits (e.g. Oracle's 30) can exhaust the table part; spill the rest onto the column.
	if tableRemove > tableLen-1 {
		columnRemove += tableRemove - (tableLen - 1)
		tableRemove = tableLen - 1
	}
	if columnRemove > columnLen-1 {
		columnRemove = columnLen - 1
	}
	if tableRemove < 0 {
		tableRemove = 0
	}
	if columnRemove < 0 {
		columnRemove = 0
	}

	truncatedTable := tableName[:tableLen-tableRemove]
	truncatedColumn := columnName[:columnLen-columnRemove]

	return fmt.Sprintf("%s_%s_%s", truncatedTable, truncatedColumn, suffix)
}
