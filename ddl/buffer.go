package ddl

import "strings"

// Buffer accumulates DDL text for one section of a migration script.
// Text is collected until EndOfStatement, which moves it to the statement list.
type Buffer struct {
	pending    strings.Builder
	statements []string
	frozen     bool
}

func (b *Buffer) Append(text string) *Buffer {
	b.checkWritable()
	b.pending.WriteString(text)
	return b
}

// AppendWithSpace appends text separated from the pending text by one space.
func (b *Buffer) AppendWithSpace(text string) *Buffer {
	b.checkWritable()
	if text == "" {
		return b
	}
	if b.pending.Len() > 0 {
		current := b.pending.String()
		last := current[len(current)-1]
		if last != ' ' && last != '\n' && last != '(' {
			b.pending.WriteByte(' ')
		}
	}
	b.pending.WriteString(text)
	return b
}

// AppendName appends an already normalised identifier.
func (b *Buffer) AppendName(name string) *Buffer {
	return b.AppendWithSpace(name)
}

// EndOfStatement closes the pending statement. Empty statements are dropped.
func (b *Buffer) EndOfStatement() *Buffer {
	b.checkWritable()
	stmt := strings.TrimSpace(b.pending.String())
	b.pending.Reset()
	if stmt != "" {
		b.statements = append(b.statements, stmt)
	}
	return b
}

func (b *Buffer) AppendStatement(stmt string) *Buffer {
	return b.Append(stmt).EndOfStatement()
}

// Statements returns the completed statements. Pending text is not included.
func (b *Buffer) Statements() []string {
	return append([]string(nil), b.statements...)
}

func (b *Buffer) IsEmpty() bool {
	return len(b.statements) == 0 && b.pending.Len() == 0
}

// Freeze closes any pending statement and makes the buffer read-only.
func (b *Buffer) Freeze() {
	if b.frozen {
		return
	}
	b.EndOfStatement()
	b.frozen = true
}

func (b *Buffer) String() string {
	return JoinStatements(b.statements)
}

func (b *Buffer) checkWritable() {
	if b.frozen {
		panic("ddl: write to a completed buffer")
	}
}

// JoinStatements renders statements as script text, each terminated by ";\n".
func JoinStatements(statements []string) string {
	if len(statements) == 0 {
		return ""
	}
	return strings.Join(statements, ";\n") + ";\n"
}

// appendResult appends the statement of a generating operation unless it failed.
func (b *Buffer) appendResult(stmt string, err error) error {
	if err != nil {
		return err
	}
	b.AppendStatement(stmt)
	return nil
}
