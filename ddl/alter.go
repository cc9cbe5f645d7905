package ddl

import "strings"

// AlterCmd is one pending alteration of a table, rendered as
// "<header> <operation> <column> <alternation>" unless it is raw SQL.
type AlterCmd struct {
	Operation    string // platform keyword such as "add column", "alter column" or "modify"
	Column       string
	Alternation  string // e.g. "set not null", "set data type varchar(100)"
	PreviousType string // type of the column before the change, when known
	Raw          string
}

func (c AlterCmd) IsRaw() bool {
	return c.Raw != ""
}

func (c AlterCmd) render(header string) string {
	if c.IsRaw() {
		return c.Raw
	}
	parts := []string{header, c.Operation, c.Column}
	if c.Alternation != "" {
		parts = append(parts, c.Alternation)
	}
	return strings.Join(parts, " ")
}

// PostProcess rewrites the commands of one table batch before they are committed.
type PostProcess func(at *AlterTable) []AlterCmd

// AlterTable aggregates the alterations of one table within one write context.
type AlterTable struct {
	table       string
	header      string
	cmds        []AlterCmd
	postProcess PostProcess
	committed   bool
}

// NewAlterTable creates an aggregator; header is the statement prefix, e.g. "alter table users".
func NewAlterTable(table, header string, postProcess PostProcess) *AlterTable {
	return &AlterTable{
		table:       table,
		header:      header,
		postProcess: postProcess,
	}
}

func (a *AlterTable) Table() string {
	return a.table
}

func (a *AlterTable) Header() string {
	return a.header
}

func (a *AlterTable) Add(cmd AlterCmd) *AlterTable {
	if a.committed {
		panic("ddl: alter command added to a committed batch of " + a.table)
	}
	a.cmds = append(a.cmds, cmd)
	return a
}

func (a *AlterTable) AddRaw(sql string) *AlterTable {
	return a.Add(AlterCmd{Raw: sql})
}

// appendResult adds the statement of a generating operation unless it failed.
func (a *AlterTable) appendResult(stmt string, err error) error {
	if err != nil {
		return err
	}
	if stmt != "" {
		a.AddRaw(stmt)
	}
	return nil
}

func (a *AlterTable) Commands() []AlterCmd {
	return append([]AlterCmd(nil), a.cmds...)
}

// statements post-processes and renders the batch. A batch is committed once.
func (a *AlterTable) statements() []string {
	if a.committed {
		return nil
	}
	a.committed = true

	cmds := a.cmds
	if a.postProcess != nil {
		cmds = a.postProcess(a)
	}

	stmts := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		stmts = append(stmts, cmd.render(a.header))
	}
	return stmts
}
