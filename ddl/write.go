package ddl

// WriteContext holds the sections of one generated migration script.
// Statements are written to apply, applyForeignKeys and applyPostAlter in that order;
// the rollback context, created on first use, has the same layout.
type WriteContext struct {
	apply            Buffer
	applyForeignKeys Buffer
	applyPostAlter   Buffer
	rollback         *WriteContext

	// alterTables holds one batch per table until Complete. Each batch is committed
	// at the position the apply section had when the table was first altered.
	alterTables map[string]*AlterTable
	alterOrder  []string
	alterSlots  map[string]int
	completed   bool
}

func NewWriteContext() *WriteContext {
	return &WriteContext{
		alterTables: map[string]*AlterTable{},
		alterSlots:  map[string]int{},
	}
}

// Apply returns the main section. Statements of a single table belong in its
// AlterTable batch instead, which stays open until Complete.
func (w *WriteContext) Apply() *Buffer {
	return &w.apply
}

func (w *WriteContext) ApplyForeignKeys() *Buffer {
	return &w.applyForeignKeys
}

func (w *WriteContext) ApplyPostAlter() *Buffer {
	return &w.applyPostAlter
}

func (w *WriteContext) Rollback() *WriteContext {
	if w.rollback == nil {
		w.rollback = NewWriteContext()
		if w.completed {
			w.rollback.Complete()
		}
	}
	return w.rollback
}

// AlterTable returns the pending aggregator of table, creating it with create when
// there is none.
func (w *WriteContext) AlterTable(table string, create func() *AlterTable) *AlterTable {
	if w.completed {
		panic("ddl: alter table after the write context was completed")
	}
	if at, ok := w.alterTables[table]; ok {
		return at
	}
	at := create()
	w.alterTables[table] = at
	w.alterOrder = append(w.alterOrder, table)
	w.alterSlots[table] = len(w.apply.statements)
	return at
}

// flushAlterTables splices every batch into the apply section at its slot. Slots never
// decrease along alterOrder, so one pass keeps both orders.
func (w *WriteContext) flushAlterTables() {
	w.apply.EndOfStatement()
	direct := w.apply.statements
	var stmts []string
	next := 0
	for _, table := range w.alterOrder {
		slot := w.alterSlots[table]
		stmts = append(stmts, direct[next:slot]...)
		next = slot
		stmts = append(stmts, w.alterTables[table].statements()...)
	}
	w.apply.statements = append(stmts, direct[next:]...)
	w.alterTables = map[string]*AlterTable{}
	w.alterSlots = map[string]int{}
	w.alterOrder = nil
}

// Complete commits pending aggregators and makes every section read-only.
func (w *WriteContext) Complete() {
	if w.completed {
		return
	}
	w.flushAlterTables()
	w.apply.Freeze()
	w.applyForeignKeys.Freeze()
	w.applyPostAlter.Freeze()
	w.completed = true
	if w.rollback != nil {
		w.rollback.Complete()
	}
}

// Statements returns the apply statements in section order.
func (w *WriteContext) Statements() []string {
	w.Complete()
	var stmts []string
	stmts = append(stmts, w.apply.Statements()...)
	stmts = append(stmts, w.applyForeignKeys.Statements()...)
	stmts = append(stmts, w.applyPostAlter.Statements()...)
	return stmts
}

// RollbackStatements returns the rollback statements in section order.
func (w *WriteContext) RollbackStatements() []string {
	w.Complete()
	if w.rollback == nil {
		return nil
	}
	return w.rollback.Statements()
}

// Script renders the sections as one script, each statement terminated by ";\n".
func (w *WriteContext) Script(withRollback bool) string {
	stmts := w.Statements()
	if withRollback {
		stmts = append(stmts, w.RollbackStatements()...)
	}
	return JoinStatements(stmts)
}
