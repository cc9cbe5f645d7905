package ddl

import (
	"fmt"
	"strings"

	"github.com/sqldef/ddlgen/migration"
)

type Platform string

const (
	Generic   Platform = "generic"
	H2        Platform = "h2"
	Postgres  Platform = "postgres"
	MySQL     Platform = "mysql"
	MariaDB   Platform = "mariadb"
	SQLServer Platform = "sqlserver"
	Oracle    Platform = "oracle"
	DB2       Platform = "db2"
	HANA      Platform = "hana"
	SQLite    Platform = "sqlite"
)

// Platforms lists every supported platform.
func Platforms() []Platform {
	return []Platform{Generic, H2, Postgres, MySQL, MariaDB, SQLServer, Oracle, DB2, HANA, SQLite}
}

func ParsePlatform(name string) (Platform, error) {
	normalized := Platform(strings.ToLower(strings.TrimSpace(name)))
	switch normalized {
	case "postgresql", "pg":
		return Postgres, nil
	case "mssql":
		return SQLServer, nil
	case "sqlite3":
		return SQLite, nil
	}
	for _, p := range Platforms() {
		if p == normalized {
			return p, nil
		}
	}
	return "", invalid("unknown platform %q", name)
}

// operations holds the per-platform replacements of Dialect methods. A nil entry
// means the base implementation is used; overrides call the base method themselves
// when they only add to it.
type operations struct {
	addColumn         func(d *Dialect, w *WriteContext, table string, column migration.Column, onHistoryTable bool) error
	alterColumn       func(d *Dialect, w *WriteContext, alter migration.AlterColumn) error
	alterColumnType   func(d *Dialect, at *AlterTable, alter migration.AlterColumn) error
	renameColumn      func(d *Dialect, w *WriteContext, table, from, to string) error
	addUnique         func(d *Dialect, uq migration.UniqueConstraint) (string, error)
	dropUnique        func(d *Dialect, table, name string) (string, error)
	dropConstraint    func(d *Dialect, table, name string) (string, error)
	addCheck          func(d *Dialect, table, name, expression string) (string, error)
	addForeignKey     func(d *Dialect, fk migration.ForeignKey) (string, error)
	foreignKeyActions func(d *Dialect, fk migration.ForeignKey) string
	dropForeignKey    func(d *Dialect, table, name string) (string, error)
	createIndex       func(d *Dialect, ix migration.Index) (string, error)
	dropIndex         func(d *Dialect, table, name string) (string, error)
	dropSequence      func(d *Dialect, name string) (string, error)
	moveTablespace    func(d *Dialect, table string, ts migration.Tablespace) (string, error)
	addTablespace     func(d *Dialect, b *Buffer, ts migration.Tablespace) error
	postProcess       func(d *Dialect, at *AlterTable) []AlterCmd
}

type platformSpec struct {
	lexicon           Lexicon
	naming            Naming
	history           HistoryStrategy
	guard             *catalogGuard
	typeFlags         []string
	defaultTablespace migration.Tablespace
	ops               operations
}

var platformSpecs = map[Platform]platformSpec{
	Generic:   genericSpec,
	H2:        h2Spec,
	Postgres:  postgresSpec,
	MySQL:     mysqlSpec,
	MariaDB:   mariadbSpec,
	SQLServer: sqlserverSpec,
	Oracle:    oracleSpec,
	DB2:       db2Spec,
	HANA:      hanaSpec,
	SQLite:    sqliteSpec,
}

var genericSpec = platformSpec{
	lexicon: baseLexicon,
	naming:  Naming{MaxLength: 64, Case: CaseUpper},
	history: HistoryMirror,
}

// Dialect renders schema changes as DDL for one platform. It is immutable after New
// and may be shared between goroutines.
type Dialect struct {
	platform          Platform
	lexicon           Lexicon
	naming            Naming
	history           HistoryDdl
	guard             *catalogGuard
	typeFlags         []string
	defaultTablespace migration.Tablespace
	ops               operations
}

func New(p Platform, overrides Overrides) (*Dialect, error) {
	spec, ok := platformSpecs[p]
	if !ok {
		return nil, invalid("unknown platform %q", p)
	}
	if err := overrides.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	d := &Dialect{
		platform:          p,
		lexicon:           spec.lexicon.withOverrides(overrides),
		naming:            spec.naming,
		guard:             spec.guard,
		typeFlags:         spec.typeFlags,
		defaultTablespace: spec.defaultTablespace,
		ops:               spec.ops,
	}
	if overrides.MaxConstraintLength != nil {
		d.naming.MaxLength = *overrides.MaxConstraintLength
	}

	strategy := spec.history
	if overrides.History != nil {
		strategy = *overrides.History
	}
	suffix := defaultHistorySuffix
	if overrides.HistorySuffix != nil {
		suffix = *overrides.HistorySuffix
	}
	d.history = newHistoryDdl(d, strategy, suffix)
	return d, nil
}

func (d *Dialect) Platform() Platform {
	return d.platform
}

func (d *Dialect) Lexicon() Lexicon {
	return d.lexicon
}

func (d *Dialect) Naming() Naming {
	return d.naming
}

func (d *Dialect) History() HistoryDdl {
	return d.history
}

func (d *Dialect) alterTableHeader(table string) string {
	return "alter table " + d.lexicon.AlterTableIfExists + table
}

func (d *Dialect) alterTable(w *WriteContext, table string) *AlterTable {
	return w.AlterTable(table, func() *AlterTable {
		return NewAlterTable(table, d.alterTableHeader(table), d.postProcess())
	})
}

// postProcess binds the batch rewrite of the platform to d.
func (d *Dialect) postProcess() PostProcess {
	if d.ops.postProcess == nil {
		return nil
	}
	return func(at *AlterTable) []AlterCmd {
		return d.ops.postProcess(d, at)
	}
}

func (d *Dialect) alterCmd(alter migration.AlterColumn, alternation string) AlterCmd {
	return AlterCmd{
		Operation:    d.lexicon.AlterColumn,
		Column:       alter.Column,
		Alternation:  alternation,
		PreviousType: d.ConvertType(alter.CurrentType),
	}
}

// columnDefinition renders "type[ identity][ default x][ not null]". History table columns
// carry no identity.
func (d *Dialect) columnDefinition(column migration.Column, onHistoryTable bool) string {
	def := d.ConvertType(column.Type)
	if column.Identity && !onHistoryTable {
		def += d.lexicon.IdentitySuffix
	}
	if column.Default != "" {
		def += " default " + d.ConvertDefault(column.Default)
	}
	if column.NotNull {
		def += " not null"
	}
	return def
}

func columnList(columns []string) string {
	return "(" + strings.Join(columns, ",") + ")"
}

func (d *Dialect) CreateTable(w *WriteContext, ct migration.CreateTable) error {
	var lines []string
	var primaryKey []string
	for _, column := range ct.Columns {
		lines = append(lines, "  "+column.Name+" "+d.columnDefinition(column, false))
		if column.PrimaryKey {
			primaryKey = append(primaryKey, column.Name)
		}
	}
	for _, column := range ct.Columns {
		if column.Check != "" {
			lines = append(lines, fmt.Sprintf("  constraint %s check (%s)", d.checkName(ct.Name, column.Name, column.CheckName), column.Check))
		}
	}
	if len(primaryKey) > 0 {
		name := ct.PrimaryKey
		if name == "" {
			name = "pk_" + NormaliseTable(ct.Name)
		}
		lines = append(lines, fmt.Sprintf("  constraint %s primary key %s", d.naming.Truncate(name), columnList(primaryKey)))
	}

	var b Buffer
	b.Append("create table ").Append(ct.Name).Append(" (\n")
	b.Append(strings.Join(lines, ",\n")).Append("\n)")
	if err := d.AddTablespace(&b, ct.Tablespace); err != nil {
		return err
	}
	b.EndOfStatement()

	apply := w.Apply()
	for _, stmt := range b.Statements() {
		apply.AppendStatement(stmt)
	}
	return nil
}

func (d *Dialect) DropTable(table string) (string, error) {
	if d.guard != nil {
		return d.guarded(objectTable, table, table, "drop table "+table+d.lexicon.DropTableCascade), nil
	}
	return d.lexicon.DropTable + table + d.lexicon.DropTableCascade, nil
}

func (d *Dialect) AddColumn(w *WriteContext, table string, column migration.Column, onHistoryTable bool) error {
	if d.ops.addColumn != nil {
		return d.ops.addColumn(d, w, table, column, onHistoryTable)
	}
	return d.baseAddColumn(w, table, column, onHistoryTable)
}

func (d *Dialect) baseAddColumn(w *WriteContext, table string, column migration.Column, onHistoryTable bool) error {
	d.alterTable(w, table).Add(AlterCmd{
		Operation:   d.lexicon.AddColumn,
		Column:      column.Name,
		Alternation: d.columnDefinition(column, onHistoryTable),
	})
	if onHistoryTable {
		return nil
	}
	return d.addPostAlterCheck(w, table, column.Name, column.CheckName, column.Check)
}

func (d *Dialect) DropColumn(w *WriteContext, table, column string) error {
	d.alterTable(w, table).Add(AlterCmd{
		Operation: d.lexicon.DropColumn,
		Column:    column,
	})
	return nil
}

func (d *Dialect) RenameColumn(w *WriteContext, table, from, to string) error {
	if d.ops.renameColumn != nil {
		return d.ops.renameColumn(d, w, table, from, to)
	}
	d.alterTable(w, table).AddRaw(fmt.Sprintf("%s rename column %s to %s", d.alterTableHeader(table), from, to))
	return nil
}

func (d *Dialect) AlterColumn(w *WriteContext, alter migration.AlterColumn) error {
	if d.ops.alterColumn != nil {
		return d.ops.alterColumn(d, w, alter)
	}
	return d.baseAlterColumn(w, alter)
}

// baseAlterColumn emits one command per changed attribute in the order: drop the replaced
// check, type, default, nullability. The new check is added after all alterations.
func (d *Dialect) baseAlterColumn(w *WriteContext, alter migration.AlterColumn) error {
	at := d.alterTable(w, alter.Table)
	if err := d.dropReplacedCheck(at, alter); err != nil {
		return err
	}
	if alter.Type != "" {
		if err := d.alterColumnType(at, alter); err != nil {
			return err
		}
	}
	if alter.DropsDefault() {
		at.Add(d.alterCmd(alter, d.lexicon.ColumnDropDefault))
	} else if value, ok := alter.NewDefault(); ok {
		at.Add(d.alterCmd(alter, d.lexicon.ColumnSetDefault+" "+d.ConvertDefault(value)))
	}
	if alter.NotNull != nil {
		if *alter.NotNull {
			d.fillNulls(at, alter)
			at.Add(d.alterCmd(alter, d.lexicon.ColumnSetNotNull))
		} else {
			at.Add(d.alterCmd(alter, d.lexicon.ColumnSetNull))
		}
	}
	return d.addPostAlterCheck(w, alter.Table, alter.Column, alter.CheckName, alter.Check)
}

func (d *Dialect) alterColumnType(at *AlterTable, alter migration.AlterColumn) error {
	if d.ops.alterColumnType != nil {
		return d.ops.alterColumnType(d, at, alter)
	}
	at.Add(d.alterCmd(alter, d.lexicon.ColumnSetType+d.ConvertType(alter.Type)))
	return nil
}

func (d *Dialect) dropReplacedCheck(at *AlterTable, alter migration.AlterColumn) error {
	if alter.DropCheck == "" {
		return nil
	}
	stmt, err := d.DropConstraint(alter.Table, alter.DropCheck)
	if err != nil {
		return err
	}
	at.AddRaw(stmt)
	return nil
}

// fillNulls replaces existing nulls by the default before the column becomes not null.
func (d *Dialect) fillNulls(at *AlterTable, alter migration.AlterColumn) {
	if alter.CurrentNotNull {
		return
	}
	value, ok := alter.NewDefault()
	if !ok {
		value = alter.CurrentDefault
	}
	if value == "" {
		return
	}
	at.AddRaw(fmt.Sprintf("update %s set %s = %s where %s is null", alter.Table, alter.Column, d.ConvertDefault(value), alter.Column))
}

func (d *Dialect) checkName(table, column, name string) string {
	if name == "" {
		return d.naming.ConstraintName(table, column, "check")
	}
	return d.naming.Truncate(name)
}

// addPostAlterCheck queues a column check constraint after all column alterations.
func (d *Dialect) addPostAlterCheck(w *WriteContext, table, column, name, expression string) error {
	if expression == "" {
		return nil
	}
	stmt, err := d.AddCheckConstraint(table, d.checkName(table, column, name), expression)
	if err != nil {
		return err
	}
	w.ApplyPostAlter().AppendStatement(stmt)
	return nil
}

func (d *Dialect) AddCheckConstraint(table, name, expression string) (string, error) {
	if d.ops.addCheck != nil {
		return d.ops.addCheck(d, table, name, expression)
	}
	return fmt.Sprintf("%s add constraint %s check (%s)", d.alterTableHeader(table), d.naming.Truncate(name), expression), nil
}

func (d *Dialect) AddUniqueConstraint(uq migration.UniqueConstraint) (string, error) {
	if d.ops.addUnique != nil {
		return d.ops.addUnique(d, uq)
	}
	return d.baseAddUniqueConstraint(uq)
}

func (d *Dialect) baseAddUniqueConstraint(uq migration.UniqueConstraint) (string, error) {
	if len(uq.Nullable) > 0 && !d.lexicon.InlineUniqueWhenNullable {
		return "", unsupported(d.platform, "unique constraints over nullable columns")
	}
	var b strings.Builder
	b.WriteString(d.alterTableHeader(uq.Table))
	b.WriteString(" add ")
	if uq.Name != "" {
		b.WriteString("constraint " + d.naming.Truncate(uq.Name) + " ")
	}
	b.WriteString("unique " + columnList(uq.Columns))
	return b.String(), nil
}

func (d *Dialect) DropUniqueConstraint(table, name string) (string, error) {
	if d.ops.dropUnique != nil {
		return d.ops.dropUnique(d, table, name)
	}
	return d.DropConstraint(table, name)
}

func (d *Dialect) DropConstraint(table, name string) (string, error) {
	if d.ops.dropConstraint != nil {
		return d.ops.dropConstraint(d, table, name)
	}
	return d.baseDropConstraint(table, name)
}

func (d *Dialect) baseDropConstraint(table, name string) (string, error) {
	name = d.naming.Truncate(name)
	if d.guard != nil {
		return d.guarded(objectConstraint, table, name, fmt.Sprintf("alter table %s drop constraint %s", table, name)), nil
	}
	return fmt.Sprintf("%s %s%s", d.alterTableHeader(table), d.lexicon.DropConstraint, name), nil
}

func (d *Dialect) AddForeignKey(fk migration.ForeignKey) (string, error) {
	if d.ops.addForeignKey != nil {
		return d.ops.addForeignKey(d, fk)
	}
	name := fk.Name
	if name == "" {
		name = d.naming.ConstraintName(fk.Table, fk.Columns[0], "fkey")
	}
	refColumns := fk.RefColumns
	if len(refColumns) == 0 {
		refColumns = []string{"id"}
	}
	return fmt.Sprintf("%s add constraint %s foreign key %s references %s %s%s",
		d.alterTableHeader(fk.Table), d.naming.Truncate(name), columnList(fk.Columns), fk.RefTable, columnList(refColumns), d.foreignKeyActions(fk)), nil
}

func (d *Dialect) foreignKeyActions(fk migration.ForeignKey) string {
	if d.ops.foreignKeyActions != nil {
		return d.ops.foreignKeyActions(d, fk)
	}
	return fmt.Sprintf(" on delete %s on update %s", foreignKeyMode(fk.OnDelete), foreignKeyMode(fk.OnUpdate))
}

func foreignKeyMode(mode migration.ForeignKeyMode) migration.ForeignKeyMode {
	if mode == "" {
		return migration.ModeRestrict
	}
	return mode
}

func (d *Dialect) DropForeignKey(table, name string) (string, error) {
	if d.ops.dropForeignKey != nil {
		return d.ops.dropForeignKey(d, table, name)
	}
	return d.DropConstraint(table, name)
}

func (d *Dialect) CreateIndex(ix migration.Index) (string, error) {
	if d.ops.createIndex != nil {
		return d.ops.createIndex(d, ix)
	}
	var b strings.Builder
	b.WriteString("create ")
	if ix.Unique {
		b.WriteString("unique ")
	}
	b.WriteString("index ")
	if ix.Concurrent {
		b.WriteString(d.lexicon.CreateIndexConcurrently)
	}
	b.WriteString(d.indexName(ix) + " on " + ix.Table + " " + columnList(ix.Columns))
	return b.String(), nil
}

func (d *Dialect) indexName(ix migration.Index) string {
	if ix.Name != "" {
		return d.naming.Truncate(ix.Name)
	}
	suffix := "idx"
	if ix.Unique {
		suffix = "key"
	}
	return d.naming.ConstraintName(ix.Table, ix.Columns[0], suffix)
}

func (d *Dialect) DropIndex(table, name string) (string, error) {
	if d.ops.dropIndex != nil {
		return d.ops.dropIndex(d, table, name)
	}
	name = d.naming.Truncate(name)
	if d.guard != nil {
		return d.guarded(objectIndex, table, name, "drop index "+name), nil
	}
	return d.lexicon.DropIndex + name, nil
}

func (d *Dialect) DropSequence(name string) (string, error) {
	if d.ops.dropSequence != nil {
		return d.ops.dropSequence(d, name)
	}
	name = d.naming.Truncate(name)
	if d.guard != nil {
		return d.guarded(objectSequence, "", name, "drop sequence "+name), nil
	}
	return d.lexicon.DropSequence + name, nil
}

// MoveTablespace relocates a table. Each name missing from ts, or all of them when ts is
// nil, is taken from the platform defaults for data, index and large-object storage.
func (d *Dialect) MoveTablespace(table string, ts *migration.Tablespace) (string, error) {
	if d.ops.moveTablespace == nil {
		return "", unsupported(d.platform, "moving tables between tablespaces")
	}
	target := d.defaultTablespace
	if ts != nil {
		fill := func(dst *string, src string) {
			if src != "" {
				*dst = src
			}
		}
		fill(&target.Data, ts.Data)
		fill(&target.Index, ts.Index)
		fill(&target.Lob, ts.Lob)
	}
	return d.ops.moveTablespace(d, table, target)
}

// AddTablespace appends the storage clause of a create table statement.
func (d *Dialect) AddTablespace(b *Buffer, ts *migration.Tablespace) error {
	if ts.IsEmpty() {
		return nil
	}
	if d.ops.addTablespace == nil {
		return unsupported(d.platform, "tablespaces")
	}
	return d.ops.addTablespace(d, b, *ts)
}
