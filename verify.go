package ddlgen

import (
	"errors"
	"fmt"
	"io"
	"strings"

	pgquery "github.com/pganalyze/pg_query_go/v2"
	"github.com/pingcap/tidb/parser"
	_ "github.com/pingcap/tidb/parser/test_driver"
	rsql "github.com/rqlite/sql"
	"github.com/sqldef/ddlgen/ddl"
)

// Verify parses a generated script with the platform's own parser. Platforms without
// a bundled parser are not checked.
func Verify(p ddl.Platform, script string) error {
	if script == "" {
		return nil
	}
	switch p {
	case ddl.Postgres:
		return VerifyPostgres(script)
	case ddl.MySQL, ddl.MariaDB:
		return VerifyMysql(script)
	case ddl.SQLite:
		return VerifySqlite(script)
	default:
		return nil
	}
}

// VerifyPostgres parses script with the PostgreSQL parser and checks that every
// statement was recognized.
func VerifyPostgres(script string) error {
	result, err := pgquery.Parse(script)
	if err != nil {
		return fmt.Errorf("generated postgres script does not parse: %w", err)
	}
	for _, rawStmt := range result.Stmts {
		if rawStmt.Stmt == nil || rawStmt.Stmt.Node == nil {
			return fmt.Errorf("generated postgres script has an empty statement at offset %d", rawStmt.StmtLocation)
		}
	}
	return nil
}

// VerifyMysql parses script with the TiDB parser, which accepts the MySQL dialect.
func VerifyMysql(script string) error {
	stmts, _, err := parser.New().Parse(script, "", "")
	if err != nil {
		return fmt.Errorf("generated mysql script does not parse: %w", err)
	}
	if len(stmts) == 0 {
		return fmt.Errorf("generated mysql script has no statements")
	}
	return nil
}

// VerifySqlite parses script statement by statement with the rqlite SQLite parser.
func VerifySqlite(script string) error {
	parser := rsql.NewParser(strings.NewReader(script))
	for i := 1; ; i++ {
		_, err := parser.ParseStatement()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("generated sqlite script does not parse at statement %d: %w", i, err)
		}
	}
}
