package testutil

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/sqldef/ddlgen/ddl"
	"github.com/sqldef/ddlgen/migration"
	"github.com/sqldef/ddlgen/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestCase struct {
	Platform  string             // platform name accepted by ddl.ParsePlatform
	Changes   []migration.Change // input change set
	Overrides ddl.Overrides      // optional platform overrides
	Up        *string            // expected apply script
	Down      *string            // expected rollback script; rollback is generated only when set
	Error     *string            // expected error substring
}

func init() {
	util.InitSlog()

	// Keep warnings visible but hide debug output unless LOG_LEVEL asks for it.
	if os.Getenv("LOG_LEVEL") == "" {
		util.SetLogLevel(slog.LevelWarn)
	}
}

func ReadTests(pattern string) (map[string]TestCase, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no test files match %s", pattern)
	}

	ret := map[string]TestCase{}
	testFileMap := map[string]string{}

	for _, file := range files {
		tests, err := ReadTestFile(file)
		if err != nil {
			return nil, err
		}
		for name, test := range tests {
			if existingFile, ok := testFileMap[name]; ok {
				return nil, fmt.Errorf("duplicate test case name '%s': defined in both '%s' and '%s'", name, existingFile, file)
			}
			testFileMap[name] = file
			ret[name] = test
		}
	}

	return ret, nil
}

// ReadTestFile reads the test cases of one YAML file.
func ReadTestFile(file string) (map[string]TestCase, error) {
	var tests map[string]*TestCase

	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf), yaml.DisallowUnknownField())
	if err := dec.Decode(&tests); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	ret := map[string]TestCase{}
	for name, test := range tests {
		if test.Platform == "" {
			return nil, fmt.Errorf("%s: test case '%s': 'platform' is required", file, name)
		}
		if test.Up == nil && test.Error == nil {
			return nil, fmt.Errorf("%s: test case '%s': either 'up' or 'error' must be specified", file, name)
		}
		ret[name] = *test
	}
	return ret, nil
}

// Render generates the apply and rollback scripts of test. The rollback script is
// generated only when the test expects one.
func Render(test TestCase) (up string, down string, err error) {
	platform, err := ddl.ParsePlatform(test.Platform)
	if err != nil {
		return "", "", err
	}
	dialect, err := ddl.New(platform, test.Overrides)
	if err != nil {
		return "", "", err
	}

	changes := append([]migration.Change(nil), test.Changes...)
	if err := migration.Normalize(changes); err != nil {
		return "", "", err
	}

	w, err := ddl.Generate(dialect, changes, ddl.GenerateOptions{Rollback: test.Down != nil})
	if err != nil {
		return "", "", err
	}
	return ddl.JoinStatements(w.Statements()), ddl.JoinStatements(w.RollbackStatements()), nil
}

func RunTest(t *testing.T, test TestCase) {
	t.Helper()

	up, down, err := Render(test)
	if test.Error != nil {
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), *test.Error)
		}
		return
	}
	require.NoError(t, err)

	assert.Equal(t, *test.Up, up, "apply script")
	if test.Down != nil {
		assert.Equal(t, *test.Down, down, "rollback script")
	}
}
