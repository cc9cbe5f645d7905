// fix-tests regenerates the expected scripts of golden test cases whose output changed.
//
//	go run ./cmd/fix-tests [pattern]
//
// Only "up" and "down" blocks are rewritten; cases expecting an error are left alone.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sqldef/ddlgen/testutil"
	"github.com/sqldef/ddlgen/util"
)

const defaultPattern = "ddl/testdata/*.yml"

func main() {
	pattern := defaultPattern
	if len(os.Args) > 1 && os.Args[1] != "" {
		pattern = os.Args[1]
	}
	if err := run(pattern); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(pattern string) error {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	slices.Sort(files)

	checked, fixed, failed := 0, 0, 0
	for _, file := range files {
		tests, err := testutil.ReadTestFile(file)
		if err != nil {
			return err
		}

		for name, test := range util.CanonicalMapIter(tests) {
			if test.Error != nil {
				continue
			}
			checked++

			up, down, err := testutil.Render(test)
			if err != nil {
				log.Printf("Failed to render test %s: %v", name, err)
				failed++
				continue
			}

			changed := false
			if up != *test.Up {
				if err := updateYamlFile(file, name, "up", up); err != nil {
					return err
				}
				changed = true
			}
			if test.Down != nil && down != *test.Down {
				if err := updateYamlFile(file, name, "down", down); err != nil {
					return err
				}
				changed = true
			}
			if changed {
				fmt.Printf("Fixed test: %s in %s\n", name, filepath.Base(file))
				fixed++
			}
		}
	}

	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Checked: %d\n", checked)
	fmt.Printf("Fixed: %d\n", fixed)
	fmt.Printf("Failed to render: %d\n", failed)
	return nil
}

func updateYamlFile(filename, testName, field, newValue string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	updated, err := replaceBlock(string(data), testName, field, newValue)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return os.WriteFile(filename, []byte(updated), 0o644)
}

// replaceBlock replaces the literal block "field: |" of the top-level key testName,
// keeping the blank lines that separate it from the next key.
func replaceBlock(content, testName, field, newValue string) (string, error) {
	lines := strings.Split(content, "\n")
	var result []string

	inTest := false
	replaced := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		indent := indentOf(line)

		if trimmed != "" && indent == 0 {
			inTest = trimmed == testName+":"
		}
		result = append(result, line)
		if !inTest || replaced || !strings.HasPrefix(trimmed, field+": |") {
			continue
		}

		if newValue != "" {
			for _, valueLine := range strings.Split(strings.TrimSuffix(newValue, "\n"), "\n") {
				result = append(result, strings.Repeat(" ", indent+2)+valueLine)
			}
		}

		end := i + 1
		for end < len(lines) && (strings.TrimSpace(lines[end]) == "" || indentOf(lines[end]) > indent) {
			end++
		}
		separator := end
		for separator > i+1 && strings.TrimSpace(lines[separator-1]) == "" {
			separator--
		}
		result = append(result, lines[separator:end]...)
		i = end - 1
		replaced = true
	}

	if !replaced {
		return "", fmt.Errorf("test %s has no '%s: |' block", testName, field)
	}
	return strings.Join(result, "\n"), nil
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
