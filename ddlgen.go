package ddlgen

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/sqldef/ddlgen/config"
	"github.com/sqldef/ddlgen/ddl"
	"github.com/sqldef/ddlgen/migration"
	"github.com/sqldef/ddlgen/util"
	"golang.org/x/term"
)

type Options struct {
	ChangesFile string
	Platforms   []string
	Rollback    bool
	Verify      bool
	Debug       bool
	Concurrency int
	Config      config.Config
}

// Script is the generated migration of one platform.
type Script struct {
	Platform ddl.Platform
	SQL      string
}

// Run generates the scripts of the change set for every requested platform and prints
// them in the order the platforms were given.
func Run(options *Options, logger Logger) error {
	sql, err := ReadFile(options.ChangesFile)
	if err != nil {
		return fmt.Errorf("failed to read '%s': %w", options.ChangesFile, err)
	}

	changes, err := migration.Parse([]byte(sql))
	if err != nil {
		return err
	}
	if options.Debug {
		pp.Fprintln(os.Stderr, changes)
	}

	scripts, err := Generate(changes, options)
	if err != nil {
		return err
	}

	for i, script := range scripts {
		if len(scripts) > 1 {
			if i > 0 {
				logger.Println()
			}
			logger.Printf("-- %s --\n", script.Platform)
		}
		if script.SQL == "" {
			logger.Println("-- Nothing is generated --")
			continue
		}
		logger.Print(script.SQL)
	}
	return nil
}

// Generate renders changes for each platform of options. Platforms are generated
// concurrently; each run owns its write context and only reads changes.
func Generate(changes []migration.Change, options *Options) ([]Script, error) {
	platforms, err := parsePlatforms(options.Platforms)
	if err != nil {
		return nil, err
	}

	return util.ConcurrentMapFuncWithError(platforms, options.Concurrency, func(p ddl.Platform) (Script, error) {
		d, err := options.Config.Dialect(p)
		if err != nil {
			return Script{}, err
		}

		w, err := ddl.Generate(d, changes, ddl.GenerateOptions{Rollback: options.Rollback})
		if err != nil {
			return Script{}, fmt.Errorf("%s: %w", p, err)
		}
		script := w.Script(options.Rollback)

		if options.Verify {
			if err := Verify(p, script); err != nil {
				return Script{}, err
			}
			slog.Debug("Verified generated script", "platform", p)
		}
		return Script{Platform: p, SQL: script}, nil
	})
}

func parsePlatforms(names []string) ([]ddl.Platform, error) {
	if len(names) == 0 {
		return []ddl.Platform{ddl.Generic}, nil
	}

	var platforms []ddl.Platform
	seen := map[ddl.Platform]bool{}
	for _, name := range names {
		p, err := ddl.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// ReadFile reads filepath, or stdin when it is "-". An interactive stdin is refused.
func ReadFile(filepath string) (string, error) {
	var err error
	var buf []byte

	if filepath == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return "", fmt.Errorf("stdin is not piped")
		}
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(filepath)
	}

	if err != nil {
		return "", err
	}
	return string(buf), nil
}
