package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sqldef/ddlgen"
	"github.com/sqldef/ddlgen/config"
	"github.com/sqldef/ddlgen/util"
)

var version string

// Return parsed options; the change set file is the only argument.
func parseOptions(args []string) *ddlgen.Options {
	var opts struct {
		Platforms   []string `short:"p" long:"platform" description:"Generate DDL for the platform; can be given more than once" value-name:"platform"`
		Config      string   `long:"config" description:"YAML file with per-platform overrides" value-name:"config.yml"`
		Rollback    bool     `long:"rollback" description:"Also generate the rollback of reversible changes"`
		Verify      bool     `long:"verify" description:"Parse generated PostgreSQL scripts before printing them"`
		Debug       bool     `long:"debug" description:"Dump the decoded change set to stderr"`
		Concurrency int      `long:"concurrency" description:"Platforms generated in parallel; 0 is sequential, negative is unlimited" default:"-1"`
		Help        bool     `long:"help" description:"Show this help"`
		Version     bool     `long:"version" description:"Show this version"`
	}

	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[option...] changes.yml"
	args, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	changesFile := "-"
	if len(args) == 1 {
		changesFile = args[0]
	} else if len(args) > 1 {
		fmt.Printf("Multiple change sets are given: %v\n\n", args)
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	cfg, err := config.ParseConfig(opts.Config)
	if err != nil {
		log.Fatalf("Failed to load config '%s': %s", opts.Config, err)
	}

	return &ddlgen.Options{
		ChangesFile: changesFile,
		Platforms:   opts.Platforms,
		Rollback:    opts.Rollback,
		Verify:      opts.Verify,
		Debug:       opts.Debug,
		Concurrency: opts.Concurrency,
		Config:      cfg,
	}
}

func main() {
	util.InitSlog()
	options := parseOptions(os.Args[1:])

	if err := ddlgen.Run(options, ddlgen.StdoutLogger{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
