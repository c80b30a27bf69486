package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/GrGLeo/dataguard/util"
)

// options mirrors cmd/mysqldef's struct-tag-driven flags.Parser setup, one
// dataguard flag per spec §6 "CLI surface".
type options struct {
	Config string `long:"config" description:"TOML configuration file" value-name:"file" required:"true"`
	Output string `long:"output" description:"Report destination" choice:"stdout" choice:"json" default:"stdout"`
	Path   string `long:"path" description:"File to write the JSON report to, when --output=json" value-name:"file"`
	Brief  bool   `long:"brief" description:"Print only PASS/FAIL per table"`
	Debug  bool   `long:"debug" description:"Pretty-print the compiled plan and counters"`
	Watch  bool   `long:"watch" description:"Re-run validation whenever inputs or the config file change"`
	Help   bool   `long:"help" description:"Show this help"`
}

func parseOptions(args []string) (*options, *flags.Parser) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "--config <file> [options]"

	if _, err := parser.ParseArgs(args); err != nil {
		parser.WriteHelp(os.Stdout)
		os.Exit(exitUsageError)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(exitOK)
	}

	if opts.Output == "json" && opts.Path == "" {
		fmt.Fprintln(os.Stderr, "--path is required when --output=json")
		parser.WriteHelp(os.Stdout)
		os.Exit(exitUsageError)
	}

	return &opts, parser
}

func main() {
	util.InitSlog()
	opts, _ := parseOptions(os.Args[1:])

	code, err := run(opts)
	if err != nil {
		log.Println(err)
	}
	os.Exit(code)
}
