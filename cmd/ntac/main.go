// Command ntac is the front end's command-line surface: parse and check
// timed-automata network documents (text or XML syntax), pretty-print them
// back to canonical text, and watch a directory for changes.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("ntac: ")

	app := &cli.App{
		Name:  "ntac",
		Usage: "parse, check and pretty-print timed-automata network documents",
		Commands: []*cli.Command{
			parseCommand,
			checkCommand,
			printCommand,
			watchCommand,
			docsCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
