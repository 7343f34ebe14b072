package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var parseCommand = &cli.Command{
	Name:      "parse",
	Usage:     "parse a document and report its template/instantiation shape",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "emit diagnostics as a JSON array"},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("parse: missing <file> argument", 2)
		}
		sys, collector, err := loadSystem(path)
		if c.Bool("json") {
			data, jerr := collector.MarshalJSON()
			if jerr != nil {
				return jerr
			}
			fmt.Println(string(data))
		} else {
			printDiagnostics(collector)
		}
		if err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Fprintf(os.Stdout, "%d template(s), %d instantiation(s), %d process(es) in system line\n",
			len(sys.Templates), len(sys.Instantiations), len(sys.Processes))
		return nil
	},
}
