package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var checkCommand = &cli.Command{
	Name:      "check",
	Usage:     "validate a document, exiting non-zero if any error was raised",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "emit diagnostics as a JSON array"},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("check: missing <file> argument", 2)
		}
		_, collector, err := loadSystem(path)
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
		if collector.HasErrors() {
			return cli.Exit(fmt.Sprintf("check: %d error(s)", len(collector.Errors())), 1)
		}
		return nil
	},
}
