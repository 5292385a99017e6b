package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "littlesearch: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "littlesearch",
		Usage: "index a small document collection and answer top-5 keyword queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config file",
				EnvVars: []string{"LSE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "build the index and print its statistics",
				Action: IndexAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "doc", Usage: "also print the keywords of one document"},
				},
			},
			{
				Name:      "search",
				Usage:     "print the top documents for kw1 or kw2",
				ArgsUsage: "<kw1> [kw2]",
				Action:    SearchAction,
			},
			{
				Name:      "keywords",
				Usage:     "print the posting list of a keyword",
				ArgsUsage: "<keyword>",
				Action:    KeywordsAction,
			},
			{
				Name:   "import",
				Usage:  "copy the file corpus into Postgres",
				Action: ImportAction,
			},
			{
				Name:   "serve",
				Usage:  "build the index and serve queries over HTTP",
				Action: ServeAction,
			},
		},
	}
}
