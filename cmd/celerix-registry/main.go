package main

import (
	"fmt"
	"log"
	"os"

	"github.com/celerix-dev/celerix-registry/internal/engine"
	"github.com/celerix-dev/celerix-registry/pkg/sdk"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	var client *sdk.Client

	return &cli.App{
		Name:  "celerix-registry",
		Usage: "Celerix CLI - Interface for celerix-registry",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   "localhost:7002",
				Usage:   "address of the registry",
				EnvVars: []string{"CELERIX_REGISTRY_ADDR"},
			},
		},
		Before: func(c *cli.Context) error {
			switch c.Args().First() {
			case "", "help", "h":
				return nil
			}
			var err error
			client, err = sdk.Connect(c.String("addr"))
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", c.String("addr"), err)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print every employee",
				Action: func(c *cli.Context) error {
					recs, err := client.List()
					if err != nil {
						return err
					}
					printJSON(c, recs)
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "print one employee",
				ArgsUsage: "<regId>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("Usage: celerix-registry get <regId>", 2)
					}
					rec, err := client.Get(c.Args().First())
					if err != nil {
						return err
					}
					printJSON(c, rec)
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "create an employee from a JSON object",
				ArgsUsage: "<json>",
				Action: func(c *cli.Context) error {
					rec, err := recordArg(c, "create")
					if err != nil {
						return err
					}
					id, err := client.Create(rec)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, id)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "merge a JSON object carrying regId into an employee",
				ArgsUsage: "<json>",
				Action: func(c *cli.Context) error {
					rec, err := recordArg(c, "update")
					if err != nil {
						return err
					}
					if err := client.Update(rec); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "OK")
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete an employee",
				ArgsUsage: "<regId>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("Usage: celerix-registry delete <regId>", 2)
					}
					if err := client.Delete(c.Args().First()); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "OK")
					return nil
				},
			},
			{
				Name:  "health",
				Usage: "print the registry status",
				Action: func(c *cli.Context) error {
					h, err := client.Health()
					if err != nil {
						return err
					}
					printJSON(c, h)
					return nil
				},
			},
		},
	}
}

func recordArg(c *cli.Context, command string) (sdk.Record, error) {
	if c.NArg() != 1 {
		return nil, cli.Exit(fmt.Sprintf("Usage: celerix-registry %s <json>", command), 2)
	}
	rec, err := engine.DecodeRecord([]byte(c.Args().First()))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	return rec, nil
}

func printJSON(c *cli.Context, v any) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(c.App.Writer, v)
		return
	}
	fmt.Fprintln(c.App.Writer, string(bytes))
}
