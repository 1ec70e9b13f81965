// Command mongoq is a developer utility for working with filter documents. It
// parses a MongoDB Extended JSON filter against the grammar supported by the
// filter package and prints the canonical or human-readable form.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-mongo-odm/pkg/filter"
)

var fileFlag = &cli.StringFlag{
	Name:    "file",
	Aliases: []string{"f"},
	Usage:   "filter document file (extended JSON); reads stdin when omitted",
}

func main() {
	cmd := &cli.Command{
		Name:  "mongoq",
		Usage: "Inspect MongoDB filter documents",
		Commands: []*cli.Command{
			newCheckCommand(),
			newRenderCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Parse a filter document and print its canonical round-tripped form",
		Flags: []cli.Flag{
			fileFlag,
			&cli.BoolFlag{
				Name:  "canonical",
				Usage: "emit canonical extended JSON instead of relaxed",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			expr, err := readExpression(cmd)
			if err != nil {
				return err
			}
			out, err := filter.MarshalExtJSON(expr, cmd.Bool("canonical"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Writer, string(out))
			return nil
		},
	}
}

func newRenderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Parse a filter document and print its debug text form",
		Flags: []cli.Flag{fileFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			expr, err := readExpression(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Writer, filter.Render(expr))
			return nil
		},
	}
}

func readExpression(cmd *cli.Command) (filter.Expression, error) {
	var (
		data []byte
		err  error
	)
	if path := cmd.String(fileFlag.Name); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(cmd.Reader)
	}
	if err != nil {
		return nil, fmt.Errorf("reading filter document: %w", err)
	}
	return filter.ParseExtJSON(data)
}
