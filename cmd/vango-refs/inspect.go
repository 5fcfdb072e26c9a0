package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-refs/internal/fixture"
)

func inspectCmd(a *app) *cobra.Command {
	var (
		detach []string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [FIXTURE]",
		Short: "Mount a fixture and print every resolved reference",
		Long: `Mount the page of a fixture file and print the $refs table of every
mounted instance: the mode, where the value came from and what it matched.

Instances listed with --detach are unmounted, in order, before printing.
They are addressed by their id attribute.

Examples:
  vango-refs inspect tree.yaml
  vango-refs inspect tree.yaml --detach c1 --detach header
  vango-refs inspect tree.yaml --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			path, err := fixtureArg(a, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			page, err := a.mount(ctx, path)
			if err != nil {
				return err
			}
			defer page.Unmount(ctx)

			for _, id := range detach {
				if err := fixture.Detach(ctx, page, id); err != nil {
					return err
				}
				a.logger.Info("instance detached", "id", id)
			}

			reports := fixture.Report(page)
			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			printReport(a.stdout, reports)
			return nil
		}),
	}

	cmd.Flags().StringSliceVarP(&detach, "detach", "d", nil, "Unmount the instance with this id before printing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}
