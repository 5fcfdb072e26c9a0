package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-refs/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.Fprint(os.Stderr, errors.FromError(err, "R030"))
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return rootCmdFor(newApp(stdout, stderr))
}

func rootCmdFor(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vango-refs",
		Short: "Inspect component reference resolution",
		Long: `vango-refs mounts a component tree described in a fixture file and
shows how every declared $refs entry resolves.

References resolve to registered child components first and fall back
to a CSS selector query over the rendered tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file (default ./vango-refs.yaml)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Bool("trace", false, "Export lifecycle spans")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("trace.enabled", flags.Lookup("trace"))

	rootCmd.AddCommand(
		inspectCmd(a),
		serveCmd(a),
		versionCmd(a),
	)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd
}

// fixtureArg picks the fixture from the arguments or the config.
func fixtureArg(a *app, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if path := a.cfg.FixturePath(); path != "" {
		return path, nil
	}
	return "", errors.New("R030").WithDetail(fmt.Sprintf("No fixture given and %s sets none.", configName(a)))
}

func configName(a *app) string {
	if p := a.cfg.Path(); p != "" {
		return p
	}
	return "the config"
}
