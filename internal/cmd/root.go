package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootCommand struct {
	cmd    *cobra.Command
	stdout io.Writer
	stderr io.Writer

	httpPort string
	logLevel string
}

func newRootCommand(stdout, stderr io.Writer) *rootCommand {
	c := &rootCommand{
		stdout: stdout,
		stderr: stderr,
	}
	c.cmd = &cobra.Command{
		Use:           "httpmsg",
		Short:         "an HTTP server that echoes every request back as JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.cmd.SetOut(stdout)
	c.cmd.SetErr(stderr)
	c.cmd.PersistentFlags().AddFlagSet(c.rootCmdPersistentFlagSet())

	c.cmd.AddCommand(
		getCmdServe(c),
		getCmdVersion(c),
	)
	return c
}

func (c *rootCommand) rootCmdPersistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringVarP(&c.logLevel, "log-level", "l", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	return flags
}

// Execute runs the CLI with the process arguments.
func Execute() {
	c := newRootCommand(os.Stdout, os.Stderr)
	if err := c.cmd.Execute(); err != nil {
		logrus.WithError(err).Error("httpmsg exited with an error")
		os.Exit(1)
	}
}
