package cmd

import (
	"fmt"

	"httpmsg/internal/bootstrap"
	"httpmsg/internal/config"
	"httpmsg/internal/logger"

	"github.com/spf13/cobra"
)

type serveCmd struct {
	root *rootCommand
	load func() (config.Config, error)
	run  func(*bootstrap.Bootstrap) error
}

func (c *serveCmd) runE(cmd *cobra.Command, _ []string) error {
	conf, err := c.load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	conf = config.WithOverrides(conf, c.root.httpPort, c.root.logLevel)

	log, err := logger.New(conf.LogLevel(), c.root.stderr)
	if err != nil {
		return err
	}

	b, err := bootstrap.New(conf, log)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return c.run(b)
}

func getCmdServe(root *rootCommand) *cobra.Command {
	serve := &serveCmd{
		root: root,
		load: config.MustLoad,
		run:  (*bootstrap.Bootstrap).Run,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server. Every request is answered with a JSON document
describing the parsed request: headers, cookies, query, form fields and uploads.`,
		Args: cobra.NoArgs,
		RunE: serve.runE,
	}
	cmd.Flags().StringVarP(&root.httpPort, "port", "p", "", "port to listen on; overrides HTTP_PORT")
	return cmd
}
