package cmd

import (
	"fmt"

	"httpmsg/internal/version"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

type versionCmd struct {
	root   *rootCommand
	isJSON bool
}

func (c *versionCmd) run(_ *cobra.Command, _ []string) error {
	if !c.isJSON {
		_, err := fmt.Fprintln(c.root.stdout, version.GetVersion())
		return err
	}

	details := []byte("{}")
	for _, kv := range [][2]string{
		{"version", version.Version},
		{"commit", version.Commit},
		{"built", version.BuildDate},
	} {
		var err error
		if details, err = sjson.SetBytes(details, kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed produce a JSON version details: %w", err)
		}
	}

	_, err := fmt.Fprintln(c.root.stdout, string(details))
	return err
}

func getCmdVersion(root *rootCommand) *cobra.Command {
	versionCmd := &versionCmd{root: root}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Long:  `Show the application version and exit.`,
		Args:  cobra.NoArgs,
		RunE:  versionCmd.run,
	}

	cmd.Flags().BoolVar(&versionCmd.isJSON, "json", false, "if set, output version information will be in JSON format")

	return cmd
}
