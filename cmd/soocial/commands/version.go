package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	cliVersion = version

	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the Soocial CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := soocial.NewRecord()
			info.Set("version", soocial.Scalar(version))
			info.Set("commit", soocial.Scalar(commit))
			info.Set("built", soocial.Scalar(date))

			return renderValue(cmd, soocial.RecordOf(info))
		},
	}
}
