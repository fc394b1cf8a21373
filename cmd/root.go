package cmd

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "intranet",
		Short:         "Intranet client toolkit",
		Long:          "Date helpers, API calls and toast notifications for the company intranet.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newFechaCmd())
	cmd.AddCommand(newAPICmd())
	cmd.AddCommand(newNotifyCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
