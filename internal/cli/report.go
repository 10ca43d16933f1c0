package cli

import (
	"github.com/spf13/cobra"

	"github.com/aexvir/allure"
)

type reportCmd struct {
	cmd *cobra.Command
}

// newReportCmd builds the commands that turn a results directory into a report.
func newReportCmd(root *rootCmd, name, short string) *reportCmd {
	cmd := &cobra.Command{
		Use:           name + " <dir>",
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.invoke(cmd, reportArgs(name, args[0]))
		},
	}

	return &reportCmd{cmd: cmd}
}

type openCmd struct {
	cmd *cobra.Command
}

func newOpenCmd(root *rootCmd) *openCmd {
	cmd := &cobra.Command{
		Use:           "open [dir]",
		Short:         "Open a generated report",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := root.layout.Report
			if len(args) > 0 && args[0] != "" {
				dir = args[0]
			}
			return root.invoke(cmd, openArgs(dir))
		},
	}

	return &openCmd{cmd: cmd}
}

func reportArgs(command, dir string) []string {
	return []string{command, dir, "-o", allure.ReportDir, "--clean"}
}

func openArgs(dir string) []string {
	return []string{"open", dir}
}
