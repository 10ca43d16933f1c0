package cli

import (
	"fmt"
	"sort"

	"github.com/caarlos0/log"
	"github.com/fatih/color"
	"github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

type versionsCmd struct {
	cmd *cobra.Command
}

func newVersionsCmd(root *rootCmd) *versionsCmd {
	cmd := &cobra.Command{
		Use:           "versions",
		Aliases:       []string{"ls"},
		Short:         "List the allure versions available for download",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := root.origin.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			latest, err := cat.Latest()
			if err != nil {
				log.WithError(err).Debug("catalog has no release")
			}

			out := cmd.OutOrStdout()
			for _, v := range sortVersions(cat.Supported()) {
				var marks string
				if v == latest {
					marks += color.GreenString(" (latest)")
				}
				if v == root.opts.pin {
					marks += color.CyanString(" (pinned)")
				}
				fmt.Fprintf(out, " %s%s\n", v, marks)
			}
			return nil
		},
	}

	return &versionsCmd{cmd: cmd}
}

// sortVersions orders versions from oldest to newest; the ones that can't be
// parsed keep their original order at the end.
func sortVersions(versions []string) []string {
	type parsed struct {
		raw string
		ver *version.Version
	}

	var valid []parsed
	var invalid []string
	for _, raw := range versions {
		ver, err := version.NewVersion(raw)
		if err != nil {
			invalid = append(invalid, raw)
			continue
		}
		valid = append(valid, parsed{raw: raw, ver: ver})
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].ver.LessThan(valid[j].ver)
	})

	sorted := make([]string, 0, len(versions))
	for _, p := range valid {
		sorted = append(sorted, p.raw)
	}
	return append(sorted, invalid...)
}
