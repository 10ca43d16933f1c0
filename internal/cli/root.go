package cli

import (
	"context"
	"os"

	"github.com/caarlos0/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aexvir/allure"
	"github.com/aexvir/allure/binary"
	"github.com/aexvir/allure/internal/paths"
)

func Execute(version string, exit func(int), args []string) {
	// enable colored output on ci
	if os.Getenv("CI") != "" {
		color.NoColor = false
	}

	layout, err := paths.Resolve()
	if err != nil {
		log.WithError(err).Error("failed to resolve install location")
		exit(1)
		return
	}

	origin := binary.RemoteArchive(allure.CatalogURL, allure.ArchiveURLFormat, nil)
	newRootCmd(version, exit, layout, origin).Execute(args)
}

func (cmd *rootCmd) Execute(args []string) {
	cmd.cmd.SetArgs(args)

	if err := cmd.cmd.Execute(); err != nil {
		code, msg := exitDetails(err)
		log.WithError(err).Error(msg)
		cmd.exit(code)
	}
}

type rootCmd struct {
	cmd  *cobra.Command
	opts rootOpts
	exit func(int)

	layout paths.Layout
	origin binary.Origin
}

type rootOpts struct {
	debug    bool
	cacheDir string
	pin      string
	semver   bool
	stream   bool
}

func newRootCmd(version string, exit func(int), layout paths.Layout, origin binary.Origin) *rootCmd {
	root := &rootCmd{
		exit:   exit,
		layout: layout,
		origin: origin,
	}
	cmd := &cobra.Command{
		Use:           "allure",
		Short:         "Download and run the allure commandline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if root.opts.debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logs enabled, version: %s", version)
				log.WithField("cache", root.opts.cacheDir).
					WithField("pin", root.opts.pin).
					WithField("semver", root.opts.semver).
					Debug("settings")
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&root.opts.debug, "debug", false, "Enable debug mode")
	cmd.PersistentFlags().StringVar(&root.opts.cacheDir, "cache-dir", layout.Dist, "Directory the allure distribution is downloaded to")
	cmd.PersistentFlags().StringVar(&root.opts.pin, "pin", allure.PinnedVersion, "Version to use unless a newer release exists")
	cmd.PersistentFlags().BoolVar(&root.opts.semver, "semver", false, "Compare versions segment by segment")
	cmd.PersistentFlags().BoolVar(&root.opts.stream, "stream", false, "Stream allure output instead of printing it once finished")
	cmd.AddCommand(
		newReportCmd(root, "generate", "Generate a report").cmd,
		newReportCmd(root, "serve", "Serve a report").cmd,
		newOpenCmd(root).cmd,
		newVersionsCmd(root).cmd,
	)

	root.cmd = cmd
	return root
}

// binary describes the allure distribution according to the flags.
func (r *rootCmd) binary() (*binary.Binary, error) {
	options := []binary.Option{
		binary.WithCacheRoot(r.opts.cacheDir),
		binary.WithOverrideVersion(allure.OverrideVersion),
	}
	if r.opts.semver {
		options = append(options, binary.WithSemanticComparison())
	}

	return binary.New(allure.ToolName, r.opts.pin, r.origin, options...)
}

// invoke makes sure allure is available and runs it with args.
func (r *rootCmd) invoke(cmd *cobra.Command, args []string) error {
	tool, err := r.binary()
	if err != nil {
		return err
	}

	var path string
	launcher := allure.New(
		allure.WithPreExecFunc(func(ctx context.Context) error {
			var err error
			path, err = tool.Ensure(ctx)
			if err != nil {
				return wrapErrorWithCode(err, 1, "failed to provision allure")
			}
			return nil
		}),
	)

	return launcher.Execute(
		cmd.Context(),
		func(ctx context.Context) error {
			log.Debugf("running %s %v", path, args)
			if r.opts.stream {
				err := allure.Run(ctx, path,
					allure.WithArgs(args...),
					allure.WithStdOut(cmd.OutOrStdout()),
					allure.WithStdIn(cmd.InOrStdin()),
					allure.WithAllowErrors(),
				)
				if err != nil {
					return wrapErrorWithCode(err, 127, "failed to run allure")
				}
				return nil
			}

			stdout, stderr, err := allure.Capture(ctx, path, allure.WithArgs(args...))
			if err != nil {
				return wrapErrorWithCode(err, 127, "failed to run allure")
			}
			if _, err := cmd.OutOrStdout().Write(stdout); err != nil {
				return err
			}
			_, err = cmd.ErrOrStderr().Write(stderr)
			return err
		},
	)
}
