package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/dlyt/notify"
)

var checkOnly bool

// updateCmd replaces the running binary with the latest release
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update dlyt to the latest release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := semver.ParseTolerant(version); err != nil {
			return fmt.Errorf("development build %q cannot be updated, install a release instead", version)
		}

		ctx := cmd.Context()
		latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(cfg.Update.Repository))
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		if !found {
			return fmt.Errorf("no release found for this platform in %s", cfg.Update.Repository)
		}

		logger.Debug().
			Str("current", version).
			Str("latest", latest.Version()).
			Msg("Checked for updates")

		if latest.LessOrEqual(version) {
			sink.Notify(fmt.Sprintf("dlyt %s is up to date", version), notify.KindInfo)
			return nil
		}
		if checkOnly {
			sink.Notify(fmt.Sprintf("dlyt %s is available", latest.Version()), notify.KindInfo)
			return nil
		}

		exe, err := selfupdate.ExecutablePath()
		if err != nil {
			return fmt.Errorf("could not locate executable: %w", err)
		}
		if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
			return fmt.Errorf("failed to update: %w", err)
		}

		sink.Notify(fmt.Sprintf("Updated to %s", latest.Version()), notify.KindSuccess)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
}
