package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"

	checkLatest bool
)

// SetVersion sets the build information reported by the version command
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "primectl %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)

		if !checkLatest {
			return nil
		}

		latest, newer, err := latestRelease(cmd.Context(), cfg.Update.Repository)
		if err != nil {
			return err
		}
		if newer {
			fmt.Fprintf(cmd.OutOrStdout(), "A newer version is available: %s (run 'primectl update')\n", latest.Version())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "You are running the latest version")
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update primectl to the latest release",
	PersistentPreRunE: loadSettings,
	RunE:              runUpdate,
}

func init() {
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check for a newer release")
	rootCmd.AddCommand(versionCmd, updateCmd)
}

// currentVersion parses the build version. Development builds have none.
func currentVersion() (semver.Version, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("running a development build (%s): %w", version, err)
	}
	return v, nil
}

// latestRelease looks up the newest release of repository and reports
// whether it is newer than the running build
func latestRelease(ctx context.Context, repository string) (*selfupdate.Release, bool, error) {
	current, err := currentVersion()
	if err != nil {
		return nil, false, err
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
	if err != nil {
		return nil, false, fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return nil, false, fmt.Errorf("latest version for %s/%s could not be found from github repository %s", runtime.GOOS, runtime.GOARCH, repository)
	}

	latestVersion, err := semver.ParseTolerant(latest.Version())
	if err != nil {
		return nil, false, fmt.Errorf("invalid release version %q: %w", latest.Version(), err)
	}

	logger.Debug().
		Str("current", current.String()).
		Str("latest", latestVersion.String()).
		Str("repository", repository).
		Msg("Release lookup")

	return latest, latestVersion.GT(current), nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	latest, newer, err := latestRelease(cmd.Context(), cfg.Update.Repository)
	if err != nil {
		return err
	}
	if !newer {
		logger.Info().Str("version", version).Msg("Already up to date")
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return errors.New("could not locate executable path")
	}

	logger.Info().
		Str("from", version).
		Str("to", latest.Version()).
		Msg("Updating")

	if err := selfupdate.UpdateTo(cmd.Context(), latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	logger.Info().Str("version", latest.Version()).Msg("Successfully updated")
	return nil
}
