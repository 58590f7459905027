package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/depp/pbrpack/lib/config"
	"github.com/depp/pbrpack/lib/convert"
	"github.com/depp/pbrpack/lib/getpath"
	"github.com/depp/pbrpack/lib/settings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var globalFlags struct {
	settings string
	envFile  string
	verbose  bool
}

var cfg config.Config

var cmdRoot = cobra.Command{
	Use:           "pbrpack",
	Short:         "Pbrpack converts PBR texture sets to packed DayZ PAA textures.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if globalFlags.verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
		var files []string
		if globalFlags.envFile != "" {
			files = append(files, globalFlags.envFile)
		}
		if err := config.LoadDotEnv(files...); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load()
		return err
	},
}

// openSettings opens the settings store named by the flag, the environment,
// or the default location, in that order.
func openSettings(ctx context.Context) (*settings.Store, error) {
	path := globalFlags.settings
	if path == "" {
		path = cfg.SettingsPath
	}
	if path == "" {
		var err error
		path, err = settings.DefaultPath()
		if err != nil {
			return nil, errors.Wrap(err, "could not find settings location")
		}
	}
	return settings.Open(ctx, getpath.GetPath(path))
}

func main() {
	pf := cmdRoot.PersistentFlags()
	pf.StringVar(&globalFlags.settings, "settings", "", "settings database `file`")
	pf.StringVar(&globalFlags.envFile, "env", "", "load environment from `file` instead of .env")
	pf.BoolVarP(&globalFlags.verbose, "verbose", "v", false, "log debugging information")
	cmdRoot.AddCommand(&cmdConvert, &cmdDetect, &cmdSettings, &cmdReset)
	// The first interrupt cancels the conversion at the next file; the
	// second kills the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := cmdRoot.ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, convert.ErrCancelled) {
			logrus.Warn("conversion cancelled")
			os.Exit(2)
		}
		logrus.Error(err)
		os.Exit(1)
	}
}
