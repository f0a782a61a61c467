package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	config "github.com/satsangkankpul/donation-services/configs"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/app"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "ctl"

var Version = "dev"

// openStores is swapped in tests.
var openStores = func(ctx context.Context) (*app.Stores, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.OpenStores(ctx, cfg)
}

func main() {
	config.LoadEnv(SERVICE_NAME)

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "donationctl",
		Short:         "Operator tool for the donation service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.WarnLevel
			if verbose {
				level = log.DebugLevel
			}
			log.SetLevel(level)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(adminCmd())
	rootCmd.AddCommand(donationsCmd())
	rootCmd.AddCommand(signatureCmd())
	rootCmd.AddCommand(eventsCmd())

	return rootCmd
}
