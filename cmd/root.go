package cmd

import (
	"fmt"
	"os"

	"otpctl/pkg/config"
	"otpctl/pkg/graphql"
	"otpctl/pkg/metrics"
	"otpctl/pkg/otp"
	"otpctl/pkg/session"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var apiFlag string

var rootCmd = &cobra.Command{
	Use:   "otpctl",
	Short: "A CLI and TUI for OpenTripPlanner trip queries",
	Long: `otpctl talks to an OpenTripPlanner Transmodel GraphQL API to inspect the
server build and search for trip patterns between two places.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "OTP base URL or path (overrides OTP_API_URL)")
}

// app holds everything a command needs to talk to the backend.
type app struct {
	settings *config.Settings
	logger   *log.Logger
	api      *otp.API
	info     *session.ServerInfoLoader
	trips    *session.TripQuery
}

func newApp() (*app, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	if apiFlag != "" {
		settings.APIURL = apiFlag
	}

	logger := settings.NewLogger()
	collector := metrics.NewCollector()
	if settings.MetricsAddr != "" {
		collector.Serve(settings.MetricsAddr, logger)
	}

	client := graphql.NewClient(settings.Endpoint(),
		graphql.WithTimeout(settings.HTTPTimeout),
		graphql.WithMaxRetries(settings.MaxRetries),
		graphql.WithLogger(logger),
		graphql.WithObserver(collector),
	)
	logger.Debug("using endpoint", "url", client.Endpoint())

	api := otp.NewAPI(client)

	return &app{
		settings: settings,
		logger:   logger,
		api:      api,
		info:     session.NewServerInfoLoader(api),
		trips: session.NewTripQuery(api,
			session.WithLogger(logger),
			session.WithObserver(collector),
			session.WithCache(settings.CacheSize, settings.CacheTTL),
		),
	}, nil
}
