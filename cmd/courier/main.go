// Command courier sends notification messages through configured transport
// bridges from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tphakala/courier"
	"github.com/tphakala/courier/bridge/discord"
	"github.com/tphakala/courier/bridge/freemobile"
	"github.com/tphakala/courier/bridge/gatewayapi"
	"github.com/tphakala/courier/bridge/mqttbridge"
	"github.com/tphakala/courier/bridge/shoutrrr"
	"github.com/tphakala/courier/bridge/slack"
	"github.com/tphakala/courier/bridge/telegram"
	"github.com/tphakala/courier/bridge/twilio"
	"github.com/tphakala/courier/internal/conf"
	"github.com/tphakala/courier/internal/httpclient"
	"github.com/tphakala/courier/internal/logging"
)

// appContext carries the shared state built once in the root command's
// PersistentPreRunE and used by every subcommand.
type appContext struct {
	settings *conf.Settings
	logger   *slog.Logger
	client   *httpclient.Client
	registry *courier.Registry
	closeLog func() error
}

func main() {
	ctx := &appContext{}

	var configPath string
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "courier",
		Short:         "Courier notification CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := conf.Load(configPath)
			if err != nil {
				return err
			}
			if debug {
				settings.Debug = true
				settings.Log.Level = "debug"
			}
			ctx.settings = settings
			ctx.logger, ctx.closeLog = logging.Init(&logging.Config{
				Level:      settings.Log.Level,
				File:       settings.Log.File,
				MaxSizeMB:  settings.Log.MaxSizeMB,
				MaxBackups: settings.Log.MaxBackups,
			})
			ctx.client = httpclient.New(&httpclient.Config{
				DefaultTimeout: settings.HTTP.Timeout,
			})
			ctx.registry = newRegistry(ctx.client)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if ctx.client != nil {
				ctx.client.Close()
			}
			if ctx.closeLog != nil {
				_ = ctx.closeLog()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default searches for courier.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug output")

	rootCmd.AddCommand(setupSendCommand(ctx), setupTransportsCommand(ctx))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRegistry registers every bridge factory. HTTP bridges share one pooled
// client.
func newRegistry(client *httpclient.Client) *courier.Registry {
	return courier.NewRegistry(
		gatewayapi.NewFactory(client),
		twilio.NewFactory(client),
		telegram.NewFactory(client),
		slack.NewFactory(client),
		discord.NewFactory(client),
		freemobile.NewFactory(client),
		mqttbridge.NewFactory(),
		shoutrrr.NewFactory(),
	)
}

func setupSendCommand(ctx *appContext) *cobra.Command {
	var kind string
	var to string
	var dsn string

	cmd := &cobra.Command{
		Use:   "send [message body]",
		Short: "Dispatch one message through the configured transports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsns := ctx.settings.Transports
			if dsn != "" {
				dsns = []string{dsn}
			}
			if len(dsns) == 0 {
				return fmt.Errorf("no transports configured, set transports in the config file or pass --transport")
			}

			dispatcher, err := ctx.registry.DispatcherFromDSNs(dsns)
			if err != nil {
				return err
			}
			dispatcher.SetLogger(ctx.logger)

			var msg *courier.Message
			switch strings.ToLower(kind) {
			case "sms":
				msg = courier.NewSMS(to, args[0])
			case "chat":
				msg = courier.NewChat(to, args[0])
			default:
				return fmt.Errorf("unknown message kind %q, expected sms or chat", kind)
			}

			sent, err := dispatcher.Send(cmd.Context(), msg)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent via %s", sent.Transport)
			if sent.ProviderID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (provider id %s)", sent.ProviderID)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "chat", "Message kind, sms or chat")
	cmd.Flags().StringVar(&to, "to", "", "Recipient, phone number or channel")
	cmd.Flags().StringVar(&dsn, "transport", "", "Send through this transport DSN instead of the configured ones")

	return cmd
}

func setupTransportsCommand(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transports",
		Short: "List configured transports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ctx.settings.Transports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no transports configured")
				return nil
			}
			for _, s := range ctx.settings.Transports {
				t, err := ctx.registry.FromDSN(s)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), t.String())
			}
			return nil
		},
	}
}
