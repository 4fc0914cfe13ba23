// Command vera is the interactive front end for the assistant core. It wires
// the configuration, custom command store, reminder scheduler, and dispatcher
// together and runs either a readline REPL or a single command passed as
// arguments.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vera/internal/commands"
	"vera/internal/config"
	"vera/internal/dispatch"
	"vera/internal/logging"
	"vera/internal/nlu"
	"vera/internal/reminder"
	"vera/internal/session"
	"vera/internal/speech"
)

const version = "0.1.0"

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var metricsAddr string

	rootCmd := &cobra.Command{
		Use:   "vera [command text]",
		Short: "Rule-based voice assistant command interpreter",
		Long: "Vera interprets natural-language commands: time and date queries, web\n" +
			"search, weather, reminders, smart home control, and user-defined custom\n" +
			"commands. Without arguments it starts an interactive session.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.shutdown()

			if metricsAddr != "" {
				go serveMetrics(metricsAddr, a.logger)
			}
			if len(args) > 0 {
				return runOnce(cmd.Context(), a, strings.Join(args, " "))
			}
			return runInteractive(cmd.Context(), a)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file path (default ~/.vera/config.json)")
	flags.String("name", "", "Display name used in responses")
	flags.String("location", "", "Default location for weather queries")
	flags.String("commands-file", "", "Custom commands file (YAML)")
	flags.String("log-file", "", "Log file path (logging disabled when empty)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")

	viper.SetEnvPrefix("VERA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"config", "name", "location", "commands-file", "log-file", "log-level"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCommandsCommand())
	return rootCmd
}

// app bundles the wired session components.
type app struct {
	cfg        config.Config
	dispatcher *dispatch.Dispatcher
	scheduler  *reminder.Scheduler
	speaker    speech.Speaker
	logger     logging.Logger
	closeLog   func() error
}

func (a *app) shutdown() {
	a.scheduler.Stop()
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

// speakerNotifier delivers fired reminders through the speech output, which
// serializes concurrent writes.
type speakerNotifier struct {
	speaker speech.Speaker
}

func (n speakerNotifier) Notify(text string) { n.speaker.Say(text) }

func buildApp() (*app, error) {
	cfg, err := config.Load(
		config.WithPath(viper.GetString("config")),
		config.WithOverrides(func(c *config.Config) {
			if v := viper.GetString("name"); v != "" {
				c.User.Name = v
			}
			if v := viper.GetString("location"); v != "" {
				c.User.DefaultLocation = v
			}
			if v := viper.GetString("commands-file"); v != "" {
				c.CommandsFile = v
			}
			if v := viper.GetString("log-file"); v != "" {
				c.LogFile = v
			}
			if v := viper.GetString("log-level"); v != "" {
				c.LogLevel = v
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	var logger logging.Logger = logging.Nop()
	var closeLog func() error
	if cfg.LogFile != "" {
		fileLogger, err := logging.NewFileLogger(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger = fileLogger.WithComponent("vera")
		closeLog = fileLogger.Close
	}

	registry, err := commands.LoadFile(cfg.CommandsFile)
	if err != nil {
		return nil, fmt.Errorf("load custom commands: %w", err)
	}

	speaker := speech.NewConsole(os.Stdout, green("Vera: "))
	scheduler := reminder.NewScheduler(
		reminder.Config{MaxPending: cfg.MaxReminders},
		speakerNotifier{speaker: speaker},
		logger,
	)
	for _, t := range cfg.Triggers {
		err := scheduler.RegisterTrigger(reminder.Trigger{
			Name:     t.Name,
			Schedule: t.Schedule,
			Message:  t.Message,
		})
		if err != nil {
			logger.Warn("skipping trigger %q: %v", t.Name, err)
		}
	}
	scheduler.Start(context.Background())

	dispatcher := dispatch.New(dispatch.Options{
		Classifier:  nlu.NewClassifier(cfg.IntentCacheSize),
		Tracker:     session.NewTracker(cfg.HistorySize),
		Registry:    registry,
		Reminders:   scheduler,
		Preferences: cfg.User,
		Logger:      logger,
	})

	return &app{
		cfg:        cfg,
		dispatcher: dispatcher,
		scheduler:  scheduler,
		speaker:    speaker,
		logger:     logger,
		closeLog:   closeLog,
	}, nil
}

func runOnce(ctx context.Context, a *app, input string) error {
	act := a.dispatcher.Handle(ctx, input)
	if act.Response != "" {
		a.speaker.Say(act.Response)
	}
	return nil
}

func serveMetrics(addr string, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server: %v", err)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vera %s\n", version)
		},
	}
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.WithPath(viper.GetString("config")))
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, args []string) {
			path := viper.GetString("config")
			if path == "" {
				path = config.DefaultPath()
			}
			fmt.Println(path)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("config")
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.Load(config.WithPath(path))
			if err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Println("wrote " + path)
			return nil
		},
	})

	return cmd
}

func newCommandsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Manage user-defined custom commands",
	}

	commandsFile := func() (string, error) {
		cfg, err := config.Load(config.WithPath(viper.GetString("config")))
		if err != nil {
			return "", err
		}
		if v := viper.GetString("commands-file"); v != "" {
			return v, nil
		}
		if cfg.CommandsFile == "" {
			return "", fmt.Errorf("no commands file configured; pass --commands-file or set commands_file in the config")
		}
		return cfg.CommandsFile, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered trigger phrases",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := commandsFile()
			if err != nil {
				return err
			}
			registry, err := commands.LoadFile(path)
			if err != nil {
				return err
			}
			for _, trigger := range registry.Triggers() {
				response, _ := registry.Response(trigger)
				fmt.Printf("%s %s %s\n", bold(trigger), gray("->"), response)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <trigger> <response>",
		Short: "Register a custom command and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := commandsFile()
			if err != nil {
				return err
			}
			registry, err := commands.LoadFile(path)
			if err != nil {
				return err
			}
			confirmation := registry.Register(args[0], args[1])
			if err := commands.SaveFile(path, registry); err != nil {
				return err
			}
			fmt.Println(confirmation)
			return nil
		},
	})

	return cmd
}
