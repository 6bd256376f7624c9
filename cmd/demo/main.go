// Command demo exercises the dispatch engine from the command line: a
// runnable Window walkthrough and a validator for declarative bundle
// tables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/comalice/statefulx"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	cmd := &cli.Command{
		Name:  "statefulx",
		Usage: "State-pattern behavioral dispatch demo",
		Commands: []*cli.Command{
			windowCmd(logger),
			validateCmd(logger),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

type window struct {
	title string
}

func windowCmd(logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "window",
		Usage: "Run the Active/Inactive window walkthrough",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			active := statefulx.NewBundle[*window]("Active").
				Default().
				Op("rightClick", func(w *window, args ...any) (any, error) {
					fmt.Println("right clicked")
					return nil, nil
				})
			inactive := statefulx.NewBundle[*window]("Inactive").
				Op("rightClick", func(w *window, args ...any) (any, error) {
					return nil, nil
				})

			typ, err := statefulx.DeclareOwnerType("Window", active, inactive)
			if err != nil {
				return err
			}

			w := typ.Bind(&window{title: "demo"})
			logger.Info().Str("bundle", w.ActiveBundle().Name()).Msg("window bound")

			if _, err := w.Invoke("rightClick"); err != nil {
				return err
			}

			if err := w.Transition("Inactive"); err != nil {
				return err
			}
			logger.Info().Str("bundle", w.ActiveBundle().Name()).Msg("transitioned")
			w.Invoke("rightClick") // suppressed

			if err := w.Transition("Active"); err != nil {
				return err
			}
			logger.Info().Str("bundle", w.ActiveBundle().Name()).Msg("transitioned")
			if _, err := w.Invoke("rightClick"); err != nil {
				return err
			}

			// Expected failure paths, surfaced rather than hidden.
			if _, err := w.Invoke("doubleClick"); err != nil {
				logger.Warn().Err(err).Msg("dispatch rejected")
			}
			if err := w.Transition("Minimized"); err != nil {
				logger.Warn().Err(err).Msg("transition rejected")
			}
			return nil
		},
	}
}

func validateCmd(logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a declarative owner-type table (.yaml, .yml, .toml)",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("expected exactly one file argument", 2)
			}
			path := cmd.Args().First()

			cfg, err := statefulx.LoadOwnerTypeConfigFile(path)
			if err != nil {
				return err
			}

			logger.Info().
				Str("owner_type", cfg.Name).
				Int("bundles", len(cfg.Bundles)).
				Msg("declaration is valid")
			for name, b := range cfg.Bundles {
				logger.Info().
					Str("bundle", name).
					Bool("default", b.Default).
					Strs("operations", b.Operations).
					Msg("bundle")
			}
			return nil
		},
	}
}
