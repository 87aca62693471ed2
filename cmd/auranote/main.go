// AuraNote - заметки из системного трея.
//
// Работает в системном трее, Ctrl+Alt+K показывает и скрывает окно заметки.
// Заметки сохраняются markdown-файлами в выбранной папке.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"auranote/internal/app"
	"auranote/internal/config"
	"auranote/internal/dialog"
	"auranote/internal/hotkey"
	"auranote/internal/i18n"
	"auranote/internal/notes"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

type options struct {
	locale   string
	logLevel string
}

func main() {
	var opts options

	cmd := &cli.Command{
		Name:    "auranote",
		Usage:   "Tray-resident quick note capture",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "locale",
				Usage:       "UI language (pt-BR or en), overrides LANG",
				Sources:     cli.EnvVars("AURANOTE_LOCALE"),
				Destination: &opts.locale,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level (debug, info, warn, error)",
				Value:       "info",
				Sources:     cli.EnvVars("AURANOTE_LOG_LEVEL"),
				Destination: &opts.logLevel,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, setupLogger(opts.logLevel)
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runTray(opts)
		},
		Commands: []*cli.Command{
			{
				Name:  "save",
				Usage: "Save standard input as a note",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return saveStdin(opts, os.Stdin, os.Stdout)
				},
			},
			{
				Name:  "dir",
				Usage: "Print the notes directory",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := config.New()
					if err != nil {
						return err
					}
					fmt.Fprintln(os.Stdout, store.SaveDirectory())
					return nil
				},
				Commands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Change the notes directory",
						ArgsUsage: "<path>",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							path := cmd.Args().First()
							if path == "" {
								return errors.New("missing <path>")
							}
							store, err := config.New()
							if err != nil {
								return err
							}
							if err := store.SetSaveDirectory(path); err != nil {
								return err
							}
							fmt.Fprintln(os.Stdout, store.SaveDirectory())
							return nil
						},
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("Ошибка")
		os.Exit(1)
	}
}

func setupLogger(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Caller().Logger()
	return nil
}

func runTray(opts options) error {
	log.Info().Str("version", Version).Msg("AuraNote запускается...")

	var runErr error
	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(func() {
		application, err := app.New(app.Options{Locale: opts.locale})
		if err != nil {
			runErr = err
			return
		}
		runErr = application.Run()
	})

	if runErr != nil {
		var startupErr *app.StartupError
		if errors.As(runErr, &startupErr) {
			dialog.ShowError("AuraNote", startupErr.Message)
		} else {
			dialog.ShowError("AuraNote", runErr.Error())
		}
		return runErr
	}
	return nil
}

// saveStdin сохраняет заметку тем же путём, что и окно.
func saveStdin(opts options, in io.Reader, out io.Writer) error {
	content, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	store, err := config.New()
	if err != nil {
		return err
	}

	locale := i18n.Resolve()
	if saved := store.Locale(); saved != "" {
		locale = i18n.Parse(saved)
	}
	if opts.locale != "" {
		locale = i18n.Parse(opts.locale)
	}
	tr := i18n.New(locale)

	path, err := notes.New(store, tr.T("file.note_prefix")).Save(string(content))
	if err != nil {
		return fmt.Errorf("%s: %w", tr.T("error.save_note"), err)
	}
	if path == "" {
		log.Info().Msg("Пустая заметка не сохранена")
		return nil
	}
	fmt.Fprintln(out, path)
	return nil
}
