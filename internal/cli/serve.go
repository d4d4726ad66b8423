package cli

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lab1_calc/internal/config"
	"lab1_calc/internal/dataset"
	"lab1_calc/internal/server"
	"lab1_calc/internal/sse"
)

type serveOptions struct {
	addr string
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "адрес для прослушивания (по умолчанию addr из конфигурации)")

	return cmd
}

func runServe(rootOpts *RootOptions, opts *serveOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if rootOpts.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "ошибка конфигурации", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "журнал", err)
	}
	defer store.Close()

	srv := server.New(server.Options{
		Store:        store,
		Hub:          sse.NewHub(16),
		Fetcher:      &dataset.Fetcher{Client: http.DefaultClient, URL: cfg.Data.URL},
		Logger:       logger,
		Limit:        cfg.History.Limit,
		FetchTimeout: cfg.Data.Timeout,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("history store", "driver", cfg.History.Driver, "path", cfg.History.Path)
	if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
		return WrapExitError(ExitCommandError, "сервер", err)
	}
	return nil
}
