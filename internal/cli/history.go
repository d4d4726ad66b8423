package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lab1_calc/internal/config"
	"lab1_calc/internal/evaluator"
	"lab1_calc/internal/history"
	"lab1_calc/internal/report"
)

type historyOptions struct {
	limit int
	csv   bool
}

func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Показать журнал вычислений (history.driver: sqlite)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "сколько записей показать (по умолчанию history.limit)")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "вывести в CSV")

	return cmd
}

func runHistory(rootOpts *RootOptions, opts *historyOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	if cfg.History.Driver != config.DriverSQLite {
		return NewExitError(ExitCommandError, "журнал доступен только при history.driver: sqlite")
	}

	store, err := openStore(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "журнал", err)
	}
	defer store.Close()

	limit := cfg.History.Limit
	if opts.limit > 0 {
		limit = opts.limit
	}
	recs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "журнал", err)
	}

	formatter := newFormatter(rootOpts, cmd)
	switch {
	case opts.csv:
		return history.WriteCSV(formatter.Writer, recs)
	case formatter.Format == "json":
		if recs == nil {
			recs = []history.Record{}
		}
		return formatter.Success(recs)
	}

	for _, rec := range recs {
		fmt.Fprintf(formatter.Writer, "%s  %-6s  %s  %s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04:05"), rec.Variant, rec.ID, report.Text(rec.Result()))
	}
	return nil
}

// openStore открывает журнал по конфигурации.
func openStore(cfg config.Config) (history.Store, error) {
	if cfg.History.Driver == config.DriverSQLite {
		return history.OpenSQLite(cfg.History.Path)
	}
	return history.NewMemoryStore(), nil
}

// saveRecord пишет вычисление в журнал, если он хранится в SQLite.
// Сбой журнала не меняет результат команды.
func saveRecord(ctx context.Context, cfg config.Config, f *OutputFormatter, variant history.Variant, inputs []string, res evaluator.Result) {
	if cfg.History.Driver != config.DriverSQLite {
		return
	}
	store, err := history.OpenSQLite(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(f.ErrWriter, "предупреждение: журнал недоступен: %v\n", err)
		return
	}
	defer store.Close()

	rec := history.NewRecord(variant, inputs, res)
	if err := store.Save(ctx, rec); err != nil {
		fmt.Fprintf(f.ErrWriter, "предупреждение: запись в журнал: %v\n", err)
		return
	}
	f.VerboseLog("Запись журнала: %s", rec.ID)
}
