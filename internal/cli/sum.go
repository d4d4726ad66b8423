package cli

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"lab1_calc/internal/dataset"
	"lab1_calc/internal/evaluator"
	"lab1_calc/internal/history"
	"lab1_calc/internal/report"
)

type sumOptions struct {
	file string
	url  string
}

func NewSumCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &sumOptions{}

	cmd := &cobra.Command{
		Use:   "sum [a0 ... a10]",
		Short: "Вычислить сумму cos(2a)/(1 - sin(2a)) по 11 точкам",
		Long: `Вычисляет S = Σ cos(2·a_i) / (1 - sin(2·a_i)), i = 1..11.

Значения берутся из аргументов, из файла (--file) или загружаются
по URL (--url, по умолчанию data.url из конфигурации).
Первая особая точка прерывает вычисление.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "файл с данными")
	cmd.Flags().StringVar(&opts.url, "url", "", "URL файла с данными")
	cmd.MarkFlagsMutuallyExclusive("file", "url")

	return cmd
}

func runSum(rootOpts *RootOptions, opts *sumOptions, cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	formatter := newFormatter(rootOpts, cmd)

	var tokens []string
	switch {
	case len(args) > 0:
		if opts.file != "" || opts.url != "" {
			return NewExitError(ExitCommandError, "значения в аргументах нельзя сочетать с --file или --url")
		}
		tokens = args
	case opts.file != "":
		tokens, err = dataset.ReadFile(opts.file)
		if err != nil {
			return WrapExitError(ExitCommandError, "чтение данных", err)
		}
	default:
		url := cfg.Data.URL
		if opts.url != "" {
			url = opts.url
		}
		formatter.VerboseLog("Загрузка данных: %s", url)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Data.Timeout)
		defer cancel()
		f := &dataset.Fetcher{Client: http.DefaultClient, URL: url}
		tokens, err = f.Fetch(ctx)
		if err != nil {
			res := evaluator.Failure(err)
			saveRecord(cmd.Context(), cfg, formatter, history.VariantSum, nil, res)
			return formatter.Result(res)
		}
	}

	formatter.VerboseLog("%s", report.Inputs(evaluator.SumPrefix, tokens))

	res := evaluator.EvaluateSum(evaluator.Texts(tokens...))
	saveRecord(cmd.Context(), cfg, formatter, history.VariantSum, tokens, res)

	return formatter.Result(res)
}
