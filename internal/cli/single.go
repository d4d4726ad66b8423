package cli

import (
	"github.com/spf13/cobra"

	"lab1_calc/internal/evaluator"
	"lab1_calc/internal/history"
)

type singleOptions struct {
	x, y, z string
}

func NewSingleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &singleOptions{}

	cmd := &cobra.Command{
		Use:   "single --x X --y Y --z Z",
		Short: "Вычислить S(x, y, z)",
		Long: `Вычисляет S = (x - 2.24*y*z/x - 5) / (x - y + 1.6*z) + 12*x.

x = 0 и нулевой знаменатель дают ошибку DomainViolation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.x, "x", "", "значение x")
	cmd.Flags().StringVar(&opts.y, "y", "", "значение y")
	cmd.Flags().StringVar(&opts.z, "z", "", "значение z")

	return cmd
}

func runSingle(rootOpts *RootOptions, opts *singleOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	formatter := newFormatter(rootOpts, cmd)

	res := evaluator.EvaluateSingle(evaluator.Text(opts.x), evaluator.Text(opts.y), evaluator.Text(opts.z))
	saveRecord(cmd.Context(), cfg, formatter, history.VariantSingle, []string{opts.x, opts.y, opts.z}, res)

	return formatter.Result(res)
}
