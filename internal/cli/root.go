package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"lab1_calc/internal/config"
)

// RootOptions — глобальные флаги, общие для всех команд.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand создаёт корневую команду lab1.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lab1",
		Short: "Защищённые вычисления лабораторной работы 1",
		Long: `Вычисляет S(x, y, z) и сумму по 11 точкам данных с проверкой
входов и особых точек. Может работать как HTTP-сервер.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("неверный формат %q: допустимо %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "подробный вывод")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "формат вывода (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "путь к YAML-конфигурации")

	cmd.AddCommand(NewSingleCommand(opts))
	cmd.AddCommand(NewSumCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "ошибка конфигурации", err)
	}
	return cfg, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
