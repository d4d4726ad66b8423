package main

import (
	"fmt"
	"os"

	"lab1_calc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// результат вычисления уже выведен форматтером
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Ошибка:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
