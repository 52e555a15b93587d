package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dora-network/series-utils/config"
	"github.com/dora-network/series-utils/evaluator"
	"github.com/dora-network/series-utils/stringify"
)

type evalFlags struct {
	function string
	mode     string
	order    uint
	x        float64
	asJSON   bool
}

func newEvalCmd() *cobra.Command {
	var f evalFlags
	c := &cobra.Command{
		Use:   "eval",
		Short: "Evaluates one series and prints the result",
		Example: `  series eval --function exp --order 10 --x 1
  series eval --function sin --order 9 --x 1.5707963267948966 --mode decimal --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEval(cmd, f)
		},
	}
	c.Flags().StringVarP(&f.function, "function", "f", string(evaluator.FunctionExp), "pow, factorial, exp, sin or cos")
	c.Flags().StringVarP(&f.mode, "mode", "m", string(evaluator.ModeFloat), "float or decimal")
	c.Flags().UintVarP(&f.order, "order", "n", 10, "truncation order")
	c.Flags().Float64VarP(&f.x, "x", "x", 0, "evaluation argument")
	c.Flags().BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	return c
}

func runEval(cmd *cobra.Command, f evalFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	e := evaluator.New(evaluator.WithMaxOrder(cfg.MaxOrder))
	res, err := e.Evaluate(evaluator.Request{
		Function: evaluator.Function(f.function),
		Mode:     evaluator.Mode(f.mode),
		Order:    f.order,
		X:        f.x,
	})
	if err != nil {
		return err
	}

	if f.asJSON {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}

	line, err := stringify.Text(res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
	return err
}
