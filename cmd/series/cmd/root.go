package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "series",
		Short: "Truncated power series evaluator",
		Long: `series evaluates fixed-order truncated Maclaurin series.

Functions:
  pow        x^n by repeated multiplication
  factorial  n!
  exp        sum x^i/i!, i = 0..n
  sin        sum (-1)^i x^(2i+1)/(2i+1)!, i = 0..n
  cos        sum (-1)^i x^(2i)/(2i)!, i = 0..n

Configuration is read from SERIES_ prefixed environment variables.`,
		SilenceUsage: true,
	}
	root.AddCommand(newEvalCmd(), newServeCmd())
	return root
}

func Execute() error {
	return rootCmd.Execute()
}
