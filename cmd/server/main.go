package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "medreminder",
		Short:        "Medication and water intake reminder server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 不带子命令时直接启动服务
			return runServe(cmd)
		},
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dueCmd())
	return rootCmd
}
