package main

import (
	"fmt"
	"os"

	"attrition-go/internal/config"
	logger "attrition-go/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var projectRoot string

	root := &cobra.Command{
		Use:           "attrition",
		Short:         "Employee attrition survey service",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(projectRoot)
		},
	}
	root.PersistentFlags().StringVar(&projectRoot, "root", ".", "Project root holding the config directory")

	root.AddCommand(newServeCmd(&projectRoot))
	root.AddCommand(newCreateAdminCmd(&projectRoot))
	root.AddCommand(newScoreCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap(projectRoot string) (*zap.Logger, error) {
	bootLog, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := config.Init(projectRoot, bootLog); err != nil {
		return nil, err
	}
	log, err := logger.Init(config.Conf.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
