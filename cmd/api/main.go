package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowops/api/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowops",
		Short: "FlowOps API Server",
		Long:  `FlowOps is a project and task management platform with built-in time tracking and dashboard aggregation.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
