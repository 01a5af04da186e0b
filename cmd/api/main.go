package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/todoapp/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todo-api",
		Short: "Device-scoped todo API server",
		Long:  `A REST backend for a personal todo list. Requests are scoped by an opaque per-device identifier; each device sees only its own todos.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
