package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/todoapp/core/internal/client"
	"github.com/todoapp/core/internal/client/tui"
	"github.com/todoapp/core/internal/infrastructure/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "Terminal client for the todo API",
		Long:  `A terminal todo client. Talks to the todo API using a persistent per-device identifier and keeps working against a local mirror when the backend is unreachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClient()
		},
	}

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

func runClient() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	mirror, err := client.NewMirror(cfg.Client.StateDir)
	if err != nil {
		return fmt.Errorf("open state dir: %w", err)
	}

	deviceID, err := mirror.DeviceID()
	if err != nil {
		return fmt.Errorf("resolve device id: %w", err)
	}

	api := client.NewHTTPClient(cfg.Client.ServerURL, cfg.Client.RequestTimeout)

	vm := client.NewViewModel(api, mirror, deviceID)
	vm.Load(context.Background())

	p := tea.NewProgram(tui.New(vm), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	return nil
}
