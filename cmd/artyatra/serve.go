package main

import (
	"github.com/spf13/cobra"

	"github.com/artyatra/artyatra/config"
	"github.com/artyatra/artyatra/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig(cfgPath)
		return server.Run(cmd.Context(), cfg)
	},
}
