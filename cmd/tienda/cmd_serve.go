package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldeanavidad/tienda/internal/server"
)

// tienda serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := server.New()
		if err != nil {
			return err
		}
		return srv.Run()
	},
}

// tienda route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := server.New()
		if err != nil {
			return err
		}
		for _, route := range srv.Router().Routes() {
			fmt.Printf("%-7s %-40s %s\n", route.Method, route.Path, route.Name)
		}
		return nil
	},
}
