package main

import (
	"github.com/drakos74/free-spline/internal/metrics"
	"github.com/drakos74/free-spline/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveKey  stored
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a fitted surface over http",
	Long:  "Expose evaluation, intersection and the fit report of a stored surface, together with the metrics.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveKey.flags(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := serveKey.load()
	if err != nil {
		return err
	}
	srv := server.NewServer("spline", servePort)
	if debug {
		srv = srv.Debug()
	}
	return srv.
		Add(server.Live()).
		Add(server.SurfaceRoutes(s, debug)...).
		Handle(metrics.Path, metrics.Handler()).
		Run()
}
