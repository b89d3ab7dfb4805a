package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/archive"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/server"
)

var serveFlags struct {
	addr string
	out  string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a written snapshot directory over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.Open(serveFlags.out)
		if err != nil {
			slog.Warn("run archive unavailable, /runs disabled", "error", err)
			store = nil
		} else {
			defer store.Close()
		}

		r := server.New(serveFlags.out, store)
		slog.Info("serving snapshot", "addr", serveFlags.addr, "dir", serveFlags.out)
		return r.Run(serveFlags.addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveFlags.out, "out", "analysis", "snapshot directory to serve")
}
