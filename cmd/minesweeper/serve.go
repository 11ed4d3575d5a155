package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ynifamily3/minesweeper/server"
)

var (
	addr      string
	staticDir string
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game API and static front end over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "0.0.0.0:8080", "Listen address")
	serveCmd.Flags().StringVar(&staticDir, "static", "static", "Directory with html, js and wasm files")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := cfg.Logger()

	srv, err := server.NewServer(newController(cfg), cfg, log)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	srv.Register(mux)
	// staticフォルダの中身（html, js, wasm）をそのまま配信する
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Wrap(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.WithField("addr", cfg.Addr).WithField("static", cfg.StaticDir).Info("listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
