package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded scan runs over HTTP (read-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.Store.Driver, storeDSN())
		if err != nil {
			return eris.Wrap(err, "serve: open store")
		}
		defer func() { _ = st.Close() }()

		mux := newServeMux(st)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}

		return nil
	},
}

// newServeMux builds the read-only results API over the store.
func newServeMux(st store.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /runs", func(w http.ResponseWriter, r *http.Request) {
		runs, err := st.ListRuns(r.Context(), store.RunFilter{Limit: 100})
		if err != nil {
			zap.L().Error("serve: list runs failed", zap.Error(err))
			http.Error(w, `{"error":"list runs failed"}`, http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []model.ScanRun{}
		}
		writeJSON(w, http.StatusOK, runs)
	})

	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		run, err := st.GetRun(r.Context(), r.PathValue("id"))
		if err != nil {
			http.Error(w, `{"error":"run not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	mux.HandleFunc("GET /runs/{id}/records", func(w http.ResponseWriter, r *http.Request) {
		records, err := st.ListRecords(r.Context(), r.PathValue("id"))
		if err != nil {
			zap.L().Error("serve: list records failed", zap.Error(err))
			http.Error(w, `{"error":"list records failed"}`, http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []model.ClinicRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")

	rootCmd.AddCommand(serveCmd)
}
