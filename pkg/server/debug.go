package server

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/matst80/slask-wardrobe/pkg/catalog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DebugMux serves health, metrics and pprof on the internal listener.
func DebugMux(snapshot *catalog.Snapshot) *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if snapshot != nil && snapshot.Updated().IsZero() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("catalog not loaded"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.HandleFunc("/health/catalog", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(snapshot.Updated().Format(time.RFC3339)))
	})
	srv.Handle("/metrics", promhttp.Handler())
	srv.HandleFunc("/debug/pprof/", pprof.Index)
	srv.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	srv.HandleFunc("/debug/pprof/profile", pprof.Profile)
	srv.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	srv.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return srv
}
