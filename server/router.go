package server

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"intranet/middleware"
	"intranet/system"
	"intranet/ws"
)

type Deps struct {
	Handler   *system.Handler
	Hub       *ws.Hub
	Logger    *zap.Logger
	StaticDir string
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := mux.NewRouter()
	r.Use(middleware.Logging(logger), middleware.Metrics)

	r.HandleFunc("/ws", d.Hub.HandleWS)
	r.HandleFunc("/notify", d.Handler.Notify).Methods("POST")
	r.HandleFunc("/health", d.Handler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	//  Stylesheet and toast renderer for browsers subscribing to /ws
	if d.StaticDir != "" {
		if info, err := os.Stat(d.StaticDir); err == nil && info.IsDir() {
			r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir))))
		} else {
			logger.Warn("static directory not found", zap.String("dir", d.StaticDir))
		}
	}

	return r
}
