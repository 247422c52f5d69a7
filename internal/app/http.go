package app

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fedisync/pkg/store"
)

// setupRoutes registers the operational endpoints on the router.
func (a *App) setupRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", a.readyzHandler).Methods(http.MethodGet)
	r.HandleFunc("/statusz", a.statuszHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// healthzHandler handles the /healthz liveness endpoint.
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{\"status\":\"ok\"}"))
}

// readyzHandler reports readiness once the store is open.
func (a *App) readyzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !store.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("{\"status\":\"not ready\"}"))
		return
	}
	w.WriteHeader(http.StatusOK)
	ver := a.version
	if ver == "" {
		ver = "dev"
	}
	_, _ = w.Write([]byte("{\"status\":\"ok\",\"version\":\"" + ver + "\"}"))
}

// statuszHandler reports cache population counts per record kind.
func (a *App) statuszHandler(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	for name, prefix := range map[string]string{
		"persons":     "person:",
		"communities": "community:",
		"posts":       "post:",
		"comments":    "comment:",
		"feeds":       "feed:",
	} {
		n, err := store.CountPrefix(prefix)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		counts[name] = n
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(counts)
}

// startHTTP builds the handler, starts the status server in a goroutine
// and returns a channel that will carry any server error.
func (a *App) startHTTP() <-chan error {
	r := mux.NewRouter()
	a.setupRoutes(r)

	a.srv = &http.Server{Addr: a.addr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		err := a.srv.ListenAndServe()
		if err == http.ErrServerClosed {
			err = nil
		}
		errCh <- err
	}()
	return errCh
}
