package web

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Serve runs the preview server on addr until ctx is canceled, logging
// requests to stderr in combined log format. A canceled context drains
// in-flight requests before returning.
func Serve(ctx context.Context, addr string, h *Handler) error {
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    addr,
		Handler: handlers.CombinedLoggingHandler(os.Stderr, r),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	glog.Infof("preview server listening on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		glog.Infof("preview server shutting down")
		return srv.Shutdown(shutCtx)
	}
}
