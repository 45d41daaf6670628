package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/go-sprites/web"
)

var (
	serveAddr      = flag.String("serve", "", "start the browser preview server on this address, e.g. localhost:8099")
	gridColorFlag  = flag.String("grid_color", "", "grid overlay color as #rrggbb")
	debugWebServer = flag.String("debug_web_server_listen_address", "", "where the debug server will listen")
)

// runServe keeps the browser preview of -in up until interrupted.
func runServe() {
	figure.NewFigure("spritetool", "", true).Print()

	sess := loadSession()
	h := web.NewHandler(sess)
	if *gridColorFlag != "" {
		c, err := parseHexColor(*gridColorFlag)
		if err != nil {
			glog.Exitf("error parsing -grid_color: %s", err)
		}
		h.SetGridColor(c)
	}

	if *debugWebServer != "" {
		http.HandleFunc("/debug/minimetrics", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "runtime.NumGoroutine(): %d\n", runtime.NumGoroutine())
		})
		go http.ListenAndServe(*debugWebServer, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := web.Serve(ctx, *serveAddr, h); err != nil {
		glog.Exitf("error serving: %s", err)
	}
}

// parseHexColor parses "#rrggbb" into an opaque color.
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, errors.Errorf("want #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "bad hex color %q", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}
