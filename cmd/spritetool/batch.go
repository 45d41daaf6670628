package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites/batch"
	"badc0de.net/pkg/go-sprites/export"
)

var (
	batchRoot   = flag.String("batch", "", "process every sheet under this folder")
	batchOut    = flag.String("batch_out", "", "output root for -batch (default <root>/processed)")
	recursive   = flag.Bool("recursive", false, "descend into subfolders of the -batch root")
	extensions  = flag.String("ext", "", "accepted file extensions for -batch, e.g. \".png,.gif\" (default all decodable)")
	granularity = flag.String("granularity", "sheet", "what one strip or animation spans: sheet or row")
	parallelism = flag.Int("parallel", 0, "how many files -batch processes at once (0 = one per CPU)")
)

// runBatch processes every matching sheet under -batch, prints the report
// and exits nonzero if any file failed. Ctrl-C stops the run between
// files.
func runBatch() {
	kindsFlag := *exportKinds
	if kindsFlag == "" {
		kindsFlag = "frames"
	}
	kinds, err := export.ParseKinds(kindsFlag)
	if err != nil {
		glog.Exitf("error parsing -export: %s", err)
	}
	gran, err := batch.ParseGranularity(*granularity)
	if err != nil {
		glog.Exitf("error parsing -granularity: %s", err)
	}
	var exts []string
	if *extensions != "" {
		exts = strings.Split(*extensions, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := batch.Run(ctx, batch.Config{
		Root:          *batchRoot,
		OutRoot:       *batchOut,
		Recursive:     *recursive,
		Extensions:    exts,
		Grid:          gridSpecFromFlags(),
		ApplyPadding:  *applyPadding,
		Kinds:         kinds,
		Granularity:   gran,
		FrameDuration: time.Duration(*frameMS) * time.Millisecond,
		Parallelism:   *parallelism,
	})
	if rep != nil {
		for _, res := range rep.Results {
			if res.Err != nil {
				glog.Errorf("%s: %s", res.Path, res.Err)
			} else {
				glog.Infof("%s: %d outputs", res.Path, len(res.Outputs))
			}
		}
		fmt.Println(rep.Summary())
	}
	if err != nil {
		glog.Exitf("error running batch: %s", err)
	}
	if len(rep.Failed()) > 0 {
		os.Exit(1)
	}
}
