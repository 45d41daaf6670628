package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites/export"
	"badc0de.net/pkg/go-sprites/selection"
	"badc0de.net/pkg/go-sprites/session"
)

// runExport slices -in with the configured grid, applies scripted edits,
// selects the requested scope and writes every -export kind under -out.
func runExport() {
	sess := loadSession()
	if err := applyEdits(sess); err != nil {
		glog.Exitf("error applying edits: %s", err)
	}
	if *applyPadding {
		if err := sess.ApplyPadding(); err != nil {
			glog.Exitf("error applying padding: %s", err)
		}
	}
	glog.Infof("%s", sess.Describe())

	if *exportKinds == "" {
		return
	}
	kinds, err := export.ParseKinds(*exportKinds)
	if err != nil {
		glog.Exitf("error parsing -export: %s", err)
	}
	if err := selectScope(sess); err != nil {
		glog.Exitf("error selecting frames: %s", err)
	}
	glog.Infof("%s", sess.Describe())

	o := export.Options{FrameDuration: time.Duration(*frameMS) * time.Millisecond}
	for _, kind := range kinds {
		dest := exportDest(kind)
		if err := sess.ExportSelection(kind, dest, o); err != nil {
			glog.Exitf("error exporting %s: %s", kind, err)
		}
		glog.Infof("wrote %s", dest)
	}
}

// exportDest maps a kind to its output path under -out, matching the batch
// layout: a frames/ folder, strip.png, anim.gif, anim.png.
func exportDest(kind export.Kind) string {
	switch kind {
	case export.Frames:
		return filepath.Join(*outDir, "frames")
	case export.Strip:
		return filepath.Join(*outDir, "strip.png")
	case export.GIF:
		return filepath.Join(*outDir, "anim.gif")
	}
	return filepath.Join(*outDir, "anim.png")
}

// selectScope turns the -row/-col/-frames flags into a selection. Without
// any of them the whole sheet is selected in reading order.
func selectScope(sess *session.Session) error {
	switch {
	case *frameList != "":
		for _, part := range strings.Split(*frameList, ";") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			r, c, err := parseCoord(part)
			if err != nil {
				return err
			}
			if err := sess.Click(r, c, selection.Ctrl|selection.Shift); err != nil {
				return err
			}
		}
	case *rowSel >= 0:
		return sess.Click(*rowSel, 0, selection.Shift)
	case *colSel >= 0:
		return sess.Click(0, *colSel, selection.Ctrl)
	default:
		for _, c := range sess.Grid().Coords() {
			if err := sess.Click(c.Row, c.Col, selection.Ctrl|selection.Shift); err != nil {
				return err
			}
		}
	}
	return nil
}
