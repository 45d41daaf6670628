// Package batch applies one grid configuration to a whole folder of sprite
// sheets. Every matching image is sliced and exported under a processed/
// root that mirrors the input layout, and one file's failure is recorded in
// the report without stopping the run.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-sprites/edit"
	"badc0de.net/pkg/go-sprites/export"
	"badc0de.net/pkg/go-sprites/sheet"
)

// OutDirName is the folder created under the input root for results. It is
// skipped during discovery so a second run does not ingest its own output.
const OutDirName = "processed"

// DefaultExtensions are the file extensions accepted when Config.Extensions
// is empty. They match the formats the sheet loader decodes.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// Granularity says what one exported strip or animation spans.
type Granularity int

const (
	// WholeSheet exports all frames of a file as a single sequence.
	WholeSheet Granularity = iota
	// PerRow exports each grid row as its own sequence. Sheets that keep
	// one animation per row slice naturally this way.
	PerRow
)

func (g Granularity) String() string {
	switch g {
	case WholeSheet:
		return "sheet"
	case PerRow:
		return "row"
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

// ParseGranularity maps the command line names onto a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sheet":
		return WholeSheet, nil
	case "row":
		return PerRow, nil
	}
	return WholeSheet, errors.Errorf("unknown granularity %q (want sheet or row)", s)
}

// Config drives one batch run.
type Config struct {
	// Root is the folder holding the sheets to process.
	Root string

	// OutRoot overrides the output root. Empty means <Root>/processed.
	OutRoot string

	// Recursive descends into subfolders of Root.
	Recursive bool

	// Extensions are the accepted file extensions, with the leading dot,
	// in any case. Empty means DefaultExtensions.
	Extensions []string

	// Grid is applied to every file. Files whose dimensions cannot hold
	// the grid fail individually.
	Grid sheet.GridSpec

	// ApplyPadding bakes the grid's padding into each sheet before
	// exporting, trimming every frame to its padded interior.
	ApplyPadding bool

	// Kinds are the export kinds produced for each file.
	Kinds []export.Kind

	// Granularity says what one strip or animation spans.
	Granularity Granularity

	// FrameDuration is handed to the animation encoders.
	FrameDuration time.Duration

	// Parallelism bounds how many files are processed at once. Values
	// below one mean one worker per CPU.
	Parallelism int
}

// Result is the outcome for one input file.
type Result struct {
	// Path is the input file, relative to the root.
	Path string

	// Outputs are the files and folders created for this input.
	Outputs []string

	// Err is nil when the file was exported completely.
	Err error
}

// Report collects every file's outcome, ordered by input path.
type Report struct {
	Results []Result
}

// Failed returns the results that carry errors.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Summary returns a one line account of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d files processed, %d failed", len(r.Results), len(r.Failed()))
}

// Run processes every matching file under cfg.Root and reports per-file
// outcomes. Configuration problems surface as an error before any file is
// touched; from then on only context cancellation aborts the run early.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, errors.Wrap(err, "opening batch root")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("batch root %s is not a folder", cfg.Root)
	}
	if err := cfg.Grid.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Kinds) == 0 {
		return nil, errors.New("no export kinds configured")
	}

	outRoot := cfg.OutRoot
	if outRoot == "" {
		outRoot = filepath.Join(cfg.Root, OutDirName)
	}

	files, err := discover(cfg.Root, outRoot, cfg.Recursive, extSet(cfg.Extensions))
	if err != nil {
		return nil, err
	}
	glog.Infof("batch: %d files under %s", len(files), cfg.Root)

	parallel := cfg.Parallelism
	if parallel < 1 {
		parallel = runtime.NumCPU()
	}

	results := make([]Result, len(files))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(parallel)
	for i, rel := range files {
		i, rel := i, rel
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Path: rel, Err: err}
				return err
			}
			outputs, err := processFile(ctx, cfg, rel, outRoot)
			if err != nil {
				glog.Errorf("batch: %s: %s", rel, err)
				results[i] = Result{Path: rel, Outputs: outputs, Err: err}
				return nil
			}
			glog.V(1).Infof("batch: %s: %d outputs", rel, len(outputs))
			results[i] = Result{Path: rel, Outputs: outputs}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return &Report{Results: results}, err
	}
	return &Report{Results: results}, nil
}

func extSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}

// discover lists matching files under root, relative to it and sorted, so
// report order does not depend on worker scheduling.
func discover(root, outRoot string, recursive bool, exts map[string]bool) ([]string, error) {
	var files []string
	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == outRoot {
					return filepath.SkipDir
				}
				return nil
			}
			if !exts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "walking batch root")
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, errors.Wrap(err, "listing batch root")
		}
		for _, e := range entries {
			if e.IsDir() || !exts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// processFile slices one sheet and writes every requested export kind into
// the mirrored folder under outRoot.
func processFile(ctx context.Context, cfg Config, rel, outRoot string) ([]string, error) {
	s, err := sheet.Load(filepath.Join(cfg.Root, rel), cfg.Grid)
	if err != nil {
		return nil, err
	}
	if cfg.ApplyPadding {
		if s, err = edit.ApplyPadding(s); err != nil {
			return nil, err
		}
	}

	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	baseDir := filepath.Join(outRoot, filepath.Dir(rel))
	o := export.Options{FrameDuration: cfg.FrameDuration}

	var outputs []string
	for _, kind := range cfg.Kinds {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		dir := filepath.Join(baseDir, fmt.Sprintf("%s_%s", stem, kind))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return outputs, errors.Wrap(err, "creating output folder")
		}
		created, err := writeKind(s, kind, dir, cfg.Granularity, o)
		outputs = append(outputs, created...)
		if err != nil {
			return outputs, err
		}
	}
	return outputs, nil
}

// writeKind writes one export kind for one sheet and returns the paths it
// created.
func writeKind(s *sheet.Sheet, kind export.Kind, dir string, gran Granularity, o export.Options) ([]string, error) {
	if kind == export.Frames {
		if err := export.WriteFrames(dir, s.AllFrames()); err != nil {
			return nil, err
		}
		return []string{dir}, nil
	}
	if gran == PerRow {
		var outputs []string
		for row := 0; row < s.Grid().Rows; row++ {
			frames, err := s.Row(row)
			if err != nil {
				return outputs, err
			}
			path := filepath.Join(dir, fmt.Sprintf("row_%03d.%s", row, kind.Ext()))
			if err := export.Write(kind, path, frames, o); err != nil {
				return outputs, err
			}
			outputs = append(outputs, path)
		}
		return outputs, nil
	}
	name := "anim"
	if kind == export.Strip {
		name = "strip"
	}
	path := filepath.Join(dir, name+"."+kind.Ext())
	if err := export.Write(kind, path, s.AllFrames(), o); err != nil {
		return nil, err
	}
	return []string{path}, nil
}
