package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites/session"
)

// The edit flags are repeatable and remembered in command line order, so
// "-dup_row 0 -del_col 2" duplicates first and deletes from the result.

type editOp struct {
	kind string
	a, b int
}

var editOps []editOp

type editOpFlag struct {
	kind   string
	coords bool
}

func (f editOpFlag) String() string { return "" }

func (f editOpFlag) Set(v string) error {
	if f.coords {
		r, c, err := parseCoord(v)
		if err != nil {
			return err
		}
		editOps = append(editOps, editOp{kind: f.kind, a: r, b: c})
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrapf(err, "bad -%s value %q", f.kind, v)
	}
	editOps = append(editOps, editOp{kind: f.kind, a: n})
	return nil
}

func registerEditFlag(kind, usage string, coords bool) {
	flag.Var(editOpFlag{kind: kind, coords: coords}, kind, usage+" (repeatable; applied in flag order)")
}

func init() {
	registerEditFlag("dup_row", "duplicate row N below itself", false)
	registerEditFlag("del_row", "delete row N", false)
	registerEditFlag("dup_col", "duplicate column N to its right", false)
	registerEditFlag("del_col", "delete column N", false)
	registerEditFlag("insert_row_after", "insert a blank row below row N", false)
	registerEditFlag("insert_col_after", "insert a blank column right of column N", false)
	registerEditFlag("dup_frame", "duplicate frame \"r,c\" (single row sheets)", true)
	registerEditFlag("del_frame", "delete frame \"r,c\" (single row sheets)", true)
}

func applyEdits(sess *session.Session) error {
	for _, op := range editOps {
		var err error
		switch op.kind {
		case "dup_row":
			err = sess.DuplicateRow(op.a)
		case "del_row":
			err = sess.DeleteRow(op.a)
		case "dup_col":
			err = sess.DuplicateColumn(op.a)
		case "del_col":
			err = sess.DeleteColumn(op.a)
		case "insert_row_after":
			err = sess.InsertRowAfter(op.a)
		case "insert_col_after":
			err = sess.InsertColumnAfter(op.a)
		case "dup_frame":
			err = sess.DuplicateFrame(op.a, op.b)
		case "del_frame":
			err = sess.DeleteFrame(op.a, op.b)
		default:
			err = fmt.Errorf("unknown edit op %s", op.kind)
		}
		if err != nil {
			return errors.Wrapf(err, "applying -%s", op.kind)
		}
		glog.V(1).Infof("applied -%s %d,%d", op.kind, op.a, op.b)
	}
	return nil
}
