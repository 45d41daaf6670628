// Package web serves one editing session over HTTP so a sheet can be
// previewed in a browser: the current buffer with optional zoom and grid
// overlay, individual frames, row and column cutouts, row animations, and
// a JSON manifest with per-frame thumbnails.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-sprites/datafiles"
	"badc0de.net/pkg/go-sprites/export"
	"badc0de.net/pkg/go-sprites/session"
	"badc0de.net/pkg/go-sprites/sheet"
)

// thumbEdge is the bounding box for manifest thumbnails.
const thumbEdge = 32

type Handler struct {
	mu   sync.Mutex
	sess *session.Session

	gridColor color.RGBA
}

// NewHandler constructs a web handler over the passed session. The handler's
// lock guards the session; do not mutate it elsewhere while the server runs.
func NewHandler(sess *session.Session) *Handler {
	h := &Handler{
		sess:      sess,
		gridColor: color.RGBA{0x20, 0x20, 0x20, 0xff},
	}
	return h
}

// SetGridColor changes the color of the grid overlay lines.
func (h *Handler) SetGridColor(c color.RGBA) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gridColor = c
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, datafiles.ViewerHTML())
}

func (h *Handler) sheetHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	zoom := 1
	if z := r.URL.Query().Get("zoom"); z != "" {
		z2, _ := strconv.Atoi(z)
		// ignore invalid zoom
		switch z2 {
		case 1, 2, 4, 6:
			zoom = z2
		}
	}
	withGrid := r.URL.Query().Get("grid") == "1"

	generation := 1 // bump if the way we generate it changes
	mime := "image/png"
	etag := fmt.Sprintf(`W/"sheet:%d:%08x:%d:%t:%s"`, generation, h.sess.Signature(), zoom, withGrid, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var img image.Image = h.sess.Sheet().Image()
	if withGrid {
		img = h.overlayGrid(h.sess.Sheet().Image(), h.sess.Grid())
	}
	if zoom > 1 {
		b := img.Bounds()
		img = resize.Resize(uint(b.Dx()*zoom), uint(b.Dy()*zoom), img, resize.NearestNeighbor)
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

// overlayGrid draws the frame boundaries over a copy of img.
func (h *Handler) overlayGrid(img *image.RGBA, g sheet.Grid) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, image.Point{}, draw.Src)
	lc := image.NewUniform(h.gridColor)
	for _, r := range g.Frames() {
		draw.Draw(out, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), lc, image.Point{}, draw.Over)
		draw.Draw(out, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), lc, image.Point{}, draw.Over)
		draw.Draw(out, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), lc, image.Point{}, draw.Over)
		draw.Draw(out, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), lc, image.Point{}, draw.Over)
	}
	return out
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	vars := mux.Vars(r)
	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		http.Error(w, "row not a number", http.StatusBadRequest)
		return
	}
	col, err := strconv.Atoi(vars["col"])
	if err != nil {
		http.Error(w, "col not a number", http.StatusBadRequest)
		return
	}

	frame, err := h.sess.Sheet().Frame(row, col)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	generation := 1 // bump if the way we generate it changes
	mime := "image/png"
	etag := fmt.Sprintf(`W/"frame:%d:%08x:%d.%d:%s"`, generation, h.sess.Signature(), row, col, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	png.Encode(w, frame)
}

func (h *Handler) rowHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	vars := mux.Vars(r)
	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		http.Error(w, "row not a number", http.StatusBadRequest)
		return
	}

	img, err := h.sess.Sheet().RowImage(row)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	generation := 1 // bump if the way we generate it changes
	mime := "image/png"
	etag := fmt.Sprintf(`W/"row:%d:%08x:%d:%s"`, generation, h.sess.Signature(), row, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

func (h *Handler) colHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	vars := mux.Vars(r)
	col, err := strconv.Atoi(vars["col"])
	if err != nil {
		http.Error(w, "col not a number", http.StatusBadRequest)
		return
	}

	img, err := h.sess.Sheet().ColumnImage(col)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	generation := 1 // bump if the way we generate it changes
	mime := "image/png"
	etag := fmt.Sprintf(`W/"col:%d:%08x:%d:%s"`, generation, h.sess.Signature(), col, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

// animOptions reads the ?ms= frame duration override.
func animOptions(r *http.Request) export.Options {
	var o export.Options
	if ms := r.URL.Query().Get("ms"); ms != "" {
		ms2, _ := strconv.Atoi(ms)
		// ignore invalid ms
		if ms2 > 0 {
			o.FrameDuration = time.Duration(ms2) * time.Millisecond
		}
	}
	return o
}

func (h *Handler) rowGIFHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	vars := mux.Vars(r)
	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		http.Error(w, "row not a number", http.StatusBadRequest)
		return
	}

	frames, err := h.sess.Sheet().Row(row)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	o := animOptions(r)

	generation := 1 // bump if the way we generate it changes
	mime := "image/gif"
	etag := fmt.Sprintf(`W/"rowgif:%d:%08x:%d:%d:%s"`, generation, h.sess.Signature(), row, o.FrameDuration, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var buf bytes.Buffer
	if err := export.EncodeGIF(&buf, frames, o); err != nil {
		glog.Errorf("error encoding row %d gif: %s", row, err)
		http.Error(w, "failed to encode gif", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) rowAPNGHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	vars := mux.Vars(r)
	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		http.Error(w, "row not a number", http.StatusBadRequest)
		return
	}

	frames, err := h.sess.Sheet().Row(row)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	o := animOptions(r)

	generation := 1 // bump if the way we generate it changes
	mime := "image/apng"
	etag := fmt.Sprintf(`W/"rowapng:%d:%08x:%d:%d:%s"`, generation, h.sess.Signature(), row, o.FrameDuration, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var buf bytes.Buffer
	if err := export.EncodeAPNG(&buf, frames, o); err != nil {
		glog.Errorf("error encoding row %d apng: %s", row, err)
		http.Error(w, "failed to encode apng", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type manifestFrame struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Selected bool   `json:"selected"`
	Thumb    string `json:"thumb"`
}

type manifest struct {
	Rows          int             `json:"rows"`
	Cols          int             `json:"cols"`
	CellW         int             `json:"cell_w"`
	CellH         int             `json:"cell_h"`
	PadX          int             `json:"pad_x"`
	PadY          int             `json:"pad_y"`
	SelectionMode string          `json:"selection_mode"`
	Selection     []sheet.Coord   `json:"selection"`
	Frames        []manifestFrame `json:"frames"`
}

func (h *Handler) manifestHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.sess.Grid()
	sel := h.sess.SelectedCells()

	generation := 1 // bump if the way we generate it changes
	mime := "application/json"
	etag := fmt.Sprintf(`W/"manifest:%d:%08x:%s:%v:%s"`, generation, h.sess.Signature(), h.sess.SelectionMode(), sel, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	m := manifest{
		Rows:          g.Rows,
		Cols:          g.Cols,
		CellW:         g.CellW,
		CellH:         g.CellH,
		PadX:          g.PadX,
		PadY:          g.PadY,
		SelectionMode: h.sess.SelectionMode().String(),
		Selection:     sel,
		Frames:        make([]manifestFrame, 0, g.FrameCount()),
	}
	for _, c := range g.Coords() {
		frame, err := h.sess.Sheet().FrameAt(c)
		if err != nil {
			glog.Errorf("error extracting frame %v for manifest: %s", c, err)
			http.Error(w, "failed to extract frame", http.StatusInternalServerError)
			return
		}
		thumb, err := thumbDataURL(frame)
		if err != nil {
			glog.Errorf("error encoding thumb %v for manifest: %s", c, err)
			http.Error(w, "failed to encode thumb", http.StatusInternalServerError)
			return
		}
		m.Frames = append(m.Frames, manifestFrame{
			Row:      c.Row,
			Col:      c.Col,
			Selected: h.sess.Selected(c.Row, c.Col),
			Thumb:    thumb,
		})
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=0, must-revalidate")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(&m)
}

// thumbDataURL shrinks a frame into a data: URL a viewer can inline.
func thumbDataURL(frame *image.RGBA) (string, error) {
	thumb := resize.Thumbnail(thumbEdge, thumbEdge, frame, resize.NearestNeighbor)
	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return "", err
	}
	return dataurl.New(buf.Bytes(), "image/png").String(), nil
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/sheet.png", h.sheetHandler)
	r.HandleFunc("/frame/{row:[0-9]+}-{col:[0-9]+}.png", h.frameHandler)
	r.HandleFunc("/row/{row:[0-9]+}.png", h.rowHandler)
	r.HandleFunc("/row/{row:[0-9]+}.gif", h.rowGIFHandler)
	r.HandleFunc("/row/{row:[0-9]+}.apng", h.rowAPNGHandler)
	r.HandleFunc("/col/{col:[0-9]+}.png", h.colHandler)
	r.HandleFunc("/manifest.json", h.manifestHandler)
}
