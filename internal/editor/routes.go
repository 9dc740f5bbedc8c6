package editor

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// OpenPath is the endpoint the page bootstrap calls on click.
const OpenPath = "/__open-in-editor"

// RegisterRoutes mounts the open-in-editor endpoint on the given router.
func RegisterRoutes(r chi.Router, l *Launcher) {
	r.Get(OpenPath, handleOpen(l))
}

// handleOpen is completion-only: the page learns that the request was
// accepted, never whether the launch worked. Launch failures are logged
// server-side where the developer is anyway.
func handleOpen(l *Launcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		file := q.Get("file")
		if file == "" {
			http.Error(w, "file parameter is required", http.StatusBadRequest)
			return
		}
		line, _ := strconv.Atoi(q.Get("line"))
		column, _ := strconv.Atoi(q.Get("column"))

		if err := l.Open(file, line, column); err != nil {
			log.Printf("editor: open %s:%d:%d: %v", file, line, column, err)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
