package conn

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rowdb/rowdb/internal/db"
	"github.com/rowdb/rowdb/pkg"
)

type postHandlerFunc func(*db.Store, []byte) Response

func writeResponse(w http.ResponseWriter, res Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		pkg.ErrorLog("writing response", err)
	}
}

func postHandler(store *db.Store, handler postHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeResponse(w, NewErrorResponse(http.StatusMethodNotAllowed, "method not allowed"))
			return
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeResponse(w, NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}

		writeResponse(w, handler(store, raw))
	}
}

var index_template = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>rowdb</title></head>
<body>
<h1>rowdb</h1>
{{if not .}}<p>No tables.</p>{{end}}
{{range .}}<h2>{{.Name}}</h2>
<table border="1">
<tr>{{range .Columns}}<th>{{.Key}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .Values}}<td>{{.String}}</td>{{end}}</tr>
{{end}}</table>
{{end}}</body>
</html>
`))

func indexHandler(store *db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := index_template.Execute(w, store.GetAll()); err != nil {
			pkg.ErrorLog("rendering index", err)
		}
	}
}

// NewMux wires every endpoint onto a fresh mux so tests can serve it
// from httptest.
func NewMux(store *db.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/tables", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeResponse(w, NewErrorResponse(http.StatusMethodNotAllowed, "method not allowed"))
			return
		}
		writeResponse(w, ListTablesReqHandler(store))
	})

	mux.HandleFunc("/create", postHandler(store, CreateReqHandler))
	mux.HandleFunc("/create_table", postHandler(store, CreateTableReqHandler))
	mux.HandleFunc("/drop_table", postHandler(store, DropTableReqHandler))
	mux.HandleFunc("/rename_table", postHandler(store, RenameTableReqHandler))
	mux.HandleFunc("/insert_column", postHandler(store, InsertColumnReqHandler))
	mux.HandleFunc("/insert_row", postHandler(store, InsertRowReqHandler))
	mux.HandleFunc("/select", postHandler(store, SelectReqHandler))
	mux.HandleFunc("/update_table", postHandler(store, UpdateTableReqHandler))

	mux.HandleFunc("/ws", wsHandler(store))

	mux.HandleFunc("/", indexHandler(store))

	return mux
}

// Listen serves until SIGINT/SIGTERM, then shuts the server down and
// writes one final snapshot. A background ticker also persists whenever
// the collection changed since the last write.
func Listen(store *db.Store, port int) {
	exit := make(chan os.Signal, 2)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	s := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: NewMux(store),
	}

	go func() {
		err := s.ListenAndServe()
		if err != http.ErrServerClosed {
			pkg.FatalLog(err)
		}
	}()

	go func() {
		if store.WriteSettings.InMem {
			return
		}

		ticker := time.NewTicker(store.WriteSettings.WriteInterval)
		defer ticker.Stop()

		last_write := time.Now()
		for range ticker.C {
			if store.ChangedSince(last_write) {
				if err := store.WriteToFile(); err != nil {
					pkg.ErrorLog(err)
					continue
				}
				last_write = time.Now()
			}
		}
	}()

	pkg.InfoLog("rowdb listening on port", port)
	<-exit
	pkg.DebugLog("Shutting down...")
	s.Shutdown(context.Background())
	closeWsConns()
	if err := store.WriteToFile(); err != nil {
		pkg.ErrorLog(err)
	}
}
