package internal

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

// InspectRow is one rendered key of the store.
type InspectRow struct {
	Key       string
	Type      string
	Timestamp string
	Owner     string
	Target    string
	Detail    string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// StartDebugServer serves a read-only HTML view of the Badger key space plus
// live engine stats. Listens in the background; never blocks the caller.
func StartDebugServer(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "roster:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}

		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		// Listen on all interfaces so the inspector is reachable over the network.
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

// DefaultMapper understands the engine's key namespaces:
//
//	roster:{self}:{target}            contact entry
//	fav:{self}:{target}               favorite flag
//	msg:{recipient}:{ts19}:{uuid}     message log entry
//	idx:sender:{recipient}:{sender}   sender index
//	profile:{identity}                profile record
func DefaultMapper(key string, val []byte) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:       key,
		Type:      "RAW",
		Timestamp: "--:--:--",
		Owner:     "--------",
		Target:    "--------",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}
	if len(parts) < 2 {
		return row
	}

	row.Type = strings.ToUpper(parts[0])
	switch parts[0] {
	case "roster", "fav":
		if len(parts) >= 3 {
			row.Owner = parts[1]
			row.Target = parts[2]
		}
	case "msg":
		if len(parts) >= 4 {
			row.Owner = parts[1]
			if tsNano, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
				row.Timestamp = time.Unix(0, tsNano).Format("15:04:05")
			}
			row.Target = parts[3]
			if len(row.Target) > 8 {
				row.Target = row.Target[:8]
			}
		}
	case "idx":
		if len(parts) >= 4 {
			row.Owner = parts[2]
			row.Target = parts[3]
		}
	case "profile":
		row.Owner = parts[1]
	}
	return row
}
