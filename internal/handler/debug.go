package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fastopp/fastopp/internal/config"
	"github.com/fastopp/fastopp/internal/db"
)

// DebugHandler exposes deployment troubleshooting endpoints, enabled in
// development only. They report configuration and schema state, never
// secrets.
type DebugHandler struct {
	db  *sqlx.DB
	cfg *config.Config
}

func NewDebugHandler(database *sqlx.DB, cfg *config.Config) *DebugHandler {
	return &DebugHandler{db: database, cfg: cfg}
}

func (h *DebugHandler) Simple(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "working",
		"message":   "Debug endpoint is accessible",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Database reports where the database lives and whether it is writable,
// which is the usual failure mode on ephemeral-filesystem platforms.
func (h *DebugHandler) Database(w http.ResponseWriter, r *http.Request) {
	info := map[string]any{
		"driver":      h.cfg.DBDriver,
		"environment": h.cfg.AppEnv,
		"upload_dir":  h.cfg.UploadDir,
	}

	if h.cfg.DBDriver == "sqlite" {
		path := db.Path(h.cfg.DBConnection)
		info["database_path"] = path

		fi, err := os.Stat(path)
		info["database_exists"] = err == nil
		if err == nil {
			info["database_size_bytes"] = fi.Size()
		}

		info["directory_writable"] = dirWritable(filepath.Dir(path))
	}

	writeJSON(w, http.StatusOK, info)
}

// DatabaseData lists tables and row counts so a fresh deployment can
// verify that migrations and seed data actually landed.
func (h *DebugHandler) DatabaseData(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tableNames()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}

	counts := map[string]any{}
	for _, table := range tables {
		var count int
		err = h.db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %q", table))
		if err != nil {
			counts[table] = "error: " + err.Error()
			continue
		}
		counts[table] = count
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tables_found": tables,
		"table_counts": counts,
		"total_tables": len(tables),
	})
}

func (h *DebugHandler) tableNames() ([]string, error) {
	query := `SELECT name FROM sqlite_master WHERE type='table' ORDER BY name`
	if h.cfg.DBDriver != "sqlite" {
		query = `SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename`
	}

	var tables []string
	err := h.db.Select(&tables, query)
	return tables, err
}

func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, "write_check_*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
