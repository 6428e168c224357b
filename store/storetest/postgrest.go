// Package storetest provides an in-memory PostgREST server for exercising the
// rest store with the real postgrest-go client.
//
// It understands the subset of the PostgREST protocol the store uses: eq
// filters, order, limit, embedded selects along <table>_id foreign keys, and
// insert/update with return=representation.
package storetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
)

// Row is a table row as PostgREST sees it: decoded JSON.
type Row = map[string]interface{}

type failure struct {
	status  int
	code    string
	message string
}

// Server is an in-memory PostgREST.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	tables   map[string][]Row
	failures map[string]failure
	requests []string
	delay    time.Duration
	base     time.Time
	seq      int
}

// NewServer starts a server that is closed when t finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		tables:   make(map[string][]Row),
		failures: make(map[string]failure),
		base:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// RESTClient returns a postgrest-go client pointed at the server.
func (s *Server) RESTClient() *postgrest.Client {
	return postgrest.NewClient(s.URL+"/rest/v1", "", map[string]string{
		"apikey":        "test-key",
		"Authorization": "Bearer test-key",
	})
}

// Seed inserts rows into table. Each row may be a model struct or a Row; missing
// ids and timestamps are assigned. It returns the stored rows.
func (s *Server) Seed(t testing.TB, table string, rows ...interface{}) []Row {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Row
	for _, v := range rows {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("storetest: marshal seed row: %v", err)
		}
		var row Row
		if err := json.Unmarshal(raw, &row); err != nil {
			t.Fatalf("storetest: unmarshal seed row: %v", err)
		}
		out = append(out, s.insertLocked(table, row))
	}
	return out
}

// Fail makes every request with method against table fail with a PostgREST error.
func (s *Server) Fail(method, table string, status int, code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+table] = failure{status: status, code: code, message: message}
}

// SetDelay delays every response by d.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Rows returns a copy of the rows currently stored in table.
func (s *Server) Rows(table string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		out = append(out, copyRow(row))
	}
	return out
}

// Requests returns "METHOD /path?query" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	table := path.Base(r.URL.Path)

	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
	delay := s.delay
	fail, failing := s.failures[r.Method+" "+table]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if failing {
		writeError(w, fail.status, fail.code, fail.message)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleSelect(w, r, table)
	case http.MethodPost:
		s.handleInsert(w, r, table)
	case http.MethodPatch:
		s.handleUpdate(w, r, table)
	default:
		writeError(w, http.StatusMethodNotAllowed, "PGRST000", "method not supported by storetest")
	}
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, table string) {
	query := r.URL.Query()

	s.mu.Lock()
	rows := filterRows(s.tables[table], query)
	sortRows(rows, query.Get("order"))
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err == nil && n < len(rows) {
			rows = rows[:n]
		}
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.project(row, query.Get("select")))
	}
	s.mu.Unlock()

	if strings.Contains(r.Header.Get("Accept"), "vnd.pgrst.object") {
		if len(out) != 1 {
			writeError(w, http.StatusNotAcceptable, "PGRST116", "JSON object requested, multiple (or no) rows returned")
			return
		}
		writeJSON(w, http.StatusOK, out[0])
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request, table string) {
	rows, err := decodeBody(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "PGRST102", err.Error())
		return
	}
	s.mu.Lock()
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.insertLocked(table, row))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, table string) {
	patches, err := decodeBody(r.Body)
	if err != nil || len(patches) != 1 {
		writeError(w, http.StatusBadRequest, "PGRST102", "invalid update body")
		return
	}
	patch := patches[0]
	query := r.URL.Query()

	s.mu.Lock()
	out := []Row{}
	for _, row := range s.tables[table] {
		if !matches(row, query) {
			continue
		}
		for k, v := range patch {
			row[k] = v
		}
		out = append(out, copyRow(row))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) insertLocked(table string, row Row) Row {
	if id, ok := row["id"].(string); !ok || id == "" || id == uuid.Nil.String() {
		row["id"] = uuid.NewString()
	}
	if ts, ok := row["created_at"].(string); !ok || ts == "" || strings.HasPrefix(ts, "0001-01-01") {
		s.seq++
		row["created_at"] = s.base.Add(time.Duration(s.seq) * time.Second).Format(time.RFC3339Nano)
	}
	if ts, ok := row["updated_at"].(string); !ok || ts == "" || strings.HasPrefix(ts, "0001-01-01") {
		row["updated_at"] = row["created_at"]
	}
	s.tables[table] = append(s.tables[table], row)
	return copyRow(row)
}

// project applies a PostgREST select list, resolving embedded resources.
func (s *Server) project(row Row, selectList string) Row {
	if selectList == "" {
		selectList = "*"
	}
	out := Row{}
	for _, item := range splitSelect(selectList) {
		switch {
		case item == "*":
			for k, v := range row {
				out[k] = v
			}
		case strings.HasSuffix(item, ")") && strings.Contains(item, "("):
			open := strings.Index(item, "(")
			name := item[:open]
			columns := item[open+1 : len(item)-1]
			out[name] = s.embed(row, name, columns)
		default:
			out[item] = row[item]
		}
	}
	return out
}

func (s *Server) embed(row Row, table, columns string) interface{} {
	fk, ok := row[strings.TrimSuffix(table, "s")+"_id"].(string)
	if !ok {
		return nil
	}
	for _, candidate := range s.tables[table] {
		if candidate["id"] == fk {
			return s.project(candidate, columns)
		}
	}
	return nil
}

func splitSelect(list string) []string {
	var items []string
	depth, start := 0, 0
	for i, r := range list {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	return append(items, strings.TrimSpace(list[start:]))
}

var reservedParams = map[string]bool{"select": true, "order": true, "limit": true, "offset": true, "on_conflict": true}

func filterRows(rows []Row, query map[string][]string) []Row {
	out := []Row{}
	for _, row := range rows {
		if matches(row, query) {
			out = append(out, copyRow(row))
		}
	}
	return out
}

func matches(row Row, query map[string][]string) bool {
	for column, values := range query {
		if reservedParams[column] || strings.Contains(column, ".") {
			continue
		}
		for _, value := range values {
			op, operand, ok := strings.Cut(value, ".")
			if !ok {
				continue
			}
			equal := stringify(row[column]) == operand
			switch op {
			case "eq":
				if !equal {
					return false
				}
			case "neq":
				if equal {
					return false
				}
			}
		}
	}
	return true
}

func sortRows(rows []Row, order string) {
	if order == "" {
		return
	}
	first, _, _ := strings.Cut(order, ",")
	parts := strings.Split(first, ".")
	column := parts[0]
	desc := len(parts) > 1 && parts[1] == "desc"
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := stringify(rows[i][column]), stringify(rows[j][column])
		ta, errA := time.Parse(time.RFC3339Nano, a)
		tb, errB := time.Parse(time.RFC3339Nano, b)
		if errA == nil && errB == nil {
			if desc {
				return ta.After(tb)
			}
			return ta.Before(tb)
		}
		if desc {
			return a > b
		}
		return a < b
	})
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func decodeBody(body io.Reader) ([]Row, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	raw = []byte(strings.TrimSpace(string(raw)))
	if len(raw) > 0 && raw[0] == '[' {
		var rows []Row
		err := json.Unmarshal(raw, &rows)
		return rows, err
	}
	var row Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return []Row{row}, nil
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
		"details": "",
		"hint":    "",
	})
}

// ID returns the id column of a stored row.
func ID(t testing.TB, row Row) uuid.UUID {
	t.Helper()
	raw, _ := row["id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		t.Fatalf("storetest: row has no valid id: %v", err)
	}
	return id
}
