package quiz

import "sort"

// Table is a loaded sheet of quiz questions. Row i, cell j belongs to Headers[j].
// Duplicate headers are allowed; rows shorter than Headers read as empty.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Record is the narrow lookup capability every resolver function depends on.
type Record interface {
	Lookup(key string) (string, bool)
	Keys() []string
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Row returns a record view of row i.
func (t Table) Row(i int) Row {
	return Row{headers: t.Headers, cells: t.Rows[i]}
}

// HasHeader reports whether any column is named exactly name.
func (t Table) HasHeader(name string) bool {
	for _, header := range t.Headers {
		if header == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can rewrite headers or append columns
// without touching the source table.
func (t Table) Clone() Table {
	out := Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Row is a read-only view of one table row.
type Row struct {
	headers []string
	cells   []string
}

// Lookup returns the value of the first column named key.
func (r Row) Lookup(key string) (string, bool) {
	for i, header := range r.headers {
		if header != key {
			continue
		}
		if i < len(r.cells) {
			return r.cells[i], true
		}
		return "", true
	}
	return "", false
}

func (r Row) Keys() []string {
	return r.headers
}

// Cells returns the row aligned to the table headers, padding short rows.
func (r Row) Cells() []string {
	out := make([]string, len(r.headers))
	copy(out, r.cells)
	return out
}

// MapRecord adapts a plain header-to-value map.
type MapRecord map[string]string

func (m MapRecord) Lookup(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// Keys are sorted so the question fallback scan is deterministic.
func (m MapRecord) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
