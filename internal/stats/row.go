package stats

// Field is one named value of a stats row.
type Field struct {
	Name  string
	Value string
}

// Row is one record of an HAProxy stats snapshot. It is either a proxy or
// server line of "show stat" (identified by pxname and svname) or a single
// fact of "show info". Fields keep the order they were read in.
type Row []Field

func NewRow(fields ...Field) Row {
	var row Row
	for _, f := range fields {
		row = row.Set(f.Name, f.Value)
	}
	return row
}

// RowOf builds a row from alternating name, value pairs.
func RowOf(pairs ...string) Row {
	var row Row
	for i := 0; i+1 < len(pairs); i += 2 {
		row = row.Set(pairs[i], pairs[i+1])
	}
	return row
}

func (r Row) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func (r Row) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set replaces the value of an existing field in place or appends a new one.
func (r Row) Set(name, value string) Row {
	for i := range r {
		if r[i].Name == name {
			r[i].Value = value
			return r
		}
	}
	return append(r, Field{Name: name, Value: value})
}

func (r Row) Len() int {
	return len(r)
}

// IsProxy reports whether the row describes a frontend, backend or server.
func (r Row) IsProxy() bool {
	return r.Has("pxname") && r.Has("svname")
}
