package metrics

import (
	"strings"

	"github.com/DieOfCode/haproxy-statsd/internal/stats"
)

// EntityPath returns the part of the metric path that identifies the
// proxy and server a row belongs to.
func EntityPath(row stats.Row) string {
	if !row.IsProxy() {
		return GeneralProcessInfo
	}
	pxname, _ := row.Get("pxname")
	svname, _ := row.Get("svname")
	return pxname + "." + svname
}

// Normalize converts one stats row into metrics under namespace. Excluded,
// empty and non numeric fields are dropped; a row that yields nothing is
// not an error.
func Normalize(row stats.Row, namespace string) []Metric {
	prefix := strings.Join([]string{namespace, EntityPath(row)}, ".")

	var collected []Metric
	for _, field := range row {
		if IsExcluded(field.Name) || field.Value == "" || !IsNumber(field.Value) {
			continue
		}

		collected = append(collected, Metric{
			Path:  prefix + "." + SanitizeName(field.Name),
			Value: field.Value,
			Type:  TypeOf(field.Name),
		})
	}

	return collected
}

// NormalizeAll normalizes rows in order and concatenates the results.
func NormalizeAll(rows []stats.Row, namespace string) []Metric {
	var collected []Metric
	for _, row := range rows {
		collected = append(collected, Normalize(row, namespace)...)
	}
	return collected
}
