package stats

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ParseCSV decodes an HAProxy CSV stats report. The first record is the
// header. Records that fail to decode are skipped, short records keep only
// the fields they have and values beyond the header are ignored.
func ParseCSV(r io.Reader) []Row {
	reader := csv.NewReader(trimReport(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var header []string
	var rows []Row

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			break
		}

		if header == nil {
			header = record
			continue
		}

		var row Row
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			row = row.Set(name, record[i])
		}
		if row.Len() > 0 {
			rows = append(rows, row)
		}
	}

	return rows
}

// ParseInfo decodes "show info" output into one single field row per
// "key: value" line. Lines that do not split into exactly two parts are
// skipped.
func ParseInfo(r io.Reader) []Row {
	var rows []Row

	data, _ := io.ReadAll(r)
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		rows = append(rows, RowOf(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])))
	}

	return rows
}

// trimReport strips the leading "# " comment marker of the header line and
// trailing commas of every line.
func trimReport(r io.Reader) io.Reader {
	data, err := io.ReadAll(r)
	if err != nil && len(data) == 0 {
		return bytes.NewReader(nil)
	}

	text := strings.TrimSpace(strings.TrimLeft(string(data), "# "))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimRight(line, "\r"), ",")
	}

	return strings.NewReader(strings.Join(lines, "\n"))
}
