package decoder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// readCSV reads rows one at a time, joins their fields with spaces and packs
// consecutive rows into chunks of at most chunkSize bytes (a single oversized
// row becomes its own chunk).
func (d *Decoder) readCSV(path string) ([]string, error) {
	f, err := d.storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var chunks []string
	var cur strings.Builder
	line := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				d.logger.Warn("Skipping malformed CSV row", "path", path, "line", line, "error", err)
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}

		row := strings.Join(record, " ")
		if cur.Len() > 0 && cur.Len()+1+len(row) > d.chunkSize {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(row)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks, nil
}
