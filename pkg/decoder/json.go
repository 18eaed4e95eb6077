package decoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// readJSON flattens a JSON document into the text of its keys and scalar
// values. Structure is not interpreted beyond that. A document that is not
// valid JSON is counted as plain text instead.
func (d *Decoder) readJSON(ctx context.Context, path string) ([]string, error) {
	data, err := d.storage.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text, err := flattenJSON(data)
	if err != nil {
		d.logger.Warn("Invalid JSON, counting as plain text", "path", path, "error", err)
		return d.readText(ctx, path)
	}
	return windows(text, d.chunkSize), nil
}

func flattenJSON(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var b strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		var s string
		switch v := tok.(type) {
		case json.Delim:
			continue
		case string:
			s = v
		case json.Number:
			s = v.String()
		case bool:
			s = fmt.Sprint(v)
		case nil:
			s = "null"
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	return b.String(), nil
}
