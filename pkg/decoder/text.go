package decoder

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/wordcount/pkg/mapreduce"
)

type span struct {
	offset int64
	length int
}

// readText reads the file as fixed-size byte chunks on the worker pool and
// concatenates them in file order. A chunk that fails to read is logged and
// skipped. Concatenation happens before tokenizing so words straddling a
// chunk boundary stay whole.
func (d *Decoder) readText(ctx context.Context, path string) ([]string, error) {
	stats, err := d.storage.GetFileStats(path)
	if err != nil {
		return nil, err
	}
	f, err := d.storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var spans []span
	for off := int64(0); off < stats.SizeBytes; off += int64(d.chunkSize) {
		n := int64(d.chunkSize)
		if rest := stats.SizeBytes - off; rest < n {
			n = rest
		}
		spans = append(spans, span{offset: off, length: int(n)})
	}

	parts, err := mapreduce.Parallel(ctx, d.logger, "read_text", d.workers, spans, func(_ context.Context, s span) ([]byte, error) {
		buf := make([]byte, s.length)
		n, err := f.ReadAt(buf, s.offset)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read at %d: %w", s.offset, err)
		}
		return buf[:n], nil
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.Grow(int(stats.SizeBytes))
	for _, p := range parts {
		b.Write(p)
	}
	return windows(b.String(), d.chunkSize), nil
}
