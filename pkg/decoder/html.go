package decoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/fetcher"
	"github.com/dtnitsch/wordcount/pkg/mapreduce"
	"golang.org/x/net/html/charset"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// DecodeHTML splits the body into one byte window per worker and, for each
// window on the pool, decodes the declared charset, strips markup and pulls
// out word tokens. Failed windows are logged and skipped.
func (d *Decoder) DecodeHTML(ctx context.Context, resp *fetcher.Response) (*Payload, error) {
	parts := mapreduce.Partition(resp.Body, d.workers)

	groups, err := mapreduce.Parallel(ctx, d.logger, "decode_html", d.workers, parts, func(_ context.Context, w []byte) ([]string, error) {
		return d.htmlWindowTokens(w, resp.Charset)
	})
	if err != nil {
		return nil, err
	}
	return &Payload{Format: models.FormatHTML, Tokens: groups}, nil
}

func (d *Decoder) htmlWindowTokens(window []byte, label string) ([]string, error) {
	text := string(window)
	if label != "" && label != "utf-8" {
		r, err := charset.NewReaderLabel(label, bytes.NewReader(window))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", label, err)
		}
		decoded, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", label, err)
		}
		text = string(decoded)
	}

	plain, err := d.parser.PlainText(text)
	if err != nil {
		return nil, fmt.Errorf("strip html: %w", err)
	}
	return wordPattern.FindAllString(plain, -1), nil
}
