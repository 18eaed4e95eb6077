// Package decoder turns a classified source into text chunks or token groups.
//
// Local files are dispatched on their extension to one of four readers:
//
//   - .txt: fixed-size byte chunks read concurrently with ReadAt
//   - .json: keys and scalar values flattened to space-separated text
//   - .csv: rows joined with spaces, accumulated into size-bounded chunks
//   - .docx: text of word/document.xml re-chunked into byte windows
//
// HTML from a URL is split into byte windows that are decoded, stripped and
// tokenized independently (see DecodeHTML).
package decoder

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/parser"
	"github.com/dtnitsch/wordcount/pkg/storage"
)

// Payload is the transient output of one decode. Exactly one of Chunks
// (free text, split on whitespace later) or Tokens (pre-tokenized) is set.
type Payload struct {
	Format models.Format
	Chunks []string
	Tokens [][]string
}

// Len returns the number of chunks or token groups.
func (p *Payload) Len() int {
	return len(p.Chunks) + len(p.Tokens)
}

type Decoder struct {
	workers   int
	chunkSize int
	storage   *storage.Storage
	parser    *parser.Parser
	logger    *slog.Logger
}

func New(cfg models.CounterConfig, s *storage.Storage, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	if s == nil {
		s = &storage.Storage{}
	}
	d := &Decoder{
		workers:   cfg.NumOfWorkers,
		chunkSize: cfg.FilesChunkSize,
		storage:   s,
		parser:    &parser.Parser{},
		logger:    logger,
	}
	if d.workers < 1 {
		d.workers = 1
	}
	if d.chunkSize < 1 {
		d.chunkSize = models.DefaultFilesChunkSize
	}
	return d
}

// Detect returns the file format based on file extension.
func Detect(path string) (models.Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch models.Format(ext) {
	case models.FormatText:
		return models.FormatText, nil
	case models.FormatCSV:
		return models.FormatCSV, nil
	case models.FormatJSON:
		return models.FormatJSON, nil
	case models.FormatDocument:
		return models.FormatDocument, nil
	default:
		return models.FormatNone, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, ext)
	}
}

// DecodeFile reads path with the reader selected by its extension.
// Unsupported extensions fail before the file is opened.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*Payload, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("Decoding file", "path", path, "format", format)

	var chunks []string
	switch format {
	case models.FormatText:
		chunks, err = d.readText(ctx, path)
	case models.FormatJSON:
		chunks, err = d.readJSON(ctx, path)
	case models.FormatCSV:
		chunks, err = d.readCSV(path)
	case models.FormatDocument:
		chunks, err = d.readDocx(path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s (%s): %w", path, format, err)
	}

	return &Payload{Format: format, Chunks: chunks}, nil
}

// windows cuts text into pieces of roughly size bytes, extending each piece
// to the next whitespace so no word is split between two pieces.
func windows(text string, size int) []string {
	if size < 1 {
		size = 1
	}
	var out []string
	for len(text) > 0 {
		if len(text) <= size {
			out = append(out, text)
			break
		}
		end := size
		for end < len(text) {
			r, n := utf8.DecodeRuneInString(text[end:])
			if r != utf8.RuneError && unicode.IsSpace(r) {
				break
			}
			end += n
		}
		out = append(out, text[:end])
		text = text[end:]
	}
	return out
}

// Literal wraps caller-supplied text as a payload, windowed like file text.
func (d *Decoder) Literal(text string) *Payload {
	return &Payload{Format: models.FormatNone, Chunks: windows(text, d.chunkSize)}
}
