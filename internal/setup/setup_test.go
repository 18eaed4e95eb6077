package setup

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range Flags() {
		if err := f.Apply(set); err != nil {
			t.Fatal(err)
		}
	}
	(&cli.StringFlag{Name: "addr"}).Apply(set)
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "words_counter_helper:\n  num_of_workers: 3\n  num_of_chunks: 4\n  files_chunk_size: 1024\n"
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Config(newContext(t, "--config", path, "--chunks", "9", "--db", "other.db", "--addr", ":9000"))
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if cfg.Counter.NumOfWorkers != 3 {
		t.Errorf("NumOfWorkers = %d, want 3 from file", cfg.Counter.NumOfWorkers)
	}
	if cfg.Counter.NumOfChunks != 9 {
		t.Errorf("NumOfChunks = %d, want 9 from flag", cfg.Counter.NumOfChunks)
	}
	if cfg.Counter.FilesChunkSize != 1024 {
		t.Errorf("FilesChunkSize = %d", cfg.Counter.FilesChunkSize)
	}
	if cfg.Database.Path != "other.db" || cfg.Server.Addr != ":9000" {
		t.Errorf("Database.Path = %q, Server.Addr = %q", cfg.Database.Path, cfg.Server.Addr)
	}
}

func TestConfig_RejectsZeroWorkers(t *testing.T) {
	if _, err := Config(newContext(t, "--workers", "0")); err == nil {
		t.Fatal("expected validation error for --workers 0")
	}
}

func TestPipeline_OpensDatabase(t *testing.T) {
	cfg, err := Config(newContext(t, "--db", filepath.Join(t.TempDir(), "w.db")))
	if err != nil {
		t.Fatal(err)
	}
	cfg.DetectLanguage = false

	p, database, err := Pipeline(cfg, Logger(newContext(t, "--quiet")))
	if err != nil {
		t.Fatalf("Pipeline() error = %v", err)
	}
	defer database.Close()
	if p == nil {
		t.Fatal("nil pipeline")
	}
}

func TestPrint(t *testing.T) {
	v := struct {
		Word  string `json:"word" yaml:"word"`
		Count int    `json:"count" yaml:"count"`
	}{"cat", 2}

	tests := []struct {
		format string
		want   string
	}{
		{"yaml", "word: cat\ncount: 2\n"},
		{"", "word: cat\ncount: 2\n"},
		{"json", "{\n  \"word\": \"cat\",\n  \"count\": 2\n}\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Print(&buf, tt.format, v); err != nil {
			t.Fatalf("Print(%q) error = %v", tt.format, err)
		}
		if buf.String() != tt.want {
			t.Errorf("Print(%q) = %q, want %q", tt.format, buf.String(), tt.want)
		}
	}

	if err := Print(&bytes.Buffer{}, "xml", v); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("Print(xml) error = %v", err)
	}
}
