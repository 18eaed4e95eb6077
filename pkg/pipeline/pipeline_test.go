package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/db"
)

func setupPipeline(t *testing.T) (*Pipeline, *db.DB) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	cfg := models.DefaultConfig()
	cfg.Counter = models.CounterConfig{NumOfWorkers: 3, NumOfChunks: 2, FilesChunkSize: 16}
	cfg.DetectLanguage = false
	cfg.Fetch.Timeout = 5 * time.Second

	p, err := Build(cfg, database, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p, database
}

func mustQuery(t *testing.T, p *Pipeline, word string) int {
	t.Helper()
	n, err := p.Query(context.Background(), word)
	if err != nil {
		t.Fatalf("Query(%q) error = %v", word, err)
	}
	return n
}

func TestIngest_RoundTrip(t *testing.T) {
	p, _ := setupPipeline(t)

	res, err := p.Ingest(context.Background(), "cat cat dog")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.Status != models.StatusOk {
		t.Errorf("Status = %v, want Ok", res.Status)
	}
	if res.Kind != "literal" {
		t.Errorf("Kind = %q, want literal", res.Kind)
	}
	if got := mustQuery(t, p, "cat"); got != 2 {
		t.Errorf("Query(cat) = %d, want 2", got)
	}
	if got := mustQuery(t, p, "dog"); got != 1 {
		t.Errorf("Query(dog) = %d, want 1", got)
	}
	if got := mustQuery(t, p, "never"); got != 0 {
		t.Errorf("Query(never) = %d, want 0", got)
	}
}

func TestIngest_TokenTotal(t *testing.T) {
	p, _ := setupPipeline(t)

	// 42 and %% carry no letter; the other six tokens survive normalization.
	res, err := p.Ingest(context.Background(), "The cat, the DOG 42 well-known x-ray %% end.")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.TokenCount != 7 {
		t.Errorf("TokenCount = %d, want 7", res.TokenCount)
	}
	if got := mustQuery(t, p, "THE"); got != 2 {
		t.Errorf("Query(THE) = %d, want 2", got)
	}
	if got := mustQuery(t, p, "well-known"); got != 1 {
		t.Errorf("Query(well-known) = %d, want 1", got)
	}
}

func TestIngest_NoBleedBetweenCalls(t *testing.T) {
	p, _ := setupPipeline(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := p.Ingest(ctx, "echo")
		if err != nil {
			t.Fatal(err)
		}
		if res.TokenCount != 1 {
			t.Errorf("call %d TokenCount = %d, want 1", i, res.TokenCount)
		}
	}
	if got := mustQuery(t, p, "echo"); got != 3 {
		t.Errorf("Query(echo) = %d, want 3", got)
	}
}

func TestIngest_Concurrent(t *testing.T) {
	p, _ := setupPipeline(t)
	ctx := context.Background()

	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := p.Ingest(ctx, "alpha beta alpha")
			errs <- err
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
	}
	if got := mustQuery(t, p, "alpha"); got != 20 {
		t.Errorf("Query(alpha) = %d, want 20", got)
	}
}

func TestIngest_NoLettersIsError(t *testing.T) {
	p, _ := setupPipeline(t)

	res, err := p.Ingest(context.Background(), "123 456 %%")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.Status != models.StatusError {
		t.Errorf("Status = %v, want Error for an empty mapping", res.Status)
	}
}

func TestIngest_EmptyInput(t *testing.T) {
	p, _ := setupPipeline(t)
	for _, raw := range []string{"", "   \n"} {
		if _, err := p.Ingest(context.Background(), raw); !errors.Is(err, models.ErrBadRequest) {
			t.Errorf("Ingest(%q) error = %v, want ErrBadRequest", raw, err)
		}
	}
}

func TestIngest_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	p, database := setupPipeline(t)

	_, err := p.Ingest(context.Background(), "C:/Path/To/A/file.txt")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Ingest() error = %v, want ErrNotFound", err)
	}
	// The path itself must not have been tokenized and stored.
	for _, w := range []string{"c", "path", "to", "a", "filetxt"} {
		if got := mustQuery(t, p, w); got != 0 {
			t.Errorf("Query(%q) = %d after missing-file ingest, want 0", w, got)
		}
	}
	rows, err := database.ListIngestions(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("failed ingest recorded %d rows", len(rows))
	}
}

func TestIngest_CSVFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.MkdirAll(filepath.Join(dir, "C:", "data"), 0755); err != nil {
		t.Fatal(err)
	}
	csv := "animal,sound\ncat,meow\ndog,woof\ncat,purr\n"
	if err := os.WriteFile(filepath.Join(dir, "C:", "data", "zoo.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	p, _ := setupPipeline(t)

	res, err := p.Ingest(context.Background(), "C:/data/zoo.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.Format != models.FormatCSV {
		t.Errorf("Format = %q, want csv", res.Format)
	}
	if res.TokenCount != 8 {
		t.Errorf("TokenCount = %d, want 8", res.TokenCount)
	}
	if got := mustQuery(t, p, "cat"); got != 2 {
		t.Errorf("Query(cat) = %d, want 2", got)
	}
}

func TestIngest_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><p>Gopher gopher gopher gopher gopher gopher gopher gopher gopher</p></body></html>`))
	}))
	defer srv.Close()

	p, _ := setupPipeline(t)
	res, err := p.Ingest(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.Kind != "url" || res.Format != models.FormatHTML {
		t.Errorf("Kind/Format = %s/%s", res.Kind, res.Format)
	}
	if res.Status != models.StatusOk || res.TokenCount == 0 {
		t.Errorf("Status = %v, TokenCount = %d", res.Status, res.TokenCount)
	}
}

func TestIngest_URLUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, _ := setupPipeline(t)
	_, err := p.Ingest(context.Background(), srv.URL+"/broken")
	var statusErr *models.UpstreamStatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("Ingest() error = %v, want UpstreamStatusError(500)", err)
	}
}

func TestQuery_Validation(t *testing.T) {
	p, _ := setupPipeline(t)
	if _, err := p.Ingest(context.Background(), "what what"); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Query(context.Background(), "4576%"); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("Query(4576%%) error = %v, want ErrBadRequest", err)
	}
	if got := mustQuery(t, p, "what34%"); got != 2 {
		t.Errorf("Query(what34%%) = %d, want 2", got)
	}
}

func TestIngestions_Recorded(t *testing.T) {
	p, _ := setupPipeline(t)
	ctx := context.Background()

	res, err := p.Ingest(ctx, "one two two")
	if err != nil {
		t.Fatal(err)
	}

	rows, err := p.Ingestions(ctx, 10)
	if err != nil {
		t.Fatalf("Ingestions() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Ingestions() returned %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.IngestionID != res.IngestionID || row.Status != "Ok" || row.TokenCount != 3 || row.DistinctWords != 2 {
		t.Errorf("row = %+v", row)
	}
	if row.SourceKind != "literal" {
		t.Errorf("SourceKind = %q", row.SourceKind)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
