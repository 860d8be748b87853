package store

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/mdom/internal/config"
	"github.com/vango-dev/mdom/internal/errors"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"index.html", "index.html", true},
		{"./index.html", "index.html", true},
		{"pages/about.html", "pages/about.html", true},
		{"", "", false},
		{"../secret", "", false},
		{"/etc/passwd", "", false},
		{"a/../../b", "", false},
		{"a//b", "", false},
	}
	for _, tt := range tests {
		got, err := cleanName(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("cleanName(%q) = %q, %v; want %q, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
		if err != nil && errors.Code(err) != "E101" {
			t.Errorf("cleanName(%q) code = %q, want E101", tt.in, errors.Code(err))
		}
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "docs")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Load(ctx, "index.html")
	if errors.Code(err) != "E100" {
		t.Errorf("Load(missing) code = %q, want E100", errors.Code(err))
	}

	if err := s.Save(ctx, "pages/index.html", []byte("<p>one</p>")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "pages/index.html", []byte("<p>two</p>")); err != nil {
		t.Fatalf("Save again: %v", err)
	}
	got, err := s.Load(ctx, "pages/index.html")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "<p>two</p>" {
		t.Errorf("Load = %q, want <p>two</p>", got)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "pages"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("pages dir has %d entries, want 1 (temp files left behind?)", len(entries))
	}

	if err := s.Save(ctx, "../escape.html", nil); errors.Code(err) != "E101" {
		t.Errorf("Save(escape) code = %q, want E101", errors.Code(err))
	}
}

func TestFileStoreCancelled(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Load(ctx, "a.html"); errors.Code(err) != "E101" {
		t.Errorf("Load(cancelled) code = %q, want E101", errors.Code(err))
	}
	if err := s.Save(ctx, "a.html", nil); errors.Code(err) != "E101" {
		t.Errorf("Save(cancelled) code = %q, want E101", errors.Code(err))
	}
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []*s3.PutObjectInput
	failGet error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	s := NewS3Store(fake, "pages", "site/")

	_, err := s.Load(ctx, "index.html")
	if errors.Code(err) != "E100" {
		t.Errorf("Load(missing) code = %q, want E100", errors.Code(err))
	}

	if err := s.Save(ctx, "index.html", []byte("<main></main>")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if diff := cmp.Diff(map[string][]byte{"pages/site/index.html": []byte("<main></main>")}, fake.objects); diff != "" {
		t.Errorf("objects mismatch (-want +got):\n%s", diff)
	}
	put := fake.puts[0]
	if aws.ToString(put.ContentType) != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q", aws.ToString(put.ContentType))
	}
	if aws.ToInt64(put.ContentLength) != int64(len("<main></main>")) {
		t.Errorf("ContentLength = %d", aws.ToInt64(put.ContentLength))
	}
	if put.Metadata["document"] != "index.html" {
		t.Errorf("Metadata = %v", put.Metadata)
	}

	got, err := s.Load(ctx, "index.html")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "<main></main>" {
		t.Errorf("Load = %q", got)
	}

	fake.failGet = io.ErrUnexpectedEOF
	if _, err := s.Load(ctx, "index.html"); errors.Code(err) != "E101" {
		t.Errorf("Load(failing) code = %q, want E101", errors.Code(err))
	}

	if _, err := s.Key("../x"); errors.Code(err) != "E101" {
		t.Errorf("Key(escape) code = %q, want E101", errors.Code(err))
	}
}

func TestS3StoreOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch r.URL.Path {
		case "/pages/site/index.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, "<p>remote</p>")
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
				`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
		}
	}))
	defer srv.Close()

	client := NewS3Client(S3ClientOptions{Region: "us-east-1", Endpoint: srv.URL, PathStyle: true})
	s := NewS3Store(client, "pages", "site/")

	got, err := s.Load(context.Background(), "index.html")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "<p>remote</p>" {
		t.Errorf("Load = %q", got)
	}

	_, err = s.Load(context.Background(), "missing.html")
	if errors.Code(err) != "E100" {
		t.Errorf("Load(missing) code = %q, want E100 (err %v)", errors.Code(err), err)
	}
}

func TestNewS3Client(t *testing.T) {
	c := NewS3Client(S3ClientOptions{
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
		AccessKey: "AK",
		SecretKey: "SK",
	})
	o := c.Options()
	if o.Region != "eu-west-1" || !o.UsePathStyle || aws.ToString(o.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("options = region %q pathStyle %v endpoint %q", o.Region, o.UsePathStyle, aws.ToString(o.BaseEndpoint))
	}
	creds, err := o.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "AK" || creds.SecretAccessKey != "SK" {
		t.Errorf("credentials = %+v", creds)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Store.Dir = t.TempDir()
	s, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("FromConfig(file) = %T", s)
	}

	cfg.Store = config.StoreConfig{Kind: config.StoreS3, Bucket: "b", Prefix: "p/", Region: "us-east-1"}
	s, err = FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	s3s, ok := s.(*S3Store)
	if !ok {
		t.Fatalf("FromConfig(s3) = %T", s)
	}
	if key, _ := s3s.Key("a.html"); key != "p/a.html" {
		t.Errorf("Key = %q, want p/a.html", key)
	}

	cfg.Store = config.StoreConfig{Kind: config.StoreSQLite, Path: filepath.Join(t.TempDir(), "docs.db")}
	s, err = FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	sq, ok := s.(*SQLiteStore)
	if !ok {
		t.Fatalf("FromConfig(sqlite) = %T", s)
	}
	sq.Close()

	cfg.Store.Kind = "ftp"
	if _, err := FromConfig(context.Background(), cfg); errors.Code(err) != "E123" {
		t.Errorf("FromConfig(ftp) code = %q, want E123", errors.Code(err))
	}
}

func openSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.db")
	s, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, path := openSQLite(t)

	if _, err := s.Load(ctx, "index.html"); errors.Code(err) != "E100" {
		t.Fatalf("Load(missing) code = %q, want E100", errors.Code(err))
	}

	if err := s.Save(ctx, "index.html", []byte("<p>one</p>")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "./index.html", []byte("<p>two</p>")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "blog/post.html", []byte("<p>post</p>")); err != nil {
		t.Fatal(err)
	}

	data, err := s.Load(ctx, "index.html")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<p>two</p>" {
		t.Errorf("Load = %q, want the second save", data)
	}

	names, err := s.Names(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"blog/post.html", "index.html"}, names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	// Rows survive reopening.
	s.Close()
	again, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()
	if data, err := again.Load(ctx, "blog/post.html"); err != nil || string(data) != "<p>post</p>" {
		t.Errorf("Load after reopen = %q, %v", data, err)
	}
}

func TestSQLiteStoreRejectsBadNames(t *testing.T) {
	s, _ := openSQLite(t)
	if err := s.Save(context.Background(), "../x.html", []byte("x")); errors.Code(err) != "E101" {
		t.Errorf("Save(../x.html) code = %q, want E101", errors.Code(err))
	}
}

func TestSQLiteStoreCancelled(t *testing.T) {
	s, _ := openSQLite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, "index.html", []byte("x")); errors.Code(err) != "E101" {
		t.Errorf("Save(cancelled) code = %q, want E101", errors.Code(err))
	}
}
