package attachments

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talenthub/internal/common"
)

func TestStoreSendsBlobAndParsesRef(t *testing.T) {
	candidateID := common.NewUUID()
	jobID := common.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("X-Internal-Key"); got != "secret-key" {
			t.Errorf("expected internal key header, got %q", got)
		}
		if got := r.URL.Query().Get("candidate_id"); got != candidateID.String() {
			t.Errorf("expected candidate_id %s, got %q", candidateID, got)
		}
		if got := r.URL.Query().Get("job_id"); got != jobID.String() {
			t.Errorf("expected job_id %s, got %q", jobID, got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("expected readable body, got %v", err)
		}
		if string(body) != "resume bytes" {
			t.Errorf("expected blob payload, got %q", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ref":"att-42"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", server.Client())
	ref, err := client.Store(context.Background(), candidateID, jobID, "resume.pdf", strings.NewReader("resume bytes"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ref != "att-42" {
		t.Fatalf("expected ref att-42, got %q", ref)
	}
}

func TestStoreRejectsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", server.Client())
	_, err := client.Store(context.Background(), common.NewUUID(), common.NewUUID(), "resume.pdf", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestStoreRejectsEmptyRef(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ref":""}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", server.Client())
	_, err := client.Store(context.Background(), common.NewUUID(), common.NewUUID(), "resume.pdf", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error on empty ref")
	}
}

func TestRetrieveReturnsBlob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/attachments/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte("resume bytes"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", server.Client())
	blob, err := client.Retrieve(context.Background(), "att-42")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if string(blob) != "resume bytes" {
		t.Fatalf("expected blob payload, got %q", blob)
	}
}

func TestRetrieveRequiresRef(t *testing.T) {
	client := NewClient("http://localhost:1", "", nil)
	if _, err := client.Retrieve(context.Background(), "  "); err == nil {
		t.Fatal("expected error on blank ref")
	}
}

func TestUnconfiguredClientFails(t *testing.T) {
	client := NewClient("", "", nil)
	if _, err := client.Store(context.Background(), common.NewUUID(), common.NewUUID(), "resume.pdf", strings.NewReader("x")); err == nil {
		t.Fatal("expected error without base URL")
	}
	if _, err := client.Retrieve(context.Background(), "att-42"); err == nil {
		t.Fatal("expected error without base URL")
	}
}
