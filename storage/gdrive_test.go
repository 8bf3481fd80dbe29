package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

type fakeFile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	MimeType string   `json:"mimeType,omitempty"`
	Parents  []string `json:"parents,omitempty"`
	content  []byte
}

// fakeDrive serves the handful of Drive v3 file calls the backend makes.
type fakeDrive struct {
	mu    sync.Mutex
	files map[string]*fakeFile
	next  int
}

func (f *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := strings.Index(r.URL.Path, "/files")
	if i < 0 {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path[i+len("/files"):], "/")

	switch {
	case r.Method == http.MethodGet && id == "":
		f.list(w, r.URL.Query().Get("q"))
	case r.Method == http.MethodGet:
		file, ok := f.files[id]
		if !ok {
			writeDriveError(w, http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("alt") == "media" {
			w.Write(file.content)
			return
		}
		json.NewEncoder(w).Encode(file)
	case r.Method == http.MethodPost:
		meta, content := readUpload(r)
		f.next++
		meta.ID = fmt.Sprintf("file%d", f.next)
		meta.content = content
		f.files[meta.ID] = meta
		json.NewEncoder(w).Encode(fakeFile{ID: meta.ID, Name: meta.Name})
	case r.Method == http.MethodPatch:
		file, ok := f.files[id]
		if !ok {
			writeDriveError(w, http.StatusNotFound)
			return
		}
		_, content := readUpload(r)
		file.content = content
		json.NewEncoder(w).Encode(fakeFile{ID: file.ID, Name: file.Name})
	case r.Method == http.MethodDelete:
		if _, ok := f.files[id]; !ok {
			writeDriveError(w, http.StatusNotFound)
			return
		}
		delete(f.files, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func (f *fakeDrive) list(w http.ResponseWriter, q string) {
	var out []fakeFile
	for _, file := range f.files {
		isFolder := file.MimeType == folderMimeType
		switch {
		case strings.Contains(q, "in parents"):
			if !isFolder && len(file.Parents) > 0 && strings.Contains(q, "'"+file.Parents[0]+"'") {
				out = append(out, fakeFile{ID: file.ID, Name: file.Name})
			}
		case isFolder && strings.Contains(q, "name='"+file.Name+"'"):
			out = append(out, fakeFile{ID: file.ID, Name: file.Name})
		}
	}
	json.NewEncoder(w).Encode(map[string]any{"files": out})
}

func writeDriveError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":"not found"}}`, code)
}

// readUpload handles both plain JSON metadata and multipart uploads.
func readUpload(r *http.Request) (*fakeFile, []byte) {
	meta := &fakeFile{}
	mt, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mt, "multipart/") {
		body, _ := io.ReadAll(r.Body)
		if mt == "application/json" {
			json.Unmarshal(body, meta)
			return meta, nil
		}
		return meta, body
	}
	mr := multipart.NewReader(r.Body, params["boundary"])
	var content []byte
	for i := 0; ; i++ {
		p, err := mr.NextPart()
		if err != nil {
			break
		}
		b, _ := io.ReadAll(p)
		if i == 0 {
			json.Unmarshal(b, meta)
		} else {
			content = b
		}
	}
	return meta, content
}

func newFakeDriveBackend(t *testing.T) (*DriveBackend, *fakeDrive) {
	t.Helper()
	fake := &fakeDrive{files: map[string]*fakeFile{}}
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	ctx := context.Background()
	srv, err := drive.NewService(ctx,
		option.WithHTTPClient(ts.Client()),
		option.WithEndpoint(ts.URL+"/"))
	if err != nil {
		t.Fatalf("drive.NewService: %v", err)
	}
	d, err := NewDriveBackend(ctx, srv, "termnotes", nil)
	if err != nil {
		t.Fatalf("NewDriveBackend: %v", err)
	}
	return d, fake
}

func TestDriveBackend(t *testing.T) {
	d, fake := newFakeDriveBackend(t)
	if d.folderID == "" {
		t.Fatalf("folder was not created")
	}
	testBackend(t, d)

	for _, f := range fake.files {
		if f.MimeType == folderMimeType {
			continue
		}
		if !strings.HasSuffix(f.Name, ".json") || len(f.Parents) != 1 || f.Parents[0] != d.folderID {
			t.Errorf("unexpected drive file %+v", f)
		}
	}
}

func TestDriveBackendReusesFolder(t *testing.T) {
	d, fake := newFakeDriveBackend(t)
	ctx := context.Background()
	again, err := NewDriveBackend(ctx, d.srv, "termnotes", nil)
	if err != nil {
		t.Fatal(err)
	}
	if again.folderID != d.folderID {
		t.Errorf("second open created folder %s, want %s", again.folderID, d.folderID)
	}
	folders := 0
	for _, f := range fake.files {
		if f.MimeType == folderMimeType {
			folders++
		}
	}
	if folders != 1 {
		t.Errorf("got %d folders, want 1", folders)
	}
}

func TestDriveBackendFileRemovedElsewhere(t *testing.T) {
	d, fake := newFakeDriveBackend(t)
	ctx := context.Background()
	n, err := d.CreateNote(ctx)
	if err != nil {
		t.Fatal(err)
	}
	fake.mu.Lock()
	delete(fake.files, d.fileIDs[n.ID])
	fake.mu.Unlock()

	if _, err := d.GetNote(ctx, n.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
