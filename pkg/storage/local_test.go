package storage_test

import (
	"strings"
	"testing"

	"github.com/aldeanavidad/tienda/config"
	"github.com/aldeanavidad/tienda/pkg/storage"
)

func bootLocal(t *testing.T) {
	t.Helper()
	config.Set("STORAGE_DISK", "local")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	config.Set("STORAGE_URL", "http://localhost:3000/uploads")
	storage.Connect()
}

func TestLocalPutGetDelete(t *testing.T) {
	bootLocal(t)

	path := "productos/1700000000-000000001.jpg"
	content := []byte("fake image bytes")

	if err := storage.Put(path, content); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !storage.Exists(path) {
		t.Fatal("expected file to exist after put")
	}

	got, err := storage.Get(path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: %q", got)
	}

	if err := storage.Delete(path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if storage.Exists(path) {
		t.Error("expected file gone after delete")
	}

	// Deleting a missing file is not an error.
	if err := storage.Delete(path); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestLocalPutStreamCreatesDirectories(t *testing.T) {
	bootLocal(t)

	path := "productos/sub/dir/archivo.png"
	if err := storage.PutStream(path, strings.NewReader("png")); err != nil {
		t.Fatalf("put stream: %v", err)
	}
	if !storage.Exists(path) {
		t.Error("expected nested path to exist")
	}
}

func TestLocalURL(t *testing.T) {
	bootLocal(t)

	url := storage.URL("productos/foto.jpg")
	if url != "http://localhost:3000/uploads/productos/foto.jpg" {
		t.Errorf("url = %q", url)
	}
}
