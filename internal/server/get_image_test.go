package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func getImage(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGetImage_Success(t *testing.T) {
	images := newFakeImageStore()
	want := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	id, err := images.Put(context.Background(), want, "image/png")
	if err != nil {
		t.Fatalf("seed put failed: %v", err)
	}

	handler := Config{Images: images}.getImageHandler()
	rr := getImage(t, handler, "/images/"+id)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !bytes.Equal(rr.Body.Bytes(), want) {
		t.Errorf("expected body %v, got %v", want, rr.Body.Bytes())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected fixed image/jpeg content type, got %q", ct)
	}
	if cl := rr.Header().Get("Content-Length"); cl != strconv.Itoa(len(want)) {
		t.Errorf("expected Content-Length %d, got %q", len(want), cl)
	}
}

func TestGetImage_MissingID(t *testing.T) {
	handler := Config{Images: newFakeImageStore()}.getImageHandler()

	rr := getImage(t, handler, "/images/")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty imageId, got %d", rr.Code)
	}
}

func TestGetImage_NotFound(t *testing.T) {
	handler := Config{Images: newFakeImageStore()}.getImageHandler()

	rr := getImage(t, handler, "/images/no-such-image")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestGetImage_StorageFailure(t *testing.T) {
	images := newFakeImageStore()
	images.failGet = true
	handler := Config{Images: images}.getImageHandler()

	rr := getImage(t, handler, "/images/some-id")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestGetImage_MethodNotAllowed(t *testing.T) {
	handler := Config{Images: newFakeImageStore()}.getImageHandler()

	req := httptest.NewRequest(http.MethodPost, "/images/some-id", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}
