package imagehost

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var gotKey, gotImage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/1/upload", r.URL.Path)
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, r.ParseForm())
		gotImage = r.PostFormValue("image")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://img.example/abc.png"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	url, err := c.Upload(context.Background(), "shoes", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/abc.png", url)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), gotImage)
}

func TestUpload_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, "wrong")
	_, err := c.Upload(context.Background(), "x", []byte("data"))
	assert.Error(t, err)
}

func TestUpload_RejectedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	_, err := c.Upload(context.Background(), "x", []byte("data"))
	assert.Error(t, err)

	_, err = c.Upload(context.Background(), "x", nil)
	assert.Error(t, err)
}
