package loaders

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spaghettifunk/facecube/engine/resources"
)

func TestHTTPLoaderFetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(jsonArray))
	}))
	defer srv.Close()

	hl := &HTTPLoader{Client: srv.Client()}
	list, err := hl.Fetch(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/api/experience" {
		t.Errorf("path = %q", gotPath)
	}
	if len(list) != 2 || list[0].ID != 4 || list[1].ID != 3 {
		t.Errorf("list = %+v", list)
	}
}

func TestHTTPLoaderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to fetch experience"}`))
	}))
	defer srv.Close()

	hl := &HTTPLoader{Client: srv.Client()}
	_, err := hl.Load(srv.URL, resources.ResourceTypeRemote, nil)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("err = %v, want ErrUnexpectedStatus", err)
	}
}

func TestHTTPLoaderBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	hl := &HTTPLoader{Client: srv.Client()}
	if _, err := hl.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("invalid body accepted")
	}
}

func TestHTTPLoaderLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	hl := &HTTPLoader{Client: srv.Client()}
	res, err := hl.Load(srv.URL, resources.ResourceTypeRemote, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.FullPath != srv.URL+"/api/experience" {
		t.Errorf("FullPath = %q", res.FullPath)
	}
}
