package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/idilsaglam/items/internal/itemstest"
	"github.com/idilsaglam/items/internal/model"
)

func newClient(t *testing.T, srv *itemstest.Server) *Client {
	t.Helper()
	return New(Options{Root: srv.URL + "/", HTTPClient: srv.Client()})
}

func TestList_ReturnsItemsInServerOrder(t *testing.T) {
	srv := itemstest.NewServer(t,
		model.Item{ID: 3, Name: "Pen", Quantity: 2},
		model.Item{ID: 1, Name: "Marker", Quantity: 5},
	)
	c := newClient(t, srv)

	list, ex, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 2 || list.Items[0].ID != 3 || list.Items[1].ID != 1 {
		t.Fatalf("unexpected items: %+v", list.Items)
	}
	if ex.Title != "GET /items" {
		t.Fatalf("title = %q", ex.Title)
	}
	if ex.URL != srv.URL+"/items" {
		t.Fatalf("url = %q", ex.URL)
	}
	if ex.Status != http.StatusOK || ex.StatusText != "OK" || ex.IsError {
		t.Fatalf("unexpected exchange: %+v", ex)
	}
}

func TestList_EmptyCollectionIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Root: srv.URL})
	list, _, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Items == nil || len(list.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", list.Items)
	}
}

func TestCreate_SendsJSONAndRecordsBodies(t *testing.T) {
	srv := itemstest.NewServer(t)
	c := newClient(t, srv)

	it, ex, err := c.Create(context.Background(), model.ItemInput{Name: "Marker", Quantity: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if it.ID == 0 || it.Name != "Marker" || it.Quantity != 3 {
		t.Fatalf("unexpected item: %+v", it)
	}
	if ex.Title != "POST /items" {
		t.Fatalf("title = %q", ex.Title)
	}
	if ex.RequestBody != `{"name":"Marker","quantity":3}` {
		t.Fatalf("request body = %q", ex.RequestBody)
	}
	if !strings.Contains(ex.ResponseBody, `"id":1`) {
		t.Fatalf("response body = %q", ex.ResponseBody)
	}
	if ex.Status != http.StatusCreated || !strings.HasPrefix(ex.Description, "Created") {
		t.Fatalf("unexpected exchange: %+v", ex)
	}
}

func TestUpdate_MissingItemIsHTTPErrorWithServerMessage(t *testing.T) {
	srv := itemstest.NewServer(t)
	c := newClient(t, srv)

	_, ex, err := c.Update(context.Background(), 42, model.ItemInput{Name: "x", Quantity: 1})
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if herr.Status != http.StatusNotFound || herr.Message != "Item not found" {
		t.Fatalf("unexpected error: %+v", herr)
	}
	if ex.Title != "PUT /items/42" || !ex.IsError {
		t.Fatalf("unexpected exchange: %+v", ex)
	}
}

func TestDelete_RemovesItem(t *testing.T) {
	srv := itemstest.NewServer(t, model.Item{ID: 7, Name: "Marker", Quantity: 3})
	c := newClient(t, srv)

	ex, err := c.Delete(context.Background(), 7)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ex.Title != "DELETE /items/7" {
		t.Fatalf("title = %q", ex.Title)
	}
	if n := len(srv.Items()); n != 0 {
		t.Fatalf("expected empty store, got %d items", n)
	}
}

func TestDo_ErrorWithoutJSONBodyHasEmptyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Options{Root: srv.URL})
	_, _, err := c.List(context.Background())
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if herr.Message != "" {
		t.Fatalf("expected empty message, got %q", herr.Message)
	}
	if herr.Error() != "HTTP 502 Bad Gateway" {
		t.Fatalf("error text = %q", herr.Error())
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	root := srv.URL
	srv.Close()

	c := New(Options{Root: root})
	_, ex, err := c.List(context.Background())
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	if ex.Status != 0 || ex.StatusText != "Network Error" || !ex.IsError {
		t.Fatalf("unexpected exchange: %+v", ex)
	}
	if ex.Description == "" {
		t.Fatal("expected a description for network failures")
	}
}

func TestDo_SendsBearerToken(t *testing.T) {
	srv := itemstest.NewServer(t)
	c := New(Options{Root: srv.URL, Token: " secret ", HTTPClient: srv.Client()})

	if _, _, err := c.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := srv.LastAuthorization(); got != "Bearer secret" {
		t.Fatalf("authorization = %q", got)
	}
}

func TestItemPath(t *testing.T) {
	if got := ItemPath(12); got != "/items/12" {
		t.Fatalf("ItemPath(12) = %q", got)
	}
}

func TestList_UndecodableBodyMarksExchangeAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer srv.Close()
	c := New(Options{Root: srv.URL})

	_, ex, err := c.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode items") {
		t.Fatalf("expected decode error, got %v", err)
	}
	if ex.Status != http.StatusOK || !ex.IsError {
		t.Fatalf("exchange = %+v", ex)
	}
}
