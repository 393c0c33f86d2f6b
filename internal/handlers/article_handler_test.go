package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/services/articles"
	"github.com/ternarybob/colligo/internal/services/validation"
	"github.com/ternarybob/colligo/internal/storage/badger"
)

func newTestArticleHandler(t *testing.T) *ArticleHandler {
	t.Helper()

	logger := common.GetLogger()
	manager, err := badger.NewManager(logger, &common.BadgerConfig{
		Path: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Failed to create storage manager: %v", err)
	}
	t.Cleanup(func() { manager.Close() })

	service := articles.NewService(manager.Articles(), validation.NewService(logger), logger)
	return NewArticleHandler(service, common.NewDefaultConfig(), logger)
}

func TestArticleHandler_CreateAndFetch(t *testing.T) {
	h := newTestArticleHandler(t)

	create := httptest.NewRequest("POST", "/articles", strings.NewReader(`{
		"title": "Fusion milestone reached",
		"publisher": "Science Daily",
		"url": "https://example.com/fusion"
	}`))
	createRec := httptest.NewRecorder()
	h.CollectionHandler(createRec, create)

	if createRec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", createRec.Code, createRec.Body.String())
	}

	created := decodeBody(t, createRec)
	id, ok := created["id"].(string)
	if !ok || !strings.HasPrefix(id, "article_") {
		t.Fatalf("Expected article_ prefixed ID, got %v", created["id"])
	}
	if created["created_at"] == nil {
		t.Error("Expected created_at to be set")
	}

	get := httptest.NewRequest("GET", "/articles/"+id, nil)
	getRec := httptest.NewRecorder()
	h.ItemHandler(getRec, get)

	if getRec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", getRec.Code)
	}
	fetched := decodeBody(t, getRec)
	if fetched["title"] != "Fusion milestone reached" {
		t.Errorf("Unexpected fetched article: %v", fetched)
	}
}

func TestArticleHandler_CreateRequiresTitle(t *testing.T) {
	h := newTestArticleHandler(t)

	req := httptest.NewRequest("POST", "/articles", strings.NewReader(`{"publisher": "Nobody"}`))
	rec := httptest.NewRecorder()
	h.CollectionHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]interface{})
	if !strings.Contains(errObj["message"].(string), "title") {
		t.Errorf("Expected message naming the title field, got %v", errObj)
	}
}

func TestArticleHandler_PartialUpdate(t *testing.T) {
	h := newTestArticleHandler(t)

	create := httptest.NewRequest("POST", "/articles", strings.NewReader(`{
		"title": "Original title",
		"summary": "keep this summary"
	}`))
	createRec := httptest.NewRecorder()
	h.CollectionHandler(createRec, create)
	id := decodeBody(t, createRec)["id"].(string)

	update := httptest.NewRequest("PUT", "/articles/"+id, strings.NewReader(`{"title": "New title"}`))
	updateRec := httptest.NewRecorder()
	h.ItemHandler(updateRec, update)

	if updateRec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", updateRec.Code, updateRec.Body.String())
	}
	updated := decodeBody(t, updateRec)
	if updated["title"] != "New title" {
		t.Errorf("Expected new title, got %v", updated["title"])
	}
	if updated["summary"] != "keep this summary" {
		t.Errorf("Expected summary retained, got %v", updated["summary"])
	}
}

func TestArticleHandler_DeleteThenGetIs404(t *testing.T) {
	h := newTestArticleHandler(t)

	create := httptest.NewRequest("POST", "/articles", strings.NewReader(`{"title": "Short lived"}`))
	createRec := httptest.NewRecorder()
	h.CollectionHandler(createRec, create)
	id := decodeBody(t, createRec)["id"].(string)

	del := httptest.NewRequest("DELETE", "/articles/"+id, nil)
	delRec := httptest.NewRecorder()
	h.ItemHandler(delRec, del)
	if delRec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", delRec.Code)
	}

	get := httptest.NewRequest("GET", "/articles/"+id, nil)
	getRec := httptest.NewRecorder()
	h.ItemHandler(getRec, get)
	if getRec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", getRec.Code)
	}
}

func TestArticleHandler_SearchRequiresQuery(t *testing.T) {
	h := newTestArticleHandler(t)

	req := httptest.NewRequest("GET", "/articles/search", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without q, got %d", rec.Code)
	}
}

func TestArticleHandler_List(t *testing.T) {
	h := newTestArticleHandler(t)

	for _, title := range []string{"First", "Second"} {
		req := httptest.NewRequest("POST", "/articles", strings.NewReader(`{"title": "`+title+`"}`))
		h.CollectionHandler(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest("GET", "/articles", nil)
	rec := httptest.NewRecorder()
	h.CollectionHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 2 {
		t.Errorf("Expected total 2, got %v", body["total"])
	}
	if len(body["articles"].([]interface{})) != 2 {
		t.Errorf("Expected 2 articles, got %v", body["articles"])
	}
}
