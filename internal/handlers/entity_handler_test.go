package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/services/entities"
	"github.com/ternarybob/colligo/internal/services/validation"
	"github.com/ternarybob/colligo/internal/storage/badger"
)

func newTestEntityHandler(t *testing.T) *EntityHandler {
	t.Helper()

	logger := common.GetLogger()
	manager, err := badger.NewManager(logger, &common.BadgerConfig{
		Path: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Failed to create storage manager: %v", err)
	}
	t.Cleanup(func() { manager.Close() })

	coordinator := entities.NewCoordinator(manager, validation.NewService(logger), logger)
	return NewEntityHandler(coordinator, common.NewDefaultConfig(), logger)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func TestBatchHandler_AllSuccess(t *testing.T) {
	h := newTestEntityHandler(t)

	req := httptest.NewRequest("POST", "/entities", strings.NewReader(`{
		"topics": [{"name": "AI"}],
		"events": [{"description": "launch", "date": "2026-08-30"}]
	}`))
	rec := httptest.NewRecorder()
	h.BatchHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body["success"])
	}
	if _, ok := body["errors"]; ok {
		t.Error("Expected errors key to be pruned")
	}
	created, ok := body["created"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected created map, got %v", body["created"])
	}
	if len(created["topics"].([]interface{})) != 1 {
		t.Errorf("Expected 1 created topic, got %v", created["topics"])
	}
}

func TestBatchHandler_PartialFailureIs207(t *testing.T) {
	h := newTestEntityHandler(t)

	req := httptest.NewRequest("POST", "/entities", strings.NewReader(`{
		"topics": [{"name": "Good"}, {"description": "no name"}]
	}`))
	rec := httptest.NewRecorder()
	h.BatchHandler(rec, req)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("Expected 207, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("Expected success false, got %v", body["success"])
	}
	errs, ok := body["errors"].(map[string]interface{})
	if !ok || len(errs["topics"].([]interface{})) != 1 {
		t.Fatalf("Expected 1 topic error, got %v", body["errors"])
	}
}

func TestBatchHandler_InvalidJSON(t *testing.T) {
	h := newTestEntityHandler(t)

	req := httptest.NewRequest("POST", "/entities", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.BatchHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestSearchHandler_RequiresQuery(t *testing.T) {
	h := newTestEntityHandler(t)

	req := httptest.NewRequest("GET", "/entities/search", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without q, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok || !strings.Contains(errObj["message"].(string), "'q'") {
		t.Errorf("Expected error naming the q parameter, got %v", body)
	}
}

func TestSearchHandler_UnknownTypeRejected(t *testing.T) {
	h := newTestEntityHandler(t)

	req := httptest.NewRequest("GET", "/entities/search?q=x&types=gadgets", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestSearchHandler_ReturnsPerKindResults(t *testing.T) {
	h := newTestEntityHandler(t)

	create := httptest.NewRequest("POST", "/entities", strings.NewReader(`{
		"topics": [{"name": "Fusion Energy"}]
	}`))
	h.BatchHandler(httptest.NewRecorder(), create)

	req := httptest.NewRequest("GET", "/entities/search?q=fusion", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["query"] != "fusion" {
		t.Errorf("Expected query echoed, got %v", body["query"])
	}
	topics, ok := body["topics"].([]interface{})
	if !ok || len(topics) != 1 {
		t.Errorf("Expected 1 topic result, got %v", body["topics"])
	}
}

func TestGetByIDsHandler_MissingIDYields207(t *testing.T) {
	h := newTestEntityHandler(t)

	req := httptest.NewRequest("GET", "/entities?topicIds=topic_missing", nil)
	rec := httptest.NewRecorder()
	h.GetByIDsHandler(rec, req)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("Expected 207 for missing ID, got %d", rec.Code)
	}
}

func TestKindRoutesHandler_UnknownKind(t *testing.T) {
	h := newTestEntityHandler(t)

	req := httptest.NewRequest("GET", "/entities/widgets", nil)
	rec := httptest.NewRecorder()
	h.KindRoutesHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown kind, got %d", rec.Code)
	}
}

func TestKindRoutesHandler_SingleEntityNotFound(t *testing.T) {
	h := newTestEntityHandler(t)

	req := httptest.NewRequest("GET", "/entities/topics/topic_missing", nil)
	rec := httptest.NewRecorder()
	h.KindRoutesHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for missing entity, got %d", rec.Code)
	}
}

func TestKindRoutesHandler_ListAndFetch(t *testing.T) {
	h := newTestEntityHandler(t)

	create := httptest.NewRequest("POST", "/entities", strings.NewReader(`{
		"topics": [{"name": "Listed"}]
	}`))
	createRec := httptest.NewRecorder()
	h.BatchHandler(createRec, create)

	created := decodeBody(t, createRec)
	topic := created["created"].(map[string]interface{})["topics"].([]interface{})[0].(map[string]interface{})
	id := topic["id"].(string)

	// List
	listReq := httptest.NewRequest("GET", "/entities/topics", nil)
	listRec := httptest.NewRecorder()
	h.KindRoutesHandler(listRec, listReq)

	if listRec.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing, got %d", listRec.Code)
	}
	listBody := decodeBody(t, listRec)
	if listBody["fallback"] != false {
		t.Errorf("Expected live listing, got fallback=%v", listBody["fallback"])
	}
	if len(listBody["topics"].([]interface{})) != 1 {
		t.Errorf("Expected 1 topic in listing, got %v", listBody["topics"])
	}

	// Fetch by ID
	getReq := httptest.NewRequest("GET", "/entities/topics/"+id, nil)
	getRec := httptest.NewRecorder()
	h.KindRoutesHandler(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("Expected 200 fetching %s, got %d", id, getRec.Code)
	}
	fetched := decodeBody(t, getRec)
	if fetched["name"] != "Listed" {
		t.Errorf("Expected fetched topic, got %v", fetched)
	}
}

func TestDeleteHandler_RemovesEntities(t *testing.T) {
	h := newTestEntityHandler(t)

	create := httptest.NewRequest("POST", "/entities", strings.NewReader(`{
		"notes": [{"content": "temp", "reference_type": "topic"}]
	}`))
	createRec := httptest.NewRecorder()
	h.BatchHandler(createRec, create)

	created := decodeBody(t, createRec)
	note := created["created"].(map[string]interface{})["notes"].([]interface{})[0].(map[string]interface{})
	id := note["id"].(string)

	del := httptest.NewRequest("DELETE", "/entities", strings.NewReader(`{"noteIds": ["`+id+`"]}`))
	delRec := httptest.NewRecorder()
	h.DeleteHandler(delRec, del)

	if delRec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", delRec.Code, delRec.Body.String())
	}
	body := decodeBody(t, delRec)
	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body)
	}
}
