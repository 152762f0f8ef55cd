package ghl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/innovators-table/followup-assistant/internal/domain/entities"
	"github.com/innovators-table/followup-assistant/pkg/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.GHLConfig{
		APIKey:     "test-key",
		LocationID: "loc-1",
		BaseURL:    url,
	})
}

func TestFindByEmail_ExactCaseInsensitiveMatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contacts/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload["locationId"] != "loc-1" {
			t.Fatalf("missing locationId in payload")
		}
		// Relevance ordering: a close-but-wrong match comes first.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"contacts": []map[string]string{
				{"id": "c-2", "email": "janex@x.com", "firstName": "Janex"},
				{"id": "c-1", "email": "Jane@X.com", "firstName": "Jane"},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	contact, ok := client.FindByEmail(context.Background(), "jane@x.com")
	if !ok {
		t.Fatal("expected a match")
	}
	if contact.ID != "c-1" {
		t.Fatalf("matched wrong contact %s; search ordering must not be trusted", contact.ID)
	}
}

func TestFindByEmail_NoExactMatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"contacts": []map[string]string{
				{"id": "c-2", "email": "janex@x.com"},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	if _, ok := client.FindByEmail(context.Background(), "jane@x.com"); ok {
		t.Fatal("close match must not count as a match")
	}
}

func TestFindByEmail_TransportFailureYieldsAbsent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	if _, ok := client.FindByEmail(context.Background(), "jane@x.com"); ok {
		t.Fatal("transport failure must yield absent")
	}
}

func TestFieldMap_CachedAfterFirstSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"customFields": []map[string]string{
				{"id": "f-1", "name": "Industry"},
				{"id": "f-2", "name": "Superpower"},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	first := client.FieldMap(context.Background())
	second := client.FieldMap(context.Background())

	if len(first) != 2 || first.NameFor("f-1") != "Industry" {
		t.Fatalf("unexpected field map %v", first)
	}
	if len(second) != 2 {
		t.Fatalf("unexpected second field map %v", second)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestFieldMap_TransportFailureEmptyMap(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	fieldMap := client.FieldMap(context.Background())
	if len(fieldMap) != 0 {
		t.Fatalf("expected empty map, got %v", fieldMap)
	}
	if fieldMap.NameFor("anything") != "" {
		t.Fatal("unknown id must resolve to empty string")
	}
}

func TestNormalize_Total(t *testing.T) {
	// Contact with no custom fields and no company still yields a
	// profile with empty strings everywhere, never absent values.
	contact := &Contact{ID: "c-1", FirstName: "Jane"}

	profile := Normalize(contact, entities.FieldMap{})

	if profile.Name != "Jane" {
		t.Fatalf("unexpected name %q", profile.Name)
	}
	for field, value := range map[string]string{
		"company":    profile.Company,
		"industry":   profile.Industry,
		"role":       profile.Role,
		"solves":     profile.CompanySolves,
		"challenge":  profile.BiggestChallenge,
		"superpower": profile.Superpower,
	} {
		if value != "" {
			t.Fatalf("field %s should be empty, got %q", field, value)
		}
	}
}

func TestNormalize_SequenceValuesJoined(t *testing.T) {
	contact := &Contact{
		ID:          "c-1",
		FirstName:   "Jane",
		LastName:    "Doe",
		CompanyName: "Acme",
		CustomFields: []CustomField{
			{ID: "f-1", Value: []interface{}{"SaaS", "Fintech"}},
			{ID: "f-unknown", Value: "dropped silently"},
			{ID: "f-2", Value: "Closing deals"},
		},
	}
	fieldMap := entities.FieldMap{"f-1": "Industry", "f-2": "Superpower"}

	profile := Normalize(contact, fieldMap)

	if profile.Name != "Jane Doe" {
		t.Fatalf("unexpected name %q", profile.Name)
	}
	if profile.Industry != "SaaS, Fintech" {
		t.Fatalf("sequence not joined: %q", profile.Industry)
	}
	if profile.Superpower != "Closing deals" {
		t.Fatalf("unexpected superpower %q", profile.Superpower)
	}
}

func TestFetchByID_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contacts/c-1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"contact": map[string]interface{}{
				"id":        "c-1",
				"firstName": "Jane",
				"customFields": []map[string]interface{}{
					{"id": "f-1", "value": "Consulting"},
				},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	contact, ok := client.FetchByID(context.Background(), "c-1")
	if !ok {
		t.Fatal("expected contact")
	}
	if len(contact.CustomFields) != 1 || contact.CustomFields[0].ID != "f-1" {
		t.Fatalf("custom fields not decoded: %+v", contact.CustomFields)
	}
}
