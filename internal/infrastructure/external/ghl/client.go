package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/innovators-table/followup-assistant/internal/domain/entities"
	"github.com/innovators-table/followup-assistant/pkg/config"
)

// Client is a minimal GoHighLevel CRM client. Every method recovers
// transport failures locally: lookups report "absent" and the field
// catalog degrades to an empty map, so a flaky CRM never aborts a
// batch.
type Client struct {
	apiKey     string
	locationID string
	baseURL    string
	client     *http.Client

	mu       sync.Mutex
	fieldMap entities.FieldMap // cached after first successful fetch
}

// searchPageLimit caps the candidate set returned by the free-text
// contact search. Matching is done locally against this set.
const searchPageLimit = 10

// NewClient creates a GoHighLevel client from the provided config.
func NewClient(cfg *config.GHLConfig) *Client {
	base := "https://services.leadconnectorhq.com"
	var apiKey, locationID string
	if cfg != nil {
		apiKey = cfg.APIKey
		locationID = cfg.LocationID
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
	}
	return &Client{
		apiKey:     apiKey,
		locationID: locationID,
		baseURL:    base,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether both API key and location ID are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.locationID != ""
}

// Contact is one CRM contact record. The search endpoint may return an
// abbreviated form; FetchByID returns the full record including custom
// fields.
type Contact struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	CompanyName  string        `json:"companyName"`
	CustomFields []CustomField `json:"customFields"`
}

// CustomField is a raw CRM custom-field entry. Value may be a scalar or
// a sequence depending on the field type.
type CustomField struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

type fieldDefinition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldMap fetches the custom-field catalog for the active location and
// caches it for the lifetime of this client. On transport failure it
// returns an empty map; field names then normalize to empty strings for
// all attendees, a degraded but non-fatal mode.
func (c *Client) FieldMap(ctx context.Context) entities.FieldMap {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fieldMap != nil {
		return c.fieldMap
	}

	url := fmt.Sprintf("%s/locations/%s/customFields", c.baseURL, c.locationID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return entities.FieldMap{}
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return entities.FieldMap{}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return entities.FieldMap{}
	}

	var body struct {
		CustomFields []fieldDefinition `json:"customFields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return entities.FieldMap{}
	}

	fieldMap := make(entities.FieldMap, len(body.CustomFields))
	for _, f := range body.CustomFields {
		if f.ID != "" && f.Name != "" {
			fieldMap[f.ID] = f.Name
		}
	}

	c.fieldMap = fieldMap
	return fieldMap
}

// FindByEmail searches contacts by free text and matches the email
// locally, case-insensitive and exact. The search endpoint ranks by
// relevance and may return close matches, so its ordering is never
// trusted. Transport failure yields absent, not an error.
func (c *Client) FindByEmail(ctx context.Context, email string) (*Contact, bool) {
	payload := map[string]interface{}{
		"locationId": c.locationID,
		"query":      email,
		"pageLimit":  searchPageLimit,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/contacts/search", bytes.NewReader(b))
	if err != nil {
		return nil, false
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, false
	}

	var body struct {
		Contacts []Contact `json:"contacts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false
	}

	want := strings.ToLower(email)
	for i := range body.Contacts {
		if strings.ToLower(body.Contacts[i].Email) == want {
			return &body.Contacts[i], true
		}
	}
	return nil, false
}

// FetchByID retrieves the full contact record. Transport failure yields
// absent, not an error.
func (c *Client) FetchByID(ctx context.Context, contactID string) (*Contact, bool) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/contacts/"+contactID, nil)
	if err != nil {
		return nil, false
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, false
	}

	var body struct {
		Contact *Contact `json:"contact"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false
	}
	if body.Contact == nil {
		return nil, false
	}
	return body.Contact, true
}

// Resolve looks up one attendee by email and normalizes the full
// contact record into a profile. The search result carries only partial
// custom-field data, so a found contact is always re-fetched by ID
// before normalizing.
func (c *Client) Resolve(ctx context.Context, email string) (entities.AttendeeProfile, bool) {
	match, ok := c.FindByEmail(ctx, email)
	if !ok {
		return entities.AttendeeProfile{}, false
	}

	fieldMap := c.FieldMap(ctx)

	full, ok := c.FetchByID(ctx, match.ID)
	if !ok {
		// Fall back to the partial search record rather than losing
		// the attendee entirely.
		return Normalize(match, fieldMap), true
	}
	return Normalize(full, fieldMap), true
}

// TestConnection verifies the credentials with a minimal search call.
func (c *Client) TestConnection(ctx context.Context) bool {
	payload := map[string]interface{}{
		"locationId": c.locationID,
		"pageLimit":  1,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/contacts/search", bytes.NewReader(b))
	if err != nil {
		return false
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Version", "2021-07-28")
	req.Header.Set("Content-Type", "application/json")
}
