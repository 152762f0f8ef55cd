package gdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/innovators-table/followup-assistant/internal/domain/entities"
	"github.com/innovators-table/followup-assistant/pkg/config"
)

// Client publishes run artifacts to Google Docs. Every operation
// returns a structured PublishResult; failures (missing credentials,
// transport errors, upstream rejections) become success=false results
// and never propagate as errors past this boundary.
type Client struct {
	baseURL    string
	httpClient *http.Client
	configured bool
}

// NewClient creates a Docs client authorized with a static OAuth token
// from the config. A missing token produces a client whose operations
// report a credential failure.
func NewClient(cfg *config.GoogleDocsConfig) *Client {
	base := "https://docs.googleapis.com"
	var token string
	if cfg != nil {
		token = cfg.AccessToken
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
	}

	c := &Client{baseURL: base}
	if token == "" {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
		return c
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c.httpClient = oauth2.NewClient(context.Background(), src)
	c.httpClient.Timeout = 30 * time.Second
	c.configured = true
	return c
}

// Configured reports whether an access token is present.
func (c *Client) Configured() bool {
	return c.configured
}

type insertTextRequest struct {
	InsertText struct {
		Location struct {
			Index int `json:"index"`
		} `json:"location"`
		Text string `json:"text"`
	} `json:"insertText"`
}

func newInsertText(index int, text string) insertTextRequest {
	var req insertTextRequest
	req.InsertText.Location.Index = index
	req.InsertText.Text = text
	return req
}

// Create makes a new document with the given title and inserts the full
// content at the start of the body.
func (c *Client) Create(ctx context.Context, title, content string) entities.PublishResult {
	if !c.configured {
		return entities.PublishResult{
			Success: false,
			Message: "Google Docs credentials are not configured",
		}
	}

	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return failure("create document", err)
	}

	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := c.do(ctx, "POST", "/v1/documents", body, &created); err != nil {
		return failure("create document", err)
	}
	if created.DocumentID == "" {
		return failure("create document", fmt.Errorf("response carried no document id"))
	}

	if err := c.batchUpdate(ctx, created.DocumentID, newInsertText(1, content)); err != nil {
		return failure("insert content", err)
	}

	return entities.PublishResult{
		Success:     true,
		Message:     "Document created successfully!",
		DocumentID:  created.DocumentID,
		DocumentURL: fmt.Sprintf("https://docs.google.com/document/d/%s/edit", created.DocumentID),
	}
}

// Append locates the end of an existing document's body and inserts the
// content after it, separated by a blank line.
func (c *Client) Append(ctx context.Context, documentID, content string) entities.PublishResult {
	if !c.configured {
		return entities.PublishResult{
			Success: false,
			Message: "Google Docs credentials are not configured",
		}
	}

	var doc struct {
		Body struct {
			Content []struct {
				EndIndex int `json:"endIndex"`
			} `json:"content"`
		} `json:"body"`
	}
	if err := c.do(ctx, "GET", "/v1/documents/"+documentID, nil, &doc); err != nil {
		return failure("fetch document", err)
	}
	if len(doc.Body.Content) == 0 {
		return failure("fetch document", fmt.Errorf("document body is empty"))
	}

	// Insertion must land before the body's trailing newline element.
	endIndex := doc.Body.Content[len(doc.Body.Content)-1].EndIndex - 1

	if err := c.batchUpdate(ctx, documentID, newInsertText(endIndex, "\n\n"+content)); err != nil {
		return failure("append content", err)
	}

	return entities.PublishResult{
		Success:     true,
		Message:     "Content appended successfully!",
		DocumentID:  documentID,
		DocumentURL: fmt.Sprintf("https://docs.google.com/document/d/%s/edit", documentID),
	}
}

func (c *Client) batchUpdate(ctx context.Context, documentID string, requests ...insertTextRequest) error {
	body, err := json.Marshal(map[string]interface{}{"requests": requests})
	if err != nil {
		return err
	}
	return c.do(ctx, "POST", "/v1/documents/"+documentID+":batchUpdate", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("docs api returned status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func failure(operation string, err error) entities.PublishResult {
	return entities.PublishResult{
		Success: false,
		Message: fmt.Sprintf("Error during %s: %v", operation, err),
	}
}
