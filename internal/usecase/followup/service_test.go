package followup

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/innovators-table/followup-assistant/errors"
	"github.com/innovators-table/followup-assistant/internal/domain/entities"
	"github.com/innovators-table/followup-assistant/pkg/config"
)

// stubGenerator scripts per-prompt behavior. The prompt router lets a
// test fail extraction for one speaker while others succeed.
type stubGenerator struct {
	mu         sync.Mutex
	configured bool
	respond    func(prompt string) (string, error)
	prompts    []string
}

func (g *stubGenerator) Configured() bool { return g.configured }

func (g *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.respond(prompt)
}

type stubContacts struct {
	configured bool
	profiles   map[string]entities.AttendeeProfile
	calls      []string
}

func (c *stubContacts) Configured() bool { return c.configured }

func (c *stubContacts) Resolve(ctx context.Context, email string) (entities.AttendeeProfile, bool) {
	c.calls = append(c.calls, email)
	p, ok := c.profiles[email]
	return p, ok
}

func (c *stubContacts) TestConnection(ctx context.Context) bool { return c.configured }

type stubPublisher struct {
	created  []string
	appended []string
	nextID   string
}

func (p *stubPublisher) Configured() bool { return true }

func (p *stubPublisher) Create(ctx context.Context, title, content string) entities.PublishResult {
	p.created = append(p.created, title)
	return entities.PublishResult{Success: true, Message: "Document created successfully!", DocumentID: p.nextID}
}

func (p *stubPublisher) Append(ctx context.Context, documentID, content string) entities.PublishResult {
	p.appended = append(p.appended, documentID)
	return entities.PublishResult{Success: true, Message: "Content appended successfully!", DocumentID: documentID}
}

type memStore struct {
	mu   sync.Mutex
	runs map[string]entities.Run
}

func newMemStore() *memStore {
	return &memStore{runs: make(map[string]entities.Run)}
}

func (s *memStore) Save(run *entities.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID.String()] = *run
	return nil
}

func (s *memStore) Get(runID string) (*entities.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[runID]
	if !ok {
		return nil, apperrors.ErrRunNotFound(runID)
	}
	return &run, nil
}

func testConfig() *config.FollowupConfig {
	return &config.FollowupConfig{
		LookupDelay:     time.Millisecond,
		StageTimeout:    time.Second,
		StageMaxRetries: 0,
		RunTTL:          time.Hour,
	}
}

func newTestService(gen *stubGenerator) (*Service, *stubPublisher, *memStore) {
	publisher := &stubPublisher{nextID: "doc-1"}
	store := newMemStore()
	svc := NewService(gen, &stubContacts{configured: true}, publisher, nil, nil, store, testConfig(), nil)
	return svc, publisher, store
}

func twoSpeakerRoster() *entities.Roster {
	return entities.NewRoster([]entities.AttendeeProfile{
		{Name: "Jane Doe", Company: "Acme", BiggestChallenge: "churn"},
		{Name: "Bob Reed", Company: "Reed Co", BiggestChallenge: "hiring"},
	})
}

const testTranscript = "Speaker 1: We have been fighting churn all year. Speaker 2: Hiring is our bottleneck."

func TestGenerateProducesBookletPerSpeaker(t *testing.T) {
	gen := &stubGenerator{configured: true, respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "extract the speaker's transcript") {
			return "a long enough extracted transcript segment", nil
		}
		if strings.Contains(prompt, "Jane Doe") {
			return "booklet for Jane with plenty of content", nil
		}
		return "booklet for Bob with plenty of content", nil
	}}
	svc, _, _ := newTestService(gen)

	run, err := svc.Generate(context.Background(), GenerateInput{
		Roster:     twoSpeakerRoster(),
		Transcript: testTranscript,
		EventDate:  "11_19",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Status != entities.RunStatusCompleted {
		t.Fatalf("expected completed run, got %s", run.Status)
	}
	if run.Filename != "11_19_follow_up_booklets.txt" {
		t.Errorf("unexpected filename %q", run.Filename)
	}

	separator := strings.Repeat("=", 100)
	if got := strings.Count(run.Artifact, separator); got != 1 {
		t.Fatalf("expected 1 separator between 2 booklets, got %d", got)
	}
	if !strings.Contains(run.Artifact, "booklet for Jane") || !strings.Contains(run.Artifact, "booklet for Bob") {
		t.Error("artifact missing a booklet")
	}

	if len(run.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(run.Outcomes))
	}
	for _, outcome := range run.Outcomes {
		if !outcome.Completed {
			t.Errorf("expected %s completed, got reason %q", outcome.Label, outcome.Reason)
		}
	}
	if run.Progress != 1 {
		t.Errorf("expected final progress 1, got %v", run.Progress)
	}
}

func TestGenerateSkipsSpeakerOnShortExtraction(t *testing.T) {
	gen := &stubGenerator{configured: true, respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "extract the speaker's transcript") {
			if strings.Contains(prompt, "Jane Doe") {
				return "too short", nil
			}
			return "a long enough extracted transcript segment", nil
		}
		return "booklet for Bob with plenty of content", nil
	}}
	svc, _, _ := newTestService(gen)

	run, err := svc.Generate(context.Background(), GenerateInput{
		Roster:     twoSpeakerRoster(),
		Transcript: testTranscript,
		EventDate:  "11_19",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Status != entities.RunStatusCompleted {
		t.Fatalf("one booklet still completes the run, got %s", run.Status)
	}
	if strings.Contains(run.Artifact, strings.Repeat("=", 100)) {
		t.Error("single booklet artifact should carry no separator")
	}

	var jane, bob *entities.AttendeeOutcome
	for i := range run.Outcomes {
		switch run.Outcomes[i].Name {
		case "Jane Doe":
			jane = &run.Outcomes[i]
		case "Bob Reed":
			bob = &run.Outcomes[i]
		}
	}
	if jane == nil || jane.Completed {
		t.Errorf("expected Jane skipped, got %+v", jane)
	}
	if jane != nil && !strings.Contains(jane.Reason, "too short") {
		t.Errorf("expected short-result reason, got %q", jane.Reason)
	}
	if bob == nil || !bob.Completed {
		t.Errorf("expected Bob completed, got %+v", bob)
	}
}

func TestGenerateFailsRunWhenNothingCompletes(t *testing.T) {
	gen := &stubGenerator{configured: true, respond: func(prompt string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	svc, _, _ := newTestService(gen)

	run, err := svc.Generate(context.Background(), GenerateInput{
		Roster:     twoSpeakerRoster(),
		Transcript: testTranscript,
		EventDate:  "11_19",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Status != entities.RunStatusFailed {
		t.Errorf("expected failed run, got %s", run.Status)
	}
	if run.Artifact != "" {
		t.Errorf("expected empty artifact, got %q", run.Artifact)
	}
}

func TestGenerateRejectsMissingTranscript(t *testing.T) {
	gen := &stubGenerator{configured: true, respond: func(string) (string, error) { return "", nil }}
	svc, _, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), GenerateInput{
		Roster:     twoSpeakerRoster(),
		Transcript: "   short   ",
		EventDate:  "11_19",
	})

	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_MISSING_TRANSCRIPT {
		t.Fatalf("expected missing-transcript error, got %v", err)
	}
}

func TestGenerateRejectsUnconfiguredGenerator(t *testing.T) {
	gen := &stubGenerator{configured: false}
	svc, _, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), GenerateInput{
		Roster:     twoSpeakerRoster(),
		Transcript: testTranscript,
		EventDate:  "11_19",
	})

	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_CREDENTIALS_MISSING {
		t.Fatalf("expected credentials error, got %v", err)
	}
}

func TestGenerateReportsProgressFractions(t *testing.T) {
	gen := &stubGenerator{configured: true, respond: func(prompt string) (string, error) {
		return "a long enough generated text for any stage", nil
	}}
	svc, _, _ := newTestService(gen)

	var fractions []float64
	_, err := svc.Generate(context.Background(), GenerateInput{
		Roster:     twoSpeakerRoster(),
		Transcript: testTranscript,
		EventDate:  "11_19",
		Progress:   func(f float64) { fractions = append(fractions, f) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fractions) != 2 || fractions[0] != 0.5 || fractions[1] != 1 {
		t.Errorf("unexpected progress sequence %v", fractions)
	}
}

func TestPublishCreatesThenAppends(t *testing.T) {
	gen := &stubGenerator{configured: true, respond: func(prompt string) (string, error) {
		return "a long enough generated text for any stage", nil
	}}
	svc, publisher, _ := newTestService(gen)

	run, err := svc.Generate(context.Background(), GenerateInput{
		Roster:     twoSpeakerRoster(),
		Transcript: testTranscript,
		EventDate:  "11_19",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.Publish(context.Background(), run.ID.String(), "")
	if err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}
	if !first.Success || first.DocumentID != "doc-1" {
		t.Fatalf("unexpected first publish %+v", first)
	}
	if len(publisher.created) != 1 || publisher.created[0] != "11_19_follow_up_booklets" {
		t.Errorf("unexpected created titles %v", publisher.created)
	}

	// Second publish of the same run appends to the stored document.
	second, err := svc.Publish(context.Background(), run.ID.String(), "")
	if err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}
	if !second.Success || second.DocumentID != "doc-1" {
		t.Fatalf("unexpected second publish %+v", second)
	}
	if len(publisher.appended) != 1 || publisher.appended[0] != "doc-1" {
		t.Errorf("unexpected appended ids %v", publisher.appended)
	}
}

func TestPublishRequiresCompletedRun(t *testing.T) {
	gen := &stubGenerator{configured: true, respond: func(prompt string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	svc, _, _ := newTestService(gen)

	run, err := svc.Generate(context.Background(), GenerateInput{
		Roster:     twoSpeakerRoster(),
		Transcript: testTranscript,
		EventDate:  "11_19",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Publish(context.Background(), run.ID.String(), "")
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_RUN_NOT_COMPLETED {
		t.Fatalf("expected run-not-completed error, got %v", err)
	}
}

func TestPublishUnknownRun(t *testing.T) {
	gen := &stubGenerator{configured: true}
	svc, _, _ := newTestService(gen)

	_, err := svc.Publish(context.Background(), "no-such-run", "")
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_RUN_NOT_FOUND {
		t.Fatalf("expected run-not-found error, got %v", err)
	}
}

func TestResolveContactsPacingAndLog(t *testing.T) {
	contacts := &stubContacts{
		configured: true,
		profiles: map[string]entities.AttendeeProfile{
			"jane@acme.com": {Name: "Jane Doe", Company: "Acme"},
		},
	}
	svc := NewService(&stubGenerator{configured: true}, contacts, &stubPublisher{}, nil, nil, newMemStore(), testConfig(), nil)

	result, err := svc.ResolveContacts(context.Background(), []string{"jane@acme.com", "ghost@x.com", "John Smith"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Profiles) != 1 || result.Profiles[0].Name != "Jane Doe" {
		t.Fatalf("unexpected profiles %+v", result.Profiles)
	}
	if len(contacts.calls) != 2 {
		t.Errorf("expected 2 CRM lookups (name identifier skipped), got %d", len(contacts.calls))
	}

	joined := strings.Join(result.Messages, "\n")
	if !strings.Contains(joined, "Found: Jane Doe - Acme") {
		t.Errorf("missing found line in %q", joined)
	}
	if !strings.Contains(joined, "Not found: ghost@x.com") {
		t.Errorf("missing not-found line in %q", joined)
	}
	if !strings.Contains(joined, "Unsupported identifier") {
		t.Errorf("missing unsupported line in %q", joined)
	}
	if !strings.Contains(joined, "Total participants fetched: 1") {
		t.Errorf("missing total line in %q", joined)
	}
}

func TestResolveContactsWithoutCredentials(t *testing.T) {
	svc := NewService(&stubGenerator{configured: true}, &stubContacts{configured: false}, &stubPublisher{}, nil, nil, newMemStore(), testConfig(), nil)

	_, err := svc.ResolveContacts(context.Background(), []string{"jane@acme.com"}, nil)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_CREDENTIALS_MISSING {
		t.Fatalf("expected credentials error, got %v", err)
	}
}
