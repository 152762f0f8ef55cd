package followup

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/innovators-table/followup-assistant/errors"
	"github.com/innovators-table/followup-assistant/internal/domain/entities"
	"github.com/innovators-table/followup-assistant/pkg/config"
)

// TextGenerator produces free text from a prompt.
type TextGenerator interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Publisher pushes finished artifacts to an external document store.
type Publisher interface {
	Configured() bool
	Create(ctx context.Context, title, content string) entities.PublishResult
	Append(ctx context.Context, documentID, content string) entities.PublishResult
}

// Archiver stores finished artifacts in object storage so they stay
// downloadable after the run record expires. Optional; a nil archiver
// disables archiving.
type Archiver interface {
	ArchiveText(ctx context.Context, objectName string, content string) error
	ArtifactURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	ListArtifacts(ctx context.Context, prefix string) ([]string, error)
}

// archiveLinkExpiry bounds presigned artifact download links.
const archiveLinkExpiry = time.Hour

// AudioTranscriber turns a recording URL into a speaker-labeled
// transcript. Optional; used when a request carries a recording URL
// instead of a pasted transcript.
type AudioTranscriber interface {
	Configured() bool
	TranscribeURL(ctx context.Context, recordingURL string) (string, error)
}

// RunStore persists run records across requests.
type RunStore interface {
	Save(run *entities.Run) error
	Get(runID string) (*entities.Run, error)
}

// GenerateInput is everything one processing run needs.
type GenerateInput struct {
	Roster       *entities.Roster
	Transcript   string
	RecordingURL string
	EventDate    string
	Progress     ProgressFunc
}

// Service orchestrates the full pipeline: contact resolution, roster
// building, per-attendee segment extraction and booklet synthesis, and
// the output sink.
type Service struct {
	generator   TextGenerator
	contacts    ContactAPI
	publisher   Publisher
	archiver    Archiver
	transcriber AudioTranscriber
	runs        RunStore
	lookupDelay time.Duration
	stageOpts   StageOptions
	logger      *zap.Logger
}

// NewService wires the pipeline dependencies. Archiver and transcriber
// may be nil; those capabilities are then disabled.
func NewService(
	generator TextGenerator,
	contacts ContactAPI,
	publisher Publisher,
	archiver Archiver,
	transcriber AudioTranscriber,
	runs RunStore,
	cfg *config.FollowupConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		generator:   generator,
		contacts:    contacts,
		publisher:   publisher,
		archiver:    archiver,
		transcriber: transcriber,
		runs:        runs,
		lookupDelay: cfg.LookupDelay,
		stageOpts: StageOptions{
			Timeout:    cfg.StageTimeout,
			MaxRetries: cfg.StageMaxRetries,
		},
		logger: logger,
	}
}

// TestCRMConnection reports whether the CRM credentials work.
func (s *Service) TestCRMConnection(ctx context.Context) (bool, error) {
	if !s.contacts.Configured() {
		return false, apperrors.ErrMissingCredentials("CRM")
	}
	return s.contacts.TestConnection(ctx), nil
}

// GetRun fetches a run record by ID.
func (s *Service) GetRun(runID string) (*entities.Run, error) {
	return s.runs.Get(runID)
}

// Generate executes one full processing run: validates inputs, walks
// every non-host speaker through extraction and synthesis, and
// assembles the artifact. Per-attendee failures are recorded as
// outcomes and never abort the run; the run fails only when its inputs
// are unusable.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*entities.Run, error) {
	if !s.generator.Configured() {
		return nil, apperrors.ErrMissingCredentials("text generation")
	}

	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" && input.RecordingURL != "" {
		var err error
		transcript, err = s.transcribeRecording(ctx, input.RecordingURL)
		if err != nil {
			return nil, err
		}
	}
	if len(transcript) < minGeneratedTextLength {
		return nil, apperrors.ErrMissingTranscript()
	}

	run := entities.NewRun(input.EventDate)
	run.Filename = ArtifactFilename(input.EventDate)
	run.Logf("Identified %d speakers (host included)", input.Roster.Len())
	s.saveRun(run)

	speakers := input.Roster.Speakers()
	booklets := make([]string, 0, len(speakers))

	for idx, speaker := range speakers {
		run.Logf("Processing %s: %s...", speaker.Label, speaker.Profile.Name)
		if s.logger != nil {
			s.logger.Info("processing speaker",
				zap.String("run_id", run.ID.String()),
				zap.String("label", speaker.Label),
				zap.String("name", speaker.Profile.Name),
			)
		}

		booklet, err := s.generateBooklet(ctx, input.Roster, speaker, transcript, input.EventDate, run)
		if err != nil {
			run.Outcomes = append(run.Outcomes, entities.AttendeeOutcome{
				Label:     speaker.Label,
				Name:      speaker.Profile.Name,
				Completed: false,
				Reason:    err.Error(),
			})
			if s.logger != nil {
				s.logger.Warn("speaker skipped",
					zap.String("run_id", run.ID.String()),
					zap.String("label", speaker.Label),
					zap.Error(err),
				)
			}
		} else {
			booklets = append(booklets, booklet)
			run.Outcomes = append(run.Outcomes, entities.AttendeeOutcome{
				Label:     speaker.Label,
				Name:      speaker.Profile.Name,
				Completed: true,
			})
		}

		run.Progress = float64(idx+1) / float64(len(speakers))
		if input.Progress != nil {
			input.Progress(run.Progress)
		}
		s.saveRun(run)
	}

	run.Artifact = AssembleArtifact(booklets)
	run.Status = entities.RunStatusCompleted
	if len(booklets) == 0 {
		run.Status = entities.RunStatusFailed
	}
	run.Logf("Processing complete! %d of %d booklets generated", len(booklets), len(speakers))
	s.saveRun(run)

	s.archiveArtifact(ctx, run)

	return run, nil
}

// generateBooklet runs the two generation stages for one speaker.
func (s *Service) generateBooklet(ctx context.Context, roster *entities.Roster, speaker entities.RosterEntry, transcript, eventDate string, run *entities.Run) (string, error) {
	run.Logf("Extracting speaker transcripts for %s...", speaker.Label)

	segment, err := runStage(ctx, s.stageOpts, func(stageCtx context.Context) (string, error) {
		return s.generator.GenerateText(stageCtx, BuildExtractionPrompt(speaker.Profile, transcript))
	})
	if err != nil {
		return "", apperrors.ErrGenerationFailed(speaker.Label, err)
	}
	if len(segment) < minGeneratedTextLength {
		return "", apperrors.ErrResultTooShort(speaker.Label, "speaker transcript", len(segment))
	}

	run.Logf("Designing the follow-up booklet for %s...", speaker.Label)

	booklet, err := runStage(ctx, s.stageOpts, func(stageCtx context.Context) (string, error) {
		return s.generator.GenerateText(stageCtx, BuildBookletPrompt(roster, speaker.Label, segment, eventDate))
	})
	if err != nil {
		return "", apperrors.ErrGenerationFailed(speaker.Label, err)
	}
	if len(booklet) < minGeneratedTextLength {
		return "", apperrors.ErrResultTooShort(speaker.Label, "follow-up booklet", len(booklet))
	}

	return booklet, nil
}

// Publish sends a completed run's artifact to the document store. The
// first publication creates a document; when the caller supplies a
// document ID (or the run already has one), content is appended
// instead.
func (s *Service) Publish(ctx context.Context, runID string, documentID string) (entities.PublishResult, error) {
	run, err := s.runs.Get(runID)
	if err != nil {
		return entities.PublishResult{}, err
	}
	if run.Status != entities.RunStatusCompleted || run.Artifact == "" {
		return entities.PublishResult{}, apperrors.ErrRunNotCompleted(runID)
	}

	if documentID == "" {
		documentID = run.DocumentID
	}

	var result entities.PublishResult
	if documentID == "" {
		result = s.publisher.Create(ctx, ArtifactTitle(run.EventDate), run.Artifact)
	} else {
		result = s.publisher.Append(ctx, documentID, run.Artifact)
	}

	if result.Success {
		run.DocumentID = result.DocumentID
		run.Logf("Published to document %s", result.DocumentID)
		s.saveRun(run)
	}

	return result, nil
}

// ListArchivedArtifacts returns the names of booklet files in the
// archive.
func (s *Service) ListArchivedArtifacts(ctx context.Context) ([]string, error) {
	if s.archiver == nil {
		return nil, apperrors.ErrMissingCredentials("artifact archive")
	}
	return s.archiver.ListArtifacts(ctx, "")
}

// ArchivedArtifactURL returns a time-limited download URL for an
// archived booklet file.
func (s *Service) ArchivedArtifactURL(ctx context.Context, name string) (string, error) {
	if s.archiver == nil {
		return "", apperrors.ErrMissingCredentials("artifact archive")
	}
	return s.archiver.ArtifactURL(ctx, name, archiveLinkExpiry)
}

func (s *Service) transcribeRecording(ctx context.Context, recordingURL string) (string, error) {
	if s.transcriber == nil || !s.transcriber.Configured() {
		return "", apperrors.ErrMissingCredentials("transcription")
	}
	transcript, err := s.transcriber.TranscribeURL(ctx, recordingURL)
	if err != nil {
		return "", apperrors.ErrTranscriptionFailed(err)
	}
	return transcript, nil
}

func (s *Service) archiveArtifact(ctx context.Context, run *entities.Run) {
	if s.archiver == nil || run.Artifact == "" {
		return
	}
	if err := s.archiver.ArchiveText(ctx, run.Filename, run.Artifact); err != nil {
		if s.logger != nil {
			s.logger.Warn("artifact archive failed",
				zap.String("run_id", run.ID.String()),
				zap.Error(err),
			)
		}
		return
	}
	run.Logf("Artifact archived as %s", run.Filename)
	s.saveRun(run)
}

func (s *Service) saveRun(run *entities.Run) {
	if err := s.runs.Save(run); err != nil && s.logger != nil {
		s.logger.Warn("run save failed",
			zap.String("run_id", run.ID.String()),
			zap.Error(err),
		)
	}
}
