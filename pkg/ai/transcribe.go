package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/innovators-table/followup-assistant/pkg/config"
)

// Transcriber turns a recording URL into transcript text via AssemblyAI.
// Runs are synchronous here, so it submits and polls instead of using
// webhooks.
type Transcriber struct {
	client *aai.Client
	apiKey string
}

// NewTranscriber creates a transcriber using the provided config.
// If cfg is nil, falls back to environment variables.
func NewTranscriber(cfg *config.AssemblyAIConfig) *Transcriber {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &Transcriber{
		client: aai.NewClient(apiKey),
		apiKey: apiKey,
	}
}

// Configured reports whether an API key is present.
func (t *Transcriber) Configured() bool {
	return t.apiKey != ""
}

// TranscribeURL submits the recording for transcription with speaker
// labels and blocks until it completes. Speaker-segmented text is
// preferred when available so the extraction step sees who said what.
func (t *Transcriber) TranscribeURL(ctx context.Context, recordingURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}

	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, recordingURL, params)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe recording: %w", err)
	}

	if transcript.Status != aai.TranscriptStatusCompleted {
		if transcript.ID == nil {
			return "", fmt.Errorf("transcription did not complete: status %s", transcript.Status)
		}
		transcript, err = t.client.Transcripts.Wait(ctx, *transcript.ID)
		if err != nil {
			return "", fmt.Errorf("failed waiting for transcription: %w", err)
		}
	}

	if transcript.Status == aai.TranscriptStatusError {
		if transcript.Error != nil {
			return "", fmt.Errorf("transcription failed: %s", *transcript.Error)
		}
		return "", fmt.Errorf("transcription failed")
	}

	if len(transcript.Utterances) > 0 {
		var sb strings.Builder
		for _, utt := range transcript.Utterances {
			speaker := ""
			if utt.Speaker != nil {
				speaker = *utt.Speaker
			}
			text := ""
			if utt.Text != nil {
				text = *utt.Text
			}
			sb.WriteString(fmt.Sprintf("Speaker %s: %s\n", speaker, text))
		}
		return sb.String(), nil
	}

	if transcript.Text != nil {
		return *transcript.Text, nil
	}
	return "", fmt.Errorf("transcription returned no text")
}
