package followup

import (
	"strings"
	"testing"
)

func TestAssembleArtifactSeparatesBooklets(t *testing.T) {
	artifact := AssembleArtifact([]string{"booklet one", "booklet two"})

	separator := strings.Repeat("=", 100)
	if got := strings.Count(artifact, separator); got != 1 {
		t.Fatalf("expected 1 separator, got %d", got)
	}

	parts := strings.Split(artifact, separator)
	if len(parts) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(parts))
	}
	if !strings.Contains(parts[0], "booklet one") || !strings.Contains(parts[1], "booklet two") {
		t.Errorf("booklets out of order: %q / %q", parts[0], parts[1])
	}
	if strings.HasSuffix(artifact, separator+"\n") || strings.HasSuffix(artifact, separator) {
		t.Error("artifact should not end with a separator")
	}
}

func TestAssembleArtifactSingleBooklet(t *testing.T) {
	artifact := AssembleArtifact([]string{"only one"})

	if artifact != "only one" {
		t.Errorf("single booklet should pass through unchanged, got %q", artifact)
	}
}

func TestAssembleArtifactEmpty(t *testing.T) {
	if got := AssembleArtifact(nil); got != "" {
		t.Errorf("expected empty artifact, got %q", got)
	}
}

func TestArtifactNaming(t *testing.T) {
	if got := ArtifactFilename("11_19"); got != "11_19_follow_up_booklets.txt" {
		t.Errorf("unexpected filename %q", got)
	}
	if got := ArtifactTitle("11_19"); got != "11_19_follow_up_booklets" {
		t.Errorf("unexpected title %q", got)
	}
}
