package followup

import (
	"strings"
)

// bookletSeparator sits between consecutive booklets in the assembled
// artifact. One separator per boundary; never trailing.
var bookletSeparator = "\n" + strings.Repeat("=", 100) + "\n"

// AssembleArtifact joins the finished booklets into the single
// downloadable document.
func AssembleArtifact(booklets []string) string {
	return strings.Join(booklets, "\n"+bookletSeparator+"\n")
}

// ArtifactFilename derives the download filename from the event date,
// e.g. "11_19_follow_up_booklets.txt".
func ArtifactFilename(eventDate string) string {
	return eventDate + "_follow_up_booklets.txt"
}

// ArtifactTitle derives the publication document title from the event
// date, matching the download filename without its extension.
func ArtifactTitle(eventDate string) string {
	return eventDate + "_follow_up_booklets"
}
