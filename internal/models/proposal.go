package models

import "fmt"

// SnapshotProposalURL is the public proposal page on snapshot.org
const SnapshotProposalURL = "https://snapshot.org/#/%s/proposal/%s"

// Proposal is a single governance vote item of a DAO space
type Proposal struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Choices      []string  `json:"choices"`
	State        string    `json:"state"`
	Author       string    `json:"author"`
	Created      int64     `json:"created"`
	Start        int64     `json:"start"`
	End          int64     `json:"end"`
	Votes        int       `json:"votes"`
	Scores       []float64 `json:"scores"`
	ScoresTotal  float64   `json:"scores_total"`
	Link         string    `json:"link"`
	OriginalLink string    `json:"original_link"`
	AISummary    string    `json:"ai_summary"`
}

// ProposalLink builds the snapshot.org link for a proposal of the given space.
// space is expected to be lower-cased already.
func ProposalLink(space, id string) string {
	return fmt.Sprintf(SnapshotProposalURL, space, id)
}

// Space is a Snapshot space suggested on the input form
type Space struct {
	ID      string `json:"id"`
	Display string `json:"display"`
}
