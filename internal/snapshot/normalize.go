package snapshot

import (
	"fmt"
	"strings"

	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/bilgisen/daoexplorer/internal/models"
)

// normalizeProposals converts hub records into proposals, in source order.
// Records without id or title are dropped.
func normalizeProposals(space string, raw []rawProposal) []models.Proposal {
	proposals := make([]models.Proposal, 0, len(raw))
	for _, r := range raw {
		p := normalizeProposal(space, r)
		if err := validateProposal(p); err != nil {
			logger.Get().Warn().
				Err(err).
				Str("space", space).
				Str("id", p.ID).
				Msg("Skipping invalid proposal")
			continue
		}
		proposals = append(proposals, p)
	}
	return proposals
}

func normalizeProposal(space string, r rawProposal) models.Proposal {
	id := strings.TrimSpace(r.ID)
	link := models.ProposalLink(space, id)

	original := strings.TrimSpace(r.Link)
	if original == "" {
		original = link
	}

	choices := r.Choices
	if choices == nil {
		choices = []string{}
	}
	scores := r.Scores
	if scores == nil {
		scores = []float64{}
	}

	return models.Proposal{
		ID:           id,
		Title:        strings.TrimSpace(r.Title),
		Body:         r.Body,
		Choices:      choices,
		State:        r.State,
		Author:       r.Author,
		Created:      r.Created,
		Start:        r.Start,
		End:          r.End,
		Votes:        r.Votes,
		Scores:       scores,
		ScoresTotal:  r.ScoresTotal,
		Link:         link,
		OriginalLink: original,
	}
}

func validateProposal(p models.Proposal) error {
	if p.ID == "" {
		return fmt.Errorf("missing required field: id")
	}
	if p.Title == "" {
		return fmt.Errorf("missing required field: title")
	}
	return nil
}
