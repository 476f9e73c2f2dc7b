// Package snapshot fetches governance proposals from the Snapshot GraphQL hub.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/bilgisen/daoexplorer/internal/metrics"
	"github.com/bilgisen/daoexplorer/internal/models"
	"github.com/go-resty/resty/v2"
)

const (
	// DefaultEndpoint is the public Snapshot hub
	DefaultEndpoint = "https://hub.snapshot.org/graphql"
	// DefaultLimit is the number of proposals fetched per request
	DefaultLimit = 10

	userAgent = "DAO-Governance-Explorer/1.0"
)

const proposalsQuery = `query Proposals($space: String!, $first: Int!) {
  proposals(
    first: $first,
    where: { space: $space },
    orderBy: "created",
    orderDirection: desc
  ) {
    id
    title
    body
    choices
    start
    end
    state
    author
    scores
    scores_total
    votes
    created
    link
  }
}`

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type proposalsResponse struct {
	Data *struct {
		Proposals []rawProposal `json:"proposals"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type rawProposal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Choices     []string  `json:"choices"`
	Start       int64     `json:"start"`
	End         int64     `json:"end"`
	State       string    `json:"state"`
	Author      string    `json:"author"`
	Scores      []float64 `json:"scores"`
	ScoresTotal float64   `json:"scores_total"`
	Votes       int       `json:"votes"`
	Created     int64     `json:"created"`
	Link        string    `json:"link"`
}

// Client talks to the Snapshot hub. Safe for concurrent use.
type Client struct {
	client   *resty.Client
	endpoint string
	limit    int
}

// NewClient creates a client with a bounded request timeout and no retries.
func NewClient(endpoint string, timeout time.Duration, limit int) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Client{
		client: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json").
			SetHeader("User-Agent", userAgent),
		endpoint: endpoint,
		limit:    limit,
	}
}

// FetchProposals returns the most recently created proposals of a space.
// limit <= 0 uses the client default.
func (c *Client) FetchProposals(ctx context.Context, daoName string, limit int) ([]models.Proposal, error) {
	log := logger.Get()
	if limit <= 0 {
		limit = c.limit
	}
	space := strings.ToLower(daoName)

	log.Info().
		Str("dao", daoName).
		Int("limit", limit).
		Msg("Fetching proposals")

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(graphQLRequest{
			Query: proposalsQuery,
			Variables: map[string]interface{}{
				"space": space,
				"first": limit,
			},
		}).
		Post(c.endpoint)
	if err != nil {
		log.Error().Err(err).Str("dao", daoName).Msg("Network error fetching proposals")
		return nil, unavailable(fmt.Errorf("request failed: %w", err))
	}

	if !resp.IsSuccess() {
		log.Error().
			Int("status", resp.StatusCode()).
			Str("dao", daoName).
			Msg("Unexpected status from Snapshot API")
		return nil, unavailable(fmt.Errorf("unexpected status code %d", resp.StatusCode()))
	}

	var payload proposalsResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		log.Error().Err(err).Str("dao", daoName).Msg("Malformed Snapshot response")
		return nil, unavailable(fmt.Errorf("decode response: %w", err))
	}

	if len(payload.Errors) > 0 {
		qerr := &QueryError{Errors: payload.Errors}
		log.Error().Err(qerr).Str("dao", daoName).Msg("GraphQL errors")
		metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeQueryError).Inc()
		return nil, qerr
	}

	if payload.Data == nil {
		log.Error().Str("dao", daoName).Msg("Snapshot response has no data")
		return nil, unavailable(fmt.Errorf("no data in response"))
	}

	proposals := normalizeProposals(space, payload.Data.Proposals)
	metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeOK).Inc()

	log.Info().
		Str("dao", daoName).
		Int("count", len(proposals)).
		Dur("duration", time.Since(start)).
		Msg("Fetched proposals")

	return proposals, nil
}

func unavailable(err error) error {
	metrics.SnapshotRequests.WithLabelValues(metrics.OutcomeUnavailable).Inc()
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}
