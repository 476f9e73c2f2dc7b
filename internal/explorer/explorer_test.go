package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bilgisen/daoexplorer/internal/ai"
	"github.com/bilgisen/daoexplorer/internal/models"
	"github.com/bilgisen/daoexplorer/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	proposals []models.Proposal
	err       error
	calls     int
	gotName   string
	gotLimit  int
}

func (f *fakeSource) FetchProposals(ctx context.Context, daoName string, limit int) ([]models.Proposal, error) {
	f.calls++
	f.gotName = daoName
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Proposal, len(f.proposals))
	copy(out, f.proposals)
	return out, nil
}

type fakeSummarizer struct {
	mu     sync.Mutex
	titles []string
	fn     func(title, body string) string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, title, body string) string {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(title, body)
	}
	return "AI: " + title
}

const longBody = "This proposal moves treasury funds into a diversified grants program."

func TestExploreRejectsBlankNames(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		src := &fakeSource{}
		e := New(src, &fakeSummarizer{}, Config{Limit: 10})

		res, err := e.Explore(context.Background(), name)
		assert.ErrorIs(t, err, ErrEmptyDAOName)
		assert.Nil(t, res)
		assert.Zero(t, src.calls, "no fetch for %q", name)
	}
}

func TestExploreAnnotatesEveryProposal(t *testing.T) {
	src := &fakeSource{proposals: []models.Proposal{
		{ID: "1", Title: "Upgrade Treasury", Body: longBody},
		{ID: "2", Title: "Short", Body: "tl;dr"},
		{ID: "3", Title: "Empty", Body: ""},
		{ID: "4", Title: "Exactly twenty", Body: "  " + strings.Repeat("z", 20) + "  "},
	}}
	sum := &fakeSummarizer{}
	e := New(src, sum, Config{Limit: 7, MaxConcurrency: 1})

	res, err := e.Explore(context.Background(), "  ENS.eth ")
	require.NoError(t, err)
	assert.Equal(t, "ENS.eth", res.DAOName)
	assert.Equal(t, "ENS.eth", src.gotName)
	assert.Equal(t, 7, src.gotLimit)

	require.Len(t, res.Proposals, 4)
	assert.Equal(t, "AI: Upgrade Treasury", res.Proposals[0].AISummary)
	assert.Equal(t, LimitedSummary("Short"), res.Proposals[1].AISummary)
	assert.Equal(t, "Summary: Empty. This governance proposal has limited description available.", res.Proposals[2].AISummary)
	assert.Equal(t, LimitedSummary("Exactly twenty"), res.Proposals[3].AISummary)

	assert.Equal(t, []string{"Upgrade Treasury"}, sum.titles, "short bodies never reach the summarizer")
}

func TestExploreContainsSummarizerPanics(t *testing.T) {
	src := &fakeSource{proposals: []models.Proposal{
		{ID: "1", Title: "Boom", Body: longBody},
		{ID: "2", Title: "Fine", Body: longBody},
		{ID: "3", Title: "Blank", Body: longBody},
	}}
	sum := &fakeSummarizer{fn: func(title, body string) string {
		switch title {
		case "Boom":
			panic("provider exploded")
		case "Blank":
			return "  "
		}
		return "AI: " + title
	}}

	res, err := New(src, sum, Config{MaxConcurrency: 3}).Explore(context.Background(), "aave.eth")
	require.NoError(t, err)
	require.Len(t, res.Proposals, 3)

	assert.Equal(t, ai.FallbackSummary("Boom", longBody), res.Proposals[0].AISummary)
	assert.Equal(t, "AI: Fine", res.Proposals[1].AISummary)
	assert.Equal(t, ai.FallbackSummary("Blank", longBody), res.Proposals[2].AISummary)
}

func TestExplorePreservesOrderUnderConcurrency(t *testing.T) {
	var proposals []models.Proposal
	for i := 0; i < 20; i++ {
		proposals = append(proposals, models.Proposal{ID: fmt.Sprint(i), Title: fmt.Sprintf("P%02d", i), Body: longBody})
	}
	sum := &fakeSummarizer{fn: func(title, body string) string {
		// later items finish first
		var n int
		fmt.Sscanf(title, "P%d", &n)
		time.Sleep(time.Duration(20-n) * time.Millisecond)
		return "AI: " + title
	}}

	res, err := New(&fakeSource{proposals: proposals}, sum, Config{MaxConcurrency: 8}).Explore(context.Background(), "nouns.eth")
	require.NoError(t, err)
	require.Len(t, res.Proposals, 20)
	for i, p := range res.Proposals {
		assert.Equal(t, fmt.Sprint(i), p.ID)
		assert.Equal(t, "AI: "+p.Title, p.AISummary)
	}
}

func TestExploreSummariesNeverEmpty(t *testing.T) {
	src := &fakeSource{proposals: []models.Proposal{
		{ID: "1", Title: "A", Body: longBody},
		{ID: "2", Title: "B", Body: ""},
	}}
	summarizer := ai.NewSummarizer(nil, ai.SummarizerConfig{})

	res, err := New(src, summarizer, Config{}).Explore(context.Background(), "curve.eth")
	require.NoError(t, err)
	for _, p := range res.Proposals {
		assert.NotEmpty(t, p.AISummary)
	}
	assert.Equal(t, ai.UnavailableSummary, res.Proposals[0].AISummary)
}

func TestExploreZeroProposals(t *testing.T) {
	res, err := New(&fakeSource{}, &fakeSummarizer{}, Config{}).Explore(context.Background(), "ghost.eth")
	require.NoError(t, err)
	assert.Empty(t, res.Proposals)
	assert.Equal(t, "No proposals found for DAO: ghost.eth", NoProposalsMessage(res.DAOName))
}

func TestExploreWrapsSourceErrors(t *testing.T) {
	srcErr := fmt.Errorf("%w: dial tcp: timeout", snapshot.ErrSourceUnavailable)
	sum := &fakeSummarizer{}

	res, err := New(&fakeSource{err: srcErr}, sum, Config{}).Explore(context.Background(), "ens.eth")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, snapshot.ErrSourceUnavailable))
	assert.Empty(t, sum.titles)
}
