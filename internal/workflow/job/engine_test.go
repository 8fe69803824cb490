package job

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubCaps struct {
	mu sync.Mutex

	ack      capability.JobPostAck
	postErr  error
	matches  capability.JobMatchResult
	matchErr error

	block   chan struct{}
	entered chan struct{}

	matchBlock   chan struct{}
	matchEntered chan struct{}

	posted  []capability.JobPosting
	queries []capability.MatchQuery
}

func (s *stubCaps) PostJob(_ context.Context, p capability.JobPosting) (capability.JobPostAck, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posted = append(s.posted, p)
	return s.ack, s.postErr
}

func (s *stubCaps) MatchCandidates(_ context.Context, q capability.MatchQuery) (capability.JobMatchResult, error) {
	if s.matchEntered != nil {
		s.matchEntered <- struct{}{}
	}
	if s.matchBlock != nil {
		<-s.matchBlock
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	return s.matches, s.matchErr
}

var form = capability.JobForm{
	Title:       "Backend Engineer",
	Company:     "Acme",
	Location:    "Remote",
	Description: "Build APIs",
	Skills:      "React, Node.js, ,TS",
}

func TestPostAndMatch(t *testing.T) {
	caps := &stubCaps{
		ack:     capability.JobPostAck{Message: "Job posted successfully"},
		matches: capability.JobMatchResult{Title: "Backend Engineer", Resumes: []string{"a.pdf", "b.pdf"}},
	}
	e := New(caps, zap.NewNop(), nil)

	res, err := e.PostJob(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, Done, e.State())
	assert.False(t, res.PartialSuccess())
	assert.False(t, res.NoMatches())
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, res.Matches.Resumes)

	require.Len(t, caps.posted, 1)
	assert.Equal(t, []string{"React", "Node.js", "TS"}, caps.posted[0].Skills)
	require.Len(t, caps.queries, 1)
	assert.Equal(t, capability.MatchQuery{Title: "Backend Engineer", Description: "Build APIs", Skills: []string{"React", "Node.js", "TS"}}, caps.queries[0])

	stored, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, res, stored)
}

func TestEmptyMatchesAreValid(t *testing.T) {
	e := New(&stubCaps{matches: capability.JobMatchResult{Resumes: []string{}}}, nil, nil)

	res, err := e.PostJob(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, Done, e.State())
	assert.True(t, res.NoMatches())
	assert.Nil(t, e.Err())
}

func TestPartialSuccess(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	caps := &stubCaps{matchErr: errors.New("vector store down")}
	e := New(caps, zap.New(core), nil)

	res, err := e.PostJob(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, Done, e.State())
	assert.True(t, res.PartialSuccess())
	assert.True(t, errs.IsTransport(res.MatchErr))
	assert.False(t, res.NoMatches())
	assert.Len(t, caps.posted, 1, "posting must not be rolled back or repeated")
	assert.Len(t, caps.queries, 1, "matching must not be retried")
	assert.Equal(t, 1, observed.FilterMessage("matching failed after successful posting").Len())
}

func TestPostFailure(t *testing.T) {
	caps := &stubCaps{postErr: errs.Transport(capability.CapPostJob, 500, nil)}
	e := New(caps, nil, nil)

	_, err := e.PostJob(context.Background(), form)
	require.Error(t, err)
	assert.Equal(t, Error, e.State())
	assert.True(t, errs.IsRetryable(e.Err()))
	assert.Empty(t, caps.queries)

	assert.True(t, errs.IsInvalidState(func() error { _, err := e.PostJob(context.Background(), form); return err }()))

	require.NoError(t, e.Reset())
	assert.Equal(t, Idle, e.State())
	_, ok := e.Result()
	assert.False(t, ok)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		form capability.JobForm
	}{
		{name: "missing title", form: capability.JobForm{Company: "Acme", Location: "Remote", Description: "d", Skills: "Go"}},
		{name: "blank skills", form: capability.JobForm{Title: "t", Company: "Acme", Location: "Remote", Description: "d", Skills: " , ,"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := &stubCaps{}
			e := New(caps, nil, nil)

			_, err := e.PostJob(context.Background(), tt.form)
			assert.True(t, errs.IsValidation(err))
			assert.Equal(t, Idle, e.State())
			assert.Empty(t, caps.posted)
		})
	}
}

func TestBusyWhilePosting(t *testing.T) {
	caps := &stubCaps{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	e := New(caps, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := e.PostJob(context.Background(), form)
		done <- err
	}()
	<-caps.entered

	_, err := e.PostJob(context.Background(), form)
	assert.True(t, errs.IsBusy(err))
	assert.Equal(t, Posting, e.State())
	assert.True(t, errs.IsBusy(e.Reset()))

	close(caps.block)
	require.NoError(t, <-done)
	assert.Equal(t, Done, e.State())
	assert.Len(t, caps.posted, 1)
}

func TestBusyWhileMatching(t *testing.T) {
	caps := &stubCaps{
		matches:      capability.JobMatchResult{Resumes: []string{"a.pdf"}},
		matchBlock:   make(chan struct{}),
		matchEntered: make(chan struct{}, 1),
	}
	e := New(caps, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := e.PostJob(context.Background(), form)
		done <- err
	}()
	<-caps.matchEntered

	_, err := e.PostJob(context.Background(), form)
	assert.True(t, errs.IsBusy(err))
	assert.Equal(t, Matching, e.State())
	assert.True(t, errs.IsBusy(e.Reset()))

	close(caps.matchBlock)
	require.NoError(t, <-done)
	assert.Equal(t, Done, e.State())

	caps.mu.Lock()
	defer caps.mu.Unlock()
	assert.Len(t, caps.posted, 1)
	assert.Len(t, caps.queries, 1)
}

func TestLogsCarryWorkflowState(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	e := New(&stubCaps{matchErr: errors.New("vector store down")}, zap.New(core), nil)

	_, err := e.PostJob(context.Background(), form)
	require.NoError(t, err)

	warn := observed.FilterMessage("matching failed after successful posting").All()
	require.Len(t, warn, 1)
	ctx := warn[0].ContextMap()
	assert.Equal(t, "job", ctx["workflow"])
	assert.Equal(t, "Matching", ctx["state"])

	transitions := observed.FilterMessage("transition").All()
	require.Len(t, transitions, 3)
	assert.Equal(t, "Idle", transitions[0].ContextMap()["state"])
	assert.Equal(t, "Posting", transitions[0].ContextMap()["to"])
}
