package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantamhq/studiodash/internal/backend"
)

const (
	testInterval = 10 * time.Millisecond
	waitFor      = time.Second
	tick         = 5 * time.Millisecond
)

func TestSynchronizerRefreshesOnActivate(t *testing.T) {
	fb := &fakeBackend{}
	s := NewSynchronizer(fb, WithPollInterval(time.Hour))

	assert.True(t, s.Snapshot().Loading)

	require.NoError(t, s.Activate(context.Background()))
	defer s.Deactivate()

	require.Eventually(t, func() bool {
		v := s.Snapshot()
		return v.Document != nil && v.Info != nil
	}, waitFor, tick)

	v := s.Snapshot()
	assert.False(t, v.Loading)
	assert.True(t, v.Connected())
	assert.Equal(t, "/x/proj", v.Info.ProjectRoot)
	assert.False(t, v.UpdatedAt().IsZero())
}

func TestSynchronizerActivateTwice(t *testing.T) {
	s := NewSynchronizer(&fakeBackend{}, WithPollInterval(time.Hour))
	require.NoError(t, s.Activate(context.Background()))
	defer s.Deactivate()

	assert.ErrorIs(t, s.Activate(context.Background()), ErrAlreadyActive)
}

func TestSynchronizerStopsAfterDeactivate(t *testing.T) {
	fb := &fakeBackend{}
	s := NewSynchronizer(fb, WithPollInterval(testInterval))
	require.NoError(t, s.Activate(context.Background()))

	require.Eventually(t, func() bool {
		doc, info, _ := fb.counts()
		return doc >= 2 && info >= 2
	}, waitFor, tick)

	s.Deactivate()
	s.Deactivate()
	assert.False(t, s.Active())

	doc, info, _ := fb.counts()
	time.Sleep(5 * testInterval)
	docAfter, infoAfter, _ := fb.counts()
	assert.Equal(t, doc, docAfter)
	assert.Equal(t, info, infoAfter)
}

func TestSynchronizerDiscardsResultsAfterDeactivate(t *testing.T) {
	entered := make(chan struct{})
	fb := &fakeBackend{}
	fb.setInfo(func(ctx context.Context) (*backend.ProjectInfo, error) {
		close(entered)
		<-ctx.Done()
		return &backend.ProjectInfo{ProjectRoot: "/late"}, nil
	})
	s := NewSynchronizer(fb, WithPollInterval(time.Hour))
	require.NoError(t, s.Activate(context.Background()))

	<-entered
	s.Deactivate()

	assert.Nil(t, s.Snapshot().Info)
}

func TestSynchronizerUnreachableKeepsPrevious(t *testing.T) {
	fb := &fakeBackend{}
	s := NewSynchronizer(fb)
	ctx := context.Background()

	require.NoError(t, s.RefreshProjectInfo(ctx))
	good := s.Snapshot()

	fb.setInfo(func(context.Context) (*backend.ProjectInfo, error) {
		return nil, errRefused
	})
	err := s.RefreshProjectInfo(ctx)
	require.Error(t, err)

	v := s.Snapshot()
	require.NotNil(t, v.Info)
	assert.Same(t, good.Info, v.Info)
	assert.Equal(t, good.InfoAt, v.InfoAt)
	assert.True(t, v.Unreachable())
	assert.False(t, v.ProjectMissing())
	assert.Equal(t, FailureUnreachable, v.InfoErr.Kind)
}

func TestSynchronizerNotFoundIsDistinct(t *testing.T) {
	fb := &fakeBackend{}
	fb.setInfo(func(context.Context) (*backend.ProjectInfo, error) {
		return nil, &backend.StatusError{Op: "project info", StatusCode: 404}
	})
	s := NewSynchronizer(fb)

	require.Error(t, s.RefreshProjectInfo(context.Background()))

	v := s.Snapshot()
	assert.Nil(t, v.Info)
	assert.False(t, v.Loading)
	assert.True(t, v.ProjectMissing())
	assert.False(t, v.Unreachable())
	assert.Equal(t, noProjectMessage, v.InfoErr.Message)
	assert.Equal(t, 404, v.InfoErr.StatusCode)
}

func TestSynchronizerRecoveryClearsFailure(t *testing.T) {
	fb := &fakeBackend{}
	fb.setInfo(func(context.Context) (*backend.ProjectInfo, error) { return nil, errRefused })
	s := NewSynchronizer(fb)
	ctx := context.Background()

	require.Error(t, s.RefreshProjectInfo(ctx))
	fb.setInfo(nil)
	require.NoError(t, s.RefreshProjectInfo(ctx))

	v := s.Snapshot()
	assert.Nil(t, v.InfoErr)
	assert.NotNil(t, v.Info)
}

func TestSynchronizerOneScheduledRefreshPerResource(t *testing.T) {
	block := make(chan struct{})
	fb := &fakeBackend{docFn: func(ctx context.Context) (*backend.DocumentState, error) {
		select {
		case <-block:
			return &backend.DocumentState{Filename: "shot.blend"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	s := NewSynchronizer(fb, WithPollInterval(5*time.Millisecond))
	require.NoError(t, s.Activate(context.Background()))
	defer s.Deactivate()

	require.Eventually(t, func() bool {
		_, info, _ := fb.counts()
		return info >= 10
	}, waitFor, tick)

	doc, _, _ := fb.counts()
	assert.Equal(t, 1, doc)
	assert.NotNil(t, s.Snapshot().Info)
	assert.Nil(t, s.Snapshot().Document)

	close(block)
	require.Eventually(t, func() bool {
		doc, _, _ := fb.counts()
		return doc >= 2
	}, waitFor, tick)
}

func TestSynchronizerNotifiesOnChange(t *testing.T) {
	var views atomic.Int32
	fb := &fakeBackend{}
	s := NewSynchronizer(fb, WithOnView(func(View) { views.Add(1) }))
	ctx := context.Background()

	require.NoError(t, s.RefreshDocumentState(ctx))
	require.NoError(t, s.RefreshProjectInfo(ctx))

	assert.Equal(t, int32(2), views.Load())
}
