//go:build linux

package mpris

import (
	"context"
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/media"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playback"
)

func newTestAdapter(t *testing.T) (*playerAdapter, *player.Mock, afero.Fs, context.CancelFunc) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	mock := player.NewMock()
	svc := playback.New(mock, playback.Options{Kind: media.Audio, Logger: logger})
	svc.SetPlaylist([]string{"a.mp3", "b.mp3"}, "/music")

	loop := playback.NewLoop(svc)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	fs := afero.NewMemMapFs()
	return &playerAdapter{loop: loop, fs: fs}, mock, fs, cancel
}

func status(t *testing.T, p *playerAdapter) types.PlaybackStatus {
	t.Helper()
	s, err := p.PlaybackStatus()
	require.NoError(t, err)
	return s
}

func TestPlayerAdapter_Transport(t *testing.T) {
	p, _, _, _ := newTestAdapter(t)

	assert.Equal(t, types.PlaybackStatusStopped, status(t, p))

	require.NoError(t, p.PlayPause())
	assert.Equal(t, types.PlaybackStatusPlaying, status(t, p))

	require.NoError(t, p.Pause())
	assert.Equal(t, types.PlaybackStatusPaused, status(t, p))

	require.NoError(t, p.Pause())
	assert.Equal(t, types.PlaybackStatusPaused, status(t, p))

	require.NoError(t, p.Play())
	assert.Equal(t, types.PlaybackStatusPlaying, status(t, p))

	require.NoError(t, p.Stop())
	assert.Equal(t, types.PlaybackStatusStopped, status(t, p))
}

func TestPlayerAdapter_NextPrevious(t *testing.T) {
	p, mock, _, _ := newTestAdapter(t)

	require.NoError(t, p.Next())
	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())
	_ = status(t, p)

	assert.Equal(t, []string{"/music/a.mp3", "/music/b.mp3", "/music/a.mp3"}, mock.SourceCalls())

	can, err := p.CanGoNext()
	require.NoError(t, err)
	assert.True(t, can)
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	p, _, fs, _ := newTestAdapter(t)
	require.NoError(t, afero.WriteFile(fs, "/music/cover.jpg", []byte("x"), 0o644))

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title)

	require.NoError(t, p.PlayPause())
	meta, err = p.Metadata()
	require.NoError(t, err)

	assert.Equal(t, "a.mp3", meta.Title)
	assert.Equal(t, "file:///music/cover.jpg", meta.ArtUrl)
	assert.Equal(t, trackID("/music/a.mp3"), string(meta.TrackId))
	assert.Nil(t, meta.Artist)
}

func TestPlayerAdapter_SetPosition(t *testing.T) {
	p, mock, _, _ := newTestAdapter(t)
	require.NoError(t, p.PlayPause())
	require.True(t, p.loop.Do(func(s *playback.Service) {
		s.HandleEvent(player.DurationEvent(3 * time.Minute))
		s.HandleEvent(player.PositionEvent(time.Minute))
	}))

	require.NoError(t, p.SetPosition("", types.Microseconds((90 * time.Second).Microseconds())))
	require.NoError(t, p.Seek(types.Microseconds((30 * time.Second).Microseconds())))
	require.NoError(t, p.SetPosition("", types.Microseconds((time.Hour).Microseconds())))
	pos, err := p.Position()
	require.NoError(t, err)

	assert.Equal(t, time.Minute.Microseconds(), pos)
	assert.Equal(t, []time.Duration{90 * time.Second, 90 * time.Second}, mock.SeekCalls())
}

func TestPlayerAdapter_LoopStopped(t *testing.T) {
	p, _, _, cancel := newTestAdapter(t)
	cancel()
	<-p.loop.Done()

	require.ErrorIs(t, p.PlayPause(), ErrLoopStopped)
	_, err := p.PlaybackStatus()
	require.ErrorIs(t, err, ErrLoopStopped)
	_, err = p.Metadata()
	require.ErrorIs(t, err, ErrLoopStopped)
}

func TestTrackID(t *testing.T) {
	assert.Equal(t, trackID("/a.mp3"), trackID("/a.mp3"))
	assert.NotEqual(t, trackID("/a.mp3"), trackID("/b.mp3"))
	assert.Contains(t, trackID("/a.mp3"), "/org/mpris/MediaPlayer2/Track/")
}
