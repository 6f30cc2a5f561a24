package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/waveform-comments/internal/annotate"
	"github.com/killallgit/waveform-comments/internal/waveform"
)

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) reported() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// Switching away from a track and back while its first fetch is still in
// flight must leave the track loaded and report nothing.
func TestSession_SwitchBackWhileFetchInFlight(t *testing.T) {
	var trackOneCalls int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/tracks/1/comments":
			if atomic.AddInt32(&trackOneCalls, 1) == 1 {
				started <- struct{}{}
				<-release
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"status": "ok",
				"comments": []map[string]interface{}{{
					"id": 7, "track_id": 1, "user_id": 2, "user_name": "alex", "content": "hello",
					"marker": map[string]interface{}{"id": 1, "time": 12.5, "region_id": "region-7", "comment_id": 7},
				}},
			})
		default:
			writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "comments": []interface{}{}})
		}
	}))
	defer server.Close()
	releaseOnce := sync.OnceFunc(func() { close(release) })
	defer releaseOnce()

	c := NewClient(Config{BaseURL: server.URL, Timeout: 2 * time.Second})
	reporter := &recordingReporter{}
	session := annotate.NewSession(c, &waveform.HeadlessFactory{Width: 1000, AutoLoad: true}, nil,
		annotate.WithReporter(reporter))
	defer func() {
		session.Close()
		session.WaitClosed()
	}()

	ctx := context.Background()
	trackA := waveform.Track{ID: 1, Duration: 60}
	require.NoError(t, session.Open(ctx, trackA))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first fetch for track 1 never reached the server")
	}

	require.NoError(t, session.Open(ctx, waveform.Track{ID: 2, Duration: 30}))
	require.NoError(t, session.Open(ctx, trackA))
	time.Sleep(50 * time.Millisecond)
	releaseOnce()

	require.Eventually(t, func() bool {
		snap := session.Snapshot()
		return snap.TrackID == 1 && len(snap.Comments) == 1
	}, 3*time.Second, 5*time.Millisecond)
	session.Wait()

	snap := session.Snapshot()
	assert.Len(t, snap.Regions, 1)
	assert.Len(t, snap.Mapping, 1)
	assert.Empty(t, reporter.reported())
}
