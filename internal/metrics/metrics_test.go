package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCall(t *testing.T) {
	r := New()

	r.ObserveCall("post-job", time.Now(), nil)
	r.ObserveCall("post-job", time.Now(), errors.New("boom"))
	r.ObserveCall("post-job", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.CapabilityCalls.WithLabelValues("post-job", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CapabilityCalls.WithLabelValues("post-job", OutcomeFailure)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.CapabilityDuration))
}

func TestTransition(t *testing.T) {
	r := New()
	r.Transition("resume", "Submitting")
	r.Transition("resume", "Submitting")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Transitions.WithLabelValues("resume", "Submitting")))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.ObserveCall("x", time.Now(), nil)
	r.Transition("job", "Idle")
	assert.NoError(t, r.WriteTextfile("ignored"))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Transition("job", "Done")

	path := filepath.Join(t.TempDir(), "jobmatch.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `jobmatch_workflow_transitions_total{state="Done",workflow="job"} 1`)
}
