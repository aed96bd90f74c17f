package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordAndShutdown(t *testing.T) {
	obs := New("bfhl-service-test")
	require.NotNil(t, obs)

	assert.NotPanics(t, func() {
		obs.RecordOperation(context.Background(), "fibonacci", "success")
		obs.RecordDuration(context.Background(), "fibonacci", 3*time.Millisecond)
		obs.Shutdown()
	})
}

func TestObservability_ZeroValueIsNoop(t *testing.T) {
	var nilObs *Observability
	empty := &Observability{}

	assert.NotPanics(t, func() {
		nilObs.RecordOperation(context.Background(), "lcm", "success")
		nilObs.RecordDuration(context.Background(), "lcm", time.Millisecond)
		nilObs.Shutdown()
		empty.RecordOperation(context.Background(), "lcm", "success")
		empty.RecordDuration(context.Background(), "lcm", time.Millisecond)
		empty.Shutdown()
	})
}
