package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The registry is write-once process state, so the disabled and enabled
// behaviors have to be exercised in order within a single test.
func TestRegistryLifecycle(t *testing.T) {
	assert.False(t, IsEnabled())
	assert.Nil(t, GetRegistry())
	assert.Nil(t, NewVolumeMetrics(), "metrics must be nil while disabled")

	InitRegistry()
	require.True(t, IsEnabled())
	require.NotNil(t, GetRegistry())

	// Idempotent: a second init keeps the same registry.
	reg := GetRegistry()
	InitRegistry()
	assert.Same(t, reg, GetRegistry())

	m := NewVolumeMetrics()
	require.NotNil(t, m)

	// Recording must not panic and the collectors must be gatherable.
	m.RecordProbe("healthy", 5*time.Millisecond)
	m.RecordVolumeQuery("partial", 10*time.Millisecond)
	m.RecordEnumeration(12, 100*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
