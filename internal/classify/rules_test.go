package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceName(t *testing.T) {
	assert.Equal(t, "ssh", ServiceName(22))
	assert.Equal(t, "https", ServiceName(443))
	assert.Equal(t, "unknown", ServiceName(12345))
}

func TestRiskForPort(t *testing.T) {
	rule, ok := RiskForPort(3306)
	require.True(t, ok)
	assert.Equal(t, "critical", rule.Risk)

	_, ok = RiskForPort(60000)
	assert.False(t, ok)
}

func TestPortFromKey(t *testing.T) {
	assert.Equal(t, 443, PortFromKey("443"))
	assert.Zero(t, PortFromKey("www"))
}
