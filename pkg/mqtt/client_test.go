package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicsMatch(t *testing.T) {
	tests := []struct {
		filter string
		topic  string
		want   bool
	}{
		{"fleet/v1/locations", "fleet/v1/locations", true},
		{"fleet/v1/locations", "fleet/v1/commands", false},
		{"fleet/+/locations", "fleet/v1/locations", true},
		{"fleet/+/locations", "fleet/v1/other/locations", false},
		{"fleet/#", "fleet/v1/locations", true},
		{"fleet/#", "depot/v1/locations", false},
		{"fleet/v1/+", "fleet/v1", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, topicsMatch(tt.filter, tt.topic), "filter=%s topic=%s", tt.filter, tt.topic)
	}
}

func TestTopicFilter(t *testing.T) {
	assert.Equal(t, "fleet/v1/locations", topicFilter("$share/tracking-group/fleet/v1/locations"))
	assert.Equal(t, "fleet/v1/locations", topicFilter("fleet/v1/locations"))
}

func TestSharedTopic(t *testing.T) {
	assert.Equal(t, "$share/tracking-group/fleet/v1/locations", SharedTopic("tracking-group", "fleet/v1/locations"))
	assert.Equal(t, "fleet/v1/locations", SharedTopic("", "fleet/v1/locations"))
}
