package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArticleAge(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		publishedAt int64
		want        string
	}{
		{"unknown publish time", 0, ""},
		{"minutes old", now.Add(-30 * time.Minute).Unix(), "30m"},
		{"hours old", now.Add(-5 * time.Hour).Unix(), "5h"},
		{"days old", now.Add(-72 * time.Hour).Unix(), "3d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Article{PublishedAt: tt.publishedAt}
			assert.Equal(t, tt.want, a.Age())
		})
	}
}

func TestProgressEventType(t *testing.T) {
	ev := ProgressEvent{Raw: []byte(`{"type":"feed_synced","feed_id":"f1"}`)}
	assert.Equal(t, "feed_synced", ev.Type())

	id, ok := ev.Field("feed_id")
	assert.True(t, ok)
	assert.Equal(t, "f1", id)

	_, ok = ev.Field("missing")
	assert.False(t, ok)

	assert.Empty(t, ProgressEvent{Raw: []byte(`["not","an","object"]`)}.Type())
}
