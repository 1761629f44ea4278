package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etherpets/internal/app/ports"
)

func TestLogNotifierWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	err := n.Notify(context.Background(), ports.Notification{
		Kind:    ports.NotifyLevelUp,
		Owner:   "0xowner",
		PetID:   "pet-1",
		Title:   "Level up!",
		Message: "Rex reached level 2",
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "level_up", entry["kind"])
	assert.Equal(t, "pet-1", entry["pet_id"])
	assert.Equal(t, "notify", entry["component"])
	assert.Equal(t, "Rex reached level 2", entry["message"])
}
