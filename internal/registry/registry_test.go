package registry

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/logger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// testInitLogger initializes the logger for test execution, discarding output.
func testInitLogger(t *testing.T) {
	t.Helper()
	settings := models.ApplicationSettings{LogLevel: "error", LogFormat: "text"}
	err := logger.Init(settings, io.Discard)
	require.NoError(t, err, "Failed to initialize logger for test")
}

func intPtr(i int) *int { return &i }

func TestRegistry_Register(t *testing.T) {
	testInitLogger(t)

	tests := []struct {
		name     string
		def      models.EventDefinition
		expected bool
	}{
		{
			name:     "Valid definition",
			def:      models.EventDefinition{ID: "intro", Type: "dialogue"},
			expected: true,
		},
		{
			name:     "Missing id",
			def:      models.EventDefinition{Type: "dialogue"},
			expected: false,
		},
		{
			name:     "Missing type",
			def:      models.EventDefinition{ID: "intro2"},
			expected: false,
		},
		{
			name:     "Missing both",
			def:      models.EventDefinition{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			assert.Equal(t, tt.expected, r.Register(tt.def))
			if tt.expected {
				assert.Equal(t, 1, r.Len())
			} else {
				assert.Equal(t, 0, r.Len())
			}
		})
	}
}

func TestRegistry_Register_DuplicateID(t *testing.T) {
	testInitLogger(t)
	r := New()

	require.True(t, r.Register(models.EventDefinition{ID: "intro", Type: "dialogue"}))
	assert.False(t, r.Register(models.EventDefinition{ID: "intro", Type: "spawn"}))
	assert.Equal(t, 1, r.Len())

	// The original definition survives
	def, ok := r.Get("intro")
	require.True(t, ok)
	assert.Equal(t, "dialogue", def.Type)
}

func TestRegistry_Get_RoundTrip(t *testing.T) {
	testInitLogger(t)
	r := New()

	def := models.EventDefinition{
		ID:       "boss-wave",
		Type:     "boss",
		Content:  map[string]any{"boss": "armored beetle"},
		Priority: intPtr(1),
		Metadata: map[string]any{"chapter": 3},
	}
	require.True(t, r.Register(def))

	got, ok := r.Get("boss-wave")
	require.True(t, ok)
	assert.Equal(t, def.ID, got.ID)
	assert.Equal(t, def.Type, got.Type)
	assert.Equal(t, def.Content, got.Content)
	assert.Equal(t, def.Priority, got.Priority)
	assert.Equal(t, def.Metadata, got.Metadata)

	_, ok = r.Get("unknown")
	assert.False(t, ok)
}

func TestRegistry_ByType(t *testing.T) {
	testInitLogger(t)
	r := New()

	require.True(t, r.Register(models.EventDefinition{ID: "d1", Type: "dialogue"}))
	require.True(t, r.Register(models.EventDefinition{ID: "d2", Type: "dialogue"}))
	require.True(t, r.Register(models.EventDefinition{ID: "s1", Type: "spawn"}))

	dialogues := r.ByType("dialogue")
	assert.Len(t, dialogues, 2)
	for _, def := range dialogues {
		assert.Equal(t, "dialogue", def.Type)
	}

	assert.Len(t, r.ByType("spawn"), 1)
	assert.Empty(t, r.ByType("tutorial"))
}

func TestRegistry_All_And_Clear(t *testing.T) {
	testInitLogger(t)
	r := New()

	require.True(t, r.Register(models.EventDefinition{ID: "a", Type: "dialogue"}))
	require.True(t, r.Register(models.EventDefinition{ID: "b", Type: "spawn"}))
	assert.Len(t, r.All(), 2)

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.All())
}
