package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

func TestEngine_LoadBundle(t *testing.T) {
	e, _ := newTestEngine(t)

	ok := e.LoadBundle(models.Bundle{
		Events: []models.EventDefinition{
			{ID: "intro", Type: "dialogue"},
			{ID: "boss-wave", Type: "boss", Priority: intPtr(1)},
		},
		Triggers: []models.TriggerDefinition{
			{EventID: "intro", Type: models.TriggerTypeTime, Condition: models.TriggerCondition{Delay: floatPtr(500)}},
		},
	})
	require.True(t, ok)
	assert.Len(t, e.GetAllEvents(), 2)
	assert.Len(t, e.GetTriggersForEvent("intro"), 1)
}

func TestEngine_LoadBundle_AtomicRejection(t *testing.T) {
	tests := []struct {
		name   string
		bundle models.Bundle
	}{
		{
			name: "Event missing type",
			bundle: models.Bundle{
				Events: []models.EventDefinition{
					{ID: "a", Type: "dialogue"},
					{ID: "b"}, // malformed
					{ID: "c", Type: "spawn"},
				},
			},
		},
		{
			name: "Event missing id",
			bundle: models.Bundle{
				Events: []models.EventDefinition{
					{ID: "a", Type: "dialogue"},
					{Type: "spawn"},
				},
			},
		},
		{
			name: "Duplicate id within bundle",
			bundle: models.Bundle{
				Events: []models.EventDefinition{
					{ID: "a", Type: "dialogue"},
					{ID: "a", Type: "spawn"},
				},
			},
		},
		{
			name: "Trigger missing event id",
			bundle: models.Bundle{
				Events: []models.EventDefinition{
					{ID: "a", Type: "dialogue"},
				},
				Triggers: []models.TriggerDefinition{
					{Type: models.TriggerTypeTime, Condition: models.TriggerCondition{Delay: floatPtr(1)}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			assert.False(t, e.LoadBundle(tt.bundle))
			assert.Empty(t, e.GetAllEvents(), "nothing registered on rejection")
			assert.Empty(t, e.GetTriggersForEvent("a"))
		})
	}
}

func TestEngine_LoadBundle_CollisionWithRegistered(t *testing.T) {
	e, _ := newTestEngine(t)
	require.True(t, e.RegisterEvent(models.EventDefinition{ID: "intro", Type: "dialogue"}))

	ok := e.LoadBundle(models.Bundle{
		Events: []models.EventDefinition{
			{ID: "fresh", Type: "spawn"},
			{ID: "intro", Type: "dialogue"},
		},
	})
	assert.False(t, ok)
	assert.Len(t, e.GetAllEvents(), 1, "pre-existing registration is all that remains")
}

func TestEngine_LoadJSON(t *testing.T) {
	e, _ := newTestEngine(t)

	ok := e.LoadJSON([]byte(`{
		"events": [
			{"id": "intro", "type": "dialogue", "priority": 5},
			{"id": "boss-wave", "type": "boss", "priority": 1}
		],
		"triggers": [
			{"eventId": "intro", "type": "time", "condition": {"delay": 500}}
		]
	}`))
	require.True(t, ok)
	assert.Len(t, e.GetAllEvents(), 2)

	def, found := e.GetEvent("intro")
	require.True(t, found)
	require.NotNil(t, def.Priority)
	assert.Equal(t, 5, *def.Priority)

	triggers := e.GetTriggersForEvent("intro")
	require.Len(t, triggers, 1)
	require.NotNil(t, triggers[0].Condition.Delay)
	assert.Equal(t, 500.0, *triggers[0].Condition.Delay)
}

func TestEngine_LoadJSON_Invalid(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.False(t, e.LoadJSON([]byte(`{"events": [`)))
	assert.Empty(t, e.GetAllEvents())
}

func TestEngine_ExportRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)

	require.True(t, e.RegisterEvent(models.EventDefinition{
		ID:       "intro",
		Type:     "dialogue",
		Content:  map[string]any{"text": "Welcome"},
		Priority: intPtr(5),
		Handlers: models.EventHandlers{OnTrigger: func(any) {}},
	}))
	require.True(t, e.RegisterTrigger(models.TriggerDefinition{
		EventID:   "intro",
		Type:      models.TriggerTypeTime,
		Condition: models.TriggerCondition{Delay: floatPtr(500)},
	}))

	data, err := e.ExportJSON()
	require.NoError(t, err)

	// A fresh engine accepts the export; handlers are gone and must be
	// re-attached by the consumer.
	fresh, _ := newTestEngine(t)
	require.True(t, fresh.LoadJSON(data))
	def, found := fresh.GetEvent("intro")
	require.True(t, found)
	assert.Nil(t, def.Handlers.OnTrigger)
	assert.Equal(t, map[string]any{"text": "Welcome"}, def.Content)
	assert.Len(t, fresh.GetTriggersForEvent("intro"), 1)
}

func TestEngine_ExportJSON_Golden(t *testing.T) {
	e, _ := newTestEngine(t)

	require.True(t, e.RegisterEvent(models.EventDefinition{
		ID:       "intro",
		Type:     "dialogue",
		Content:  map[string]any{"text": "Welcome"},
		Priority: intPtr(5),
		Metadata: map[string]any{"chapter": 1},
	}))
	require.True(t, e.RegisterEvent(models.EventDefinition{
		ID:       "boss-wave",
		Type:     "boss",
		Priority: intPtr(1),
	}))
	require.True(t, e.RegisterTrigger(models.TriggerDefinition{
		EventID:   "intro",
		Type:      models.TriggerTypeTime,
		Condition: models.TriggerCondition{Delay: floatPtr(500)},
	}))
	require.True(t, e.RegisterTrigger(models.TriggerDefinition{
		EventID:   "boss-wave",
		Type:      models.TriggerTypeFlag,
		Condition: models.TriggerCondition{Flag: "ants", Operator: models.OperatorGreaterOrEqual, Value: 50},
		OneTime:   boolPtr(false),
	}))

	data, err := e.ExportJSON()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export_bundle", data)
}

func TestBundleFile_SaveAndLoad(t *testing.T) {
	testInitLogger(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.json")

	b := models.Bundle{
		Events: []models.EventDefinition{
			{ID: "intro", Type: "dialogue", Priority: intPtr(5)},
		},
		Triggers: []models.TriggerDefinition{
			{EventID: "intro", Type: models.TriggerTypeTime, Condition: models.TriggerCondition{Delay: floatPtr(500)}},
		},
	}
	require.NoError(t, SaveBundleFile(path, b))

	// The temporary file does not linger
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadBundleFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Events, 1)
	assert.Equal(t, "intro", loaded.Events[0].ID)
	require.NotNil(t, loaded.Events[0].Priority)
	assert.Equal(t, 5, *loaded.Events[0].Priority)
	require.Len(t, loaded.Triggers, 1)
	assert.Equal(t, "intro", loaded.Triggers[0].EventID)
}

func TestLoadBundleFile_Missing(t *testing.T) {
	testInitLogger(t)
	_, err := LoadBundleFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
