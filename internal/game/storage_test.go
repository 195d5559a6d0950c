package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/fito-garden/internal/types"
)

func TestSaveAndLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_document.json")
	storage := NewDocumentStorage(path)

	joined := time.Now().Truncate(time.Second)
	doc := DefaultDocument()
	doc.User.Name = "Ana"
	doc.User.Goals = []string{"dormir mejor", "menos ansiedad"}
	doc.User.JoinedAt = &joined
	doc.Garden.Plants = []types.Plant{{ID: "plant_1", Type: types.PlantFlower, Growth: 30, GridPosition: "1-1"}}
	doc.Garden.TotalPlants = 1
	doc.Missions = []types.Mission{{ID: "mission_1", Title: "Respiración", Points: 10, Status: "pending", CreatedAt: joined}}
	doc.Streak = types.Streak{Current: 3, Longest: 5, LastActivity: &joined}
	doc.Stats.TotalPoints = 40

	require.NoError(t, storage.SaveDocument(doc))

	loaded, err := storage.LoadDocument()
	require.NoError(t, err)

	// Round trip preserves the whole document
	assert.Equal(t, doc.User.Name, loaded.User.Name)
	assert.Equal(t, doc.User.Goals, loaded.User.Goals)
	assert.Equal(t, doc.Garden, loaded.Garden)
	assert.Equal(t, doc.Missions[0].ID, loaded.Missions[0].ID)
	assert.Equal(t, doc.Streak.Current, loaded.Streak.Current)
	assert.Equal(t, doc.Streak.Longest, loaded.Streak.Longest)
	assert.Equal(t, doc.Stats, loaded.Stats)
	assert.True(t, doc.Streak.LastActivity.Equal(*loaded.Streak.LastActivity))
}

func TestLoadDocumentMissingFile(t *testing.T) {
	storage := NewDocumentStorage(filepath.Join(t.TempDir(), "missing.json"))

	doc, err := storage.LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, types.MoodHappy, doc.Fito.Mood)
	assert.Len(t, doc.Garden.Plants, 0)
}

func TestLoadDocumentMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_document.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	storage := NewDocumentStorage(path)
	_, err := storage.LoadDocument()
	assert.Error(t, err)

	// The store falls back to defaults instead of crashing
	store := NewStore(storage, nil)
	doc := store.Document()
	assert.Equal(t, types.MoodHappy, doc.Fito.Mood)
	assert.Equal(t, 1, doc.Fito.Level)
}

func TestLoadDocumentInitializesCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_document.json")
	// A document persisted with null collections
	require.NoError(t, os.WriteFile(path, []byte(`{"user":{"name":"Ana"}}`), 0644))

	storage := NewDocumentStorage(path)
	doc, err := storage.LoadDocument()
	require.NoError(t, err)
	assert.NotNil(t, doc.Garden.Plants)
	assert.NotNil(t, doc.Missions)
	assert.NotNil(t, doc.CompletedMissions)
	assert.NotNil(t, doc.Notifications)
	assert.NotNil(t, doc.Chat.Messages)
	assert.NotNil(t, doc.User.Goals)
}

func TestSerializationRoundTrip(t *testing.T) {
	now := time.Now()
	doc := DefaultDocument()
	doc.User.JoinedAt = &now
	doc.Fito.LastInteraction = &now
	doc.Chat.Messages = []types.ChatMessage{{Role: "user", Content: "Hola", Timestamp: now}}
	doc.Notifications = []types.Notification{{ID: "n1", Title: "hola", CreatedAt: now}}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var out types.GameDocument
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, doc.Fito.Mood, out.Fito.Mood)
	assert.Equal(t, doc.Appointment.Therapist, out.Appointment.Therapist)
	assert.True(t, doc.User.JoinedAt.Equal(*out.User.JoinedAt))
	assert.Equal(t, doc.Chat.Messages[0].Content, out.Chat.Messages[0].Content)
	assert.Equal(t, doc.Notifications[0].ID, out.Notifications[0].ID)
	assert.Nil(t, out.Streak.LastActivity)
}
