package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/fito-garden/internal/game"
	"github.com/user/fito-garden/internal/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	storage := game.NewDocumentStorage(filepath.Join(t.TempDir(), "game_document.json"))
	store := game.NewStore(storage, nil)
	handler := NewHandler(store, nil, NewJoinQR("https://fito-garden.test/session"), nil)
	server := httptest.NewServer(NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, types.GameDocument) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var doc types.GameDocument
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	}
	return resp, doc
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStateEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, doc := doJSON(t, http.MethodGet, server.URL+"/api/state", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, types.MoodHappy, doc.Fito.Mood)
	assert.True(t, doc.Appointment.Scheduled)
}

func TestUserEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, doc := doJSON(t, http.MethodPut, server.URL+"/api/user/name", `{"name":"Ana"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana", doc.User.Name)

	resp, doc = doJSON(t, http.MethodPut, server.URL+"/api/user/goals", `{"goals":["dormir mejor"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"dormir mejor"}, doc.User.Goals)

	resp, doc = doJSON(t, http.MethodPost, server.URL+"/api/user/onboarding/complete", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, doc.User.OnboardingCompleted)
	assert.NotNil(t, doc.User.JoinedAt)
}

func TestPlantEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, doc := doJSON(t, http.MethodPost, server.URL+"/api/garden/plants", `{"type":"flower","growth":30,"grid_position":"1-1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, doc.Garden.Plants, 1)
	assert.Equal(t, 1, doc.Garden.TotalPlants)
	plantID := doc.Garden.Plants[0].ID

	// Occupied cell answers 409
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/garden/plants", `{"type":"tree","grid_position":"1-1"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, doc = doJSON(t, http.MethodPost, server.URL+"/api/garden/plants/"+plantID+"/grow", `{"amount":80}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 100, doc.Garden.Plants[0].Growth)

	resp, doc = doJSON(t, http.MethodPatch, server.URL+"/api/garden/plants/"+plantID, `{"type":"leaf"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, types.PlantLeaf, doc.Garden.Plants[0].Type)
}

func TestMissionEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, doc := doJSON(t, http.MethodPost, server.URL+"/api/missions", `{"title":"Respiración","type":"therapy","points":25}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, doc.Missions, 1)
	missionID := doc.Missions[0].ID

	resp, doc = doJSON(t, http.MethodPost, server.URL+"/api/missions/"+missionID+"/complete", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, doc.Missions, 0)
	assert.Len(t, doc.CompletedMissions, 1)
	assert.Equal(t, 25, doc.Stats.TotalPoints)

	// Unknown mission answers 404 even though the store stays silent
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/missions/"+missionID+"/complete", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMoodEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/fito/mood")
	require.NoError(t, err)
	defer resp.Body.Close()
	var moodResp map[string]types.Mood
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&moodResp))
	assert.Equal(t, types.MoodHappy, moodResp["mood"])

	// Explicit override commits into the document
	r2, doc := doJSON(t, http.MethodPost, server.URL+"/api/fito/mood", `{"mood":"excited"}`)
	assert.Equal(t, http.StatusOK, r2.StatusCode)
	assert.Equal(t, types.MoodExcited, doc.Fito.Mood)
}

func TestStreakAndSessionEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, doc := doJSON(t, http.MethodPost, server.URL+"/api/streak/update", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, doc.Streak.Current)

	resp, doc = doJSON(t, http.MethodPost, server.URL+"/api/sessions/record", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, doc.Stats.SessionsAttended)
}

func TestAppointmentEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, doc := doJSON(t, http.MethodPost, server.URL+"/api/appointment/schedule", `{"date_time":"2026-09-01T15:00:00Z","therapist":"Dra. Rivera"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dra. Rivera", doc.Appointment.Therapist)

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/appointment/schedule", `{"therapist":"Dra. Rivera"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, doc = doJSON(t, http.MethodPost, server.URL+"/api/appointment/cancel", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, types.AppointmentCancelled, doc.Appointment.Status)
}

func TestAppointmentQREndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/appointment/qr")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	// Cancelled appointment has no join link
	doJSON(t, http.MethodPost, server.URL+"/api/appointment/cancel", "")
	resp, err = http.Get(server.URL + "/api/appointment/qr")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVideoCallEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, doc := doJSON(t, http.MethodPost, server.URL+"/api/video-call/start", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, doc.VideoCall.IsActive)
	assert.Equal(t, types.AppointmentInProgress, doc.Appointment.Status)

	resp, doc = doJSON(t, http.MethodPut, server.URL+"/api/video-call/duration", `{"duration":90}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 90, doc.VideoCall.Duration)

	resp, doc = doJSON(t, http.MethodPost, server.URL+"/api/video-call/mute/toggle", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, doc.VideoCall.IsMuted)

	resp, doc = doJSON(t, http.MethodPost, server.URL+"/api/video-call/end", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, doc.VideoCall.IsActive)
	assert.Equal(t, 1, doc.Stats.SessionsAttended)
}

func TestChatEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, doc := doJSON(t, http.MethodPost, server.URL+"/api/chat/messages", `{"role":"user","content":"Hola"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, doc.Chat.TurnCount)

	resp, doc = doJSON(t, http.MethodDelete, server.URL+"/api/chat/messages", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, doc.Chat.Messages, 0)
	assert.Equal(t, 0, doc.Chat.TurnCount)

	// No LLM backend configured
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/chat", `{"messages":[{"role":"user","content":"Hola"}]}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestResetEndpoint(t *testing.T) {
	server := newTestServer(t)

	doJSON(t, http.MethodPut, server.URL+"/api/user/name", `{"name":"Ana"}`)
	doJSON(t, http.MethodPost, server.URL+"/api/garden/plants", `{"type":"flower"}`)

	resp, doc := doJSON(t, http.MethodPost, server.URL+"/api/state/reset", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", doc.User.Name)
	assert.Len(t, doc.Garden.Plants, 0)
}

func TestInvalidBody(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/user/name", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJoinQRURL(t *testing.T) {
	qr := NewJoinQR("https://fito-garden.test/session")
	doc := game.DefaultDocument()

	url := qr.JoinURL(doc.Appointment)
	assert.True(t, strings.HasPrefix(url, "https://fito-garden.test/session/join?"))
	assert.Contains(t, url, "therapist=")
}
