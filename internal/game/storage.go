package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/user/fito-garden/internal/types"
)

// DocumentStorage handles persistence of the game document. The document is
// written as a single JSON file after every mutation and read back once at
// startup.
type DocumentStorage struct {
	savePath string
	fileLock sync.Mutex
}

// NewDocumentStorage creates a new document storage
func NewDocumentStorage(savePath string) *DocumentStorage {
	// Create data directory if it doesn't exist
	dir := filepath.Dir(savePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		// If we can't create the directory, fall back to the default path
		savePath = "./data/game_document.json"
	}

	return &DocumentStorage{
		savePath: savePath,
	}
}

// SaveDocument saves the game document to disk
func (ds *DocumentStorage) SaveDocument(doc *types.GameDocument) error {
	ds.fileLock.Lock()
	defer ds.fileLock.Unlock()

	// Create directory if it doesn't exist
	dir := filepath.Dir(ds.savePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Marshal document to JSON
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game document: %w", err)
	}

	// Write to file
	if err := os.WriteFile(ds.savePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write game document: %w", err)
	}

	return nil
}

// LoadDocument loads the game document from disk. A missing file is not an
// error; it yields a fresh default document. Malformed contents are
// reported so the caller can fall back to defaults instead of crashing.
func (ds *DocumentStorage) LoadDocument() (*types.GameDocument, error) {
	ds.fileLock.Lock()
	defer ds.fileLock.Unlock()

	// Check if file exists
	if _, err := os.Stat(ds.savePath); os.IsNotExist(err) {
		return DefaultDocument(), nil
	}

	// Read file
	data, err := os.ReadFile(ds.savePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game document file: %w", err)
	}

	// Unmarshal JSON
	var doc types.GameDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse game document: %w", err)
	}

	// Ensure collections are initialized
	if doc.Garden.Plants == nil {
		doc.Garden.Plants = make([]types.Plant, 0)
	}
	if doc.Missions == nil {
		doc.Missions = make([]types.Mission, 0)
	}
	if doc.CompletedMissions == nil {
		doc.CompletedMissions = make([]types.Mission, 0)
	}
	if doc.Notifications == nil {
		doc.Notifications = make([]types.Notification, 0)
	}
	if doc.Chat.Messages == nil {
		doc.Chat.Messages = make([]types.ChatMessage, 0)
	}
	if doc.User.Goals == nil {
		doc.User.Goals = make([]string, 0)
	}

	return &doc, nil
}
