package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Storage configuration
	Storage StorageConfig `json:"storage"`

	// Game configuration
	Game GameConfig `json:"game"`

	// Chat assistant configuration
	Chat ChatConfig `json:"chat"`
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	// Server port
	Port string `json:"port"`

	// Log level (debug, info, warn, error)
	LogLevel string `json:"log_level"`
}

// StorageConfig holds persistence specific configuration
type StorageConfig struct {
	// Path to the persisted game document
	DocumentPath string `json:"document_path"`
}

// GameConfig holds game specific configuration
type GameConfig struct {
	// Garden grid dimensions, enforced by the UI before store calls
	GridRows int `json:"grid_rows"`
	GridCols int `json:"grid_cols"`

	// Base URL embedded in the appointment join QR code
	VideoCallBaseURL string `json:"video_call_base_url"`
}

// ChatConfig holds chat assistant specific configuration
type ChatConfig struct {
	// Model served by the chat backend
	Model string `json:"model"`

	// Maximum assistant tokens per response
	MaxTokens int `json:"max_tokens"`

	// Sampling temperature
	Temperature float32 `json:"temperature"`

	// Conversation length cap in messages
	TurnCap int `json:"turn_cap"`

	// Optional override for the chat backend base URL
	BaseURL string `json:"base_url"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:     "8080",
			LogLevel: "info",
		},
		Storage: StorageConfig{
			DocumentPath: "./data/game_document.json",
		},
		Game: GameConfig{
			GridRows:         8,
			GridCols:         8,
			VideoCallBaseURL: "https://fito-garden.app/session",
		},
		Chat: ChatConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   300,
			Temperature: 0.8,
			TurnCap:     20,
		},
	}
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return config, err
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Create default config file
		file, err := os.Create(path)
		if err != nil {
			return config, err
		}
		defer file.Close()

		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(config); err != nil {
			return config, err
		}

		return config, nil
	}

	// Read config file
	file, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config Config, path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Create or truncate file
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write config to file
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return err
	}

	return nil
}
