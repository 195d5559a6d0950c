package chat

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// DefaultTurnCap is the conversation length limit in messages.
const DefaultTurnCap = 20

// Request is the chat proxy request body: the full conversation so far plus
// an optional game snapshot.
type Request struct {
	Messages    []Message    `json:"messages"`
	UserContext *UserContext `json:"userContext"`
}

// Proxy bridges the chat UI to the hosted LLM. It injects the Fito system
// prompt and user context, enforces the conversation cap and relays the
// reply as a chunked plain-text stream with no framing.
type Proxy struct {
	streamer Streamer
	turnCap  int
	logger   *zap.Logger
}

// NewProxy creates a chat proxy. turnCap <= 0 falls back to DefaultTurnCap.
func NewProxy(streamer Streamer, turnCap int, logger *zap.Logger) *Proxy {
	if turnCap <= 0 {
		turnCap = DefaultTurnCap
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Proxy{
		streamer: streamer,
		turnCap:  turnCap,
		logger:   logger,
	}
}

// ServeHTTP handles POST /api/chat.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Método no permitido")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		writeJSONError(w, http.StatusBadRequest, "Mensajes requeridos")
		return
	}

	if len(req.Messages) > p.turnCap {
		writeJSONError(w, http.StatusBadRequest, "Límite de conversación alcanzado. Por favor, inicia una nueva conversación.")
		return
	}

	messages := make([]Message, 0, len(req.Messages)+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, req.Messages...)

	// Prepend the user context to the first user turn
	if ctx := contextMessage(req.UserContext); ctx != "" && messages[1].Role == "user" {
		messages[1].Content = ctx + "\n\n" + messages[1].Content
	}

	flusher, _ := w.(http.Flusher)
	wroteBody := false

	err := p.streamer.StreamChat(r.Context(), messages, func(text string) error {
		if !wroteBody {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			w.WriteHeader(http.StatusOK)
			wroteBody = true
		}
		if _, err := w.Write([]byte(text)); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		p.logger.Error("Chat stream failed", zap.Error(err))
		if !wroteBody {
			writeJSONError(w, http.StatusInternalServerError, "Error interno del servidor")
		}
		// Mid-stream failures just terminate the body; the client keeps
		// whatever bytes already arrived.
		return
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
