package chat

import (
	"fmt"
	"strings"
)

// systemPrompt frames the assistant as Fito, the garden companion. The
// conversation is Spanish-first like the rest of the product copy.
const systemPrompt = `Eres Fito, un compañero virtual cálido y empático especializado en bienestar mental. Conversas de manera natural, amigable y cercana, como un buen amigo que también es psicólogo.

CONTEXTO: El usuario cultiva un jardín virtual donde las plantas representan su crecimiento personal y las misiones son pasos en su bienestar mental.

ESTILO DE CONVERSACIÓN:
- Respuestas BREVES (máximo 2-3 oraciones por respuesta)
- Tono conversacional, amigable y cálido
- Usa emojis ocasionalmente para humanizar la conversación
- Haz UNA pregunta específica al final para mantener el diálogo fluido
- Evita listas largas o explicaciones extensas

DIRECTRICES:
1. SOLO temas de bienestar mental, emociones y crecimiento personal
2. Si preguntan algo no relacionado: "Prefiero hablar de tu bienestar 😊 ¿Cómo te sientes hoy?"
3. Usa metáforas simples del jardín cuando sea natural
4. Sé empático pero directo
5. Si hay crisis, recomienda ayuda profesional inmediata
6. Conoces las misiones específicas del usuario - puedes mencionarlas por nombre y ayudar con ellas
7. Si el usuario pregunta sobre sus tareas, referencia las misiones exactas que tiene pendientes

Mantén siempre un tono esperanzador y haz que la persona se sienta escuchada.`

// UserContext carries the game snapshot the client sends along with the
// conversation so the assistant can personalize replies.
type UserContext struct {
	Name                 string           `json:"name"`
	PlantsCount          int              `json:"plantsCount"`
	MissionsCompleted    int              `json:"missionsCompleted"`
	Streak               int              `json:"streak"`
	FitoMood             string           `json:"fitoMood"`
	TotalPendingMissions int              `json:"totalPendingMissions"`
	PendingMissions      []PendingMission `json:"pendingMissions"`
}

// PendingMission is the slice of mission data exposed to the assistant.
type PendingMission struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	AssignedBy  string `json:"assignedBy"`
	Status      string `json:"status"`
}

// contextMessage renders the user context block that gets prepended to the
// first user message. Returns "" when no context was sent.
func contextMessage(ctx *UserContext) string {
	if ctx == nil {
		return ""
	}

	name := ctx.Name
	if name == "" {
		name = "Usuario"
	}
	mood := ctx.FitoMood
	if mood == "" {
		mood = "neutral"
	}

	var b strings.Builder
	b.WriteString("CONTEXTO DEL USUARIO:\n")
	fmt.Fprintf(&b, "- Nombre: %s\n", name)
	fmt.Fprintf(&b, "- Plantas en el jardín: %d\n", ctx.PlantsCount)
	fmt.Fprintf(&b, "- Misiones completadas: %d\n", ctx.MissionsCompleted)
	fmt.Fprintf(&b, "- Racha actual: %d días\n", ctx.Streak)
	fmt.Fprintf(&b, "- Estado de ánimo de Fito: %s\n", mood)
	fmt.Fprintf(&b, "- Misiones pendientes: %d\n", ctx.TotalPendingMissions)

	if len(ctx.PendingMissions) > 0 {
		b.WriteString("\nMISIONES PENDIENTES ACTUALES:\n")
		for i, mission := range ctx.PendingMissions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, mission.Title)
			fmt.Fprintf(&b, "   Tipo: %s\n", mission.Type)
			fmt.Fprintf(&b, "   Descripción: %s\n", mission.Description)
			fmt.Fprintf(&b, "   Asignada por: %s\n", mission.AssignedBy)
			fmt.Fprintf(&b, "   Estado: %s\n", mission.Status)
		}
		b.WriteString("\nPuedes hacer referencia específica a estas misiones si el usuario pregunta sobre ellas o necesita motivación para completarlas.\n")
	}

	b.WriteString("\nUtiliza esta información para personalizar tu respuesta y hacer conexiones relevantes con su progreso y misiones específicas.")
	return b.String()
}
