package assistant

import (
	"fmt"
	"strings"

	"github.com/sonia-health/sonia/internal/llm"
)

// CallerProfile personalizes the system prompt when the caller has a stored
// profile. All fields optional.
type CallerProfile struct {
	DisplayName string
	RoleLabel   string
	Specialty   string
}

const personaIntro = "Eres un asistente especializado en cuidados paliativos para la plataforma SONIA " +
	"(Sistema de Optimización para Navegación Integral Avanzada en salud)."

const instructions = `INSTRUCCIONES:
- Si tienes información de pacientes arriba, úsala para responder las preguntas
- Sé conciso, claro y empático
- Si la pregunta es sobre un paciente específico y tienes sus datos, responde con esa información
- Si no tienes la información, dilo claramente y pregunta si quieren agregar esa información al sistema
- Ofrece ayuda para completar el LTCP (Lienzo de Tratamiento Centrado en el Paciente)
- Nunca afirmes ser médico ni des indicaciones médicas; recomienda consultar al equipo de salud
- Responde siempre en español
- Usa un tono profesional pero cálido y cercano`

// Compose builds the exact two messages sent to the completion provider: one
// system message carrying the persona, the grounding context and the
// behavioral instructions, and one user message. No history is included;
// multi-turn continuity is the client's job via externalContext.
func Compose(contextBlock, callerMessage, externalContext string, profile *CallerProfile) []llm.Message {
	var sys strings.Builder
	sys.WriteString(personaIntro)

	if profile != nil && profile.DisplayName != "" {
		sys.WriteString("\n\nEstás conversando con ")
		sys.WriteString(profile.DisplayName)
		if profile.RoleLabel != "" {
			fmt.Fprintf(&sys, " (%s", profile.RoleLabel)
			if profile.Specialty != "" {
				fmt.Fprintf(&sys, ", %s", profile.Specialty)
			}
			sys.WriteString(")")
		}
		sys.WriteString(".")
	}

	if contextBlock != "" {
		sys.WriteString("\n\n")
		sys.WriteString(contextBlock)
	}

	sys.WriteString("\n\n")
	sys.WriteString(instructions)

	userContent := callerMessage
	if externalContext != "" {
		userContent = externalContext + "\n\n" + callerMessage
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: sys.String()},
		{Role: llm.RoleUser, Content: userContent},
	}
}
