package service

import (
	"havenchat/internal/assist"
	"havenchat/internal/domain"
)

// Ventana fija del cuerpo saliente; política no configurable.
const payloadWindowSize = 20

// BuildPayload deriva el cuerpo saliente acotado a las entradas más recientes.
// Acepta el log capturado antes o después del append del turno de usuario:
// el texto candidato siempre termina como última entrada, sin duplicarse.
// Función pura y determinista.
func BuildPayload(turns []domain.Turn, settings domain.Settings, candidateUserText string) assist.Payload {
	messages := make([]assist.Message, 0, len(turns)+1)
	for _, t := range turns {
		messages = append(messages, assist.Message{Role: string(t.Role), Text: t.Text})
	}

	last := len(messages) - 1
	if last < 0 || messages[last].Role != string(domain.RoleUser) || messages[last].Text != candidateUserText {
		messages = append(messages, assist.Message{Role: string(domain.RoleUser), Text: candidateUserText})
	}

	if len(messages) > payloadWindowSize {
		messages = messages[len(messages)-payloadWindowSize:]
	}

	return assist.Payload{
		Messages: messages,
		Settings: assist.PayloadSettings{Tone: string(settings.Tone)},
		Metadata: assist.PayloadMetadata{UserName: settings.UserName},
	}
}
