package service

import (
	"time"

	"havenchat/internal/domain"
)

const (
	systemInstructionsText = "You are a supportive listening companion. Listen with care, " +
		"respond gently, never give medical advice, and encourage the person to reach out " +
		"to people they trust or to professional support when things feel heavy."
	assistantGreetingText = "Hi, I'm glad you're here. How are you feeling today?"
)

// MessageLog es la fuente de verdad de la conversación: append-only hasta Reset.
// No está sincronizado; el dueño (SessionEngine) serializa el acceso.
type MessageLog struct {
	turns  []domain.Turn
	nextID int64
	lastTS time.Time
}

// NewMessageLog crea un log sembrado con instrucciones del sistema y saludo.
func NewMessageLog() *MessageLog {
	l := &MessageLog{}
	l.Reset()
	return l
}

// Append asigna el siguiente id, estampa la hora y agrega el turno. Nunca falla.
func (l *MessageLog) Append(role domain.Role, text string) domain.Turn {
	now := time.Now().UTC()
	// Los timestamps del log son no-decrecientes aunque el reloj retroceda.
	if now.Before(l.lastTS) {
		now = l.lastTS
	}
	turn := domain.Turn{
		ID:        l.nextID,
		Role:      role,
		Text:      text,
		Timestamp: now,
	}
	l.nextID++
	l.lastTS = now
	l.turns = append(l.turns, turn)
	return turn
}

// Snapshot devuelve una copia consistente del log para render/export/ventana.
func (l *MessageLog) Snapshot() []domain.Turn {
	out := make([]domain.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len devuelve la cantidad de turnos.
func (l *MessageLog) Len() int {
	return len(l.turns)
}

// Reset reemplaza el contenido por la semilla de dos turnos; los ids 0 y 1
// quedan reservados para la semilla y el contador sigue en 2.
func (l *MessageLog) Reset() {
	l.turns = l.turns[:0]
	l.nextID = 0
	l.Append(domain.RoleSystem, systemInstructionsText)
	l.Append(domain.RoleAssistant, assistantGreetingText)
}
