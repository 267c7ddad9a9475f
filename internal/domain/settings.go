package domain

import (
	"errors"
	"strings"
)

// Tone ajusta el estilo de acompañamiento del asistente.
type Tone string

const (
	ToneCompassionate Tone = "compassionate"
	TonePractical     Tone = "practical"
	ToneCurious       Tone = "curious"
)

var ErrInvalidTone = errors.New("invalid tone")

// ParseTone valida un tono recibido desde el colaborador de UI.
func ParseTone(raw string) (Tone, error) {
	switch Tone(strings.ToLower(strings.TrimSpace(raw))) {
	case ToneCompassionate:
		return ToneCompassionate, nil
	case TonePractical:
		return TonePractical, nil
	case ToneCurious:
		return ToneCurious, nil
	default:
		return "", ErrInvalidTone
	}
}

// Settings son preferencias de sesión, mutables en cualquier momento
// (last-write-wins); el windower las lee al momento de enviar.
type Settings struct {
	Tone     Tone   `json:"tone"`
	UserName string `json:"user_name"`
}

// DefaultSettings devuelve las preferencias iniciales de una sesión.
func DefaultSettings() Settings {
	return Settings{Tone: ToneCompassionate}
}
