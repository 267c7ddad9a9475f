package assist

import "context"

// Message es un par rol/texto del cuerpo saliente; sin más metadata por entrada.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// PayloadSettings acompaña al request con el tono elegido.
type PayloadSettings struct {
	Tone string `json:"tone"`
}

// PayloadMetadata acompaña al request con datos del usuario.
type PayloadMetadata struct {
	UserName string `json:"userName"`
}

// Payload es el cuerpo JSON enviado al servicio asistente remoto.
type Payload struct {
	Messages []Message       `json:"messages"`
	Settings PayloadSettings `json:"settings"`
	Metadata PayloadMetadata `json:"metadata"`
}

// Reply es la respuesta interpretada del servicio asistente.
type Reply struct {
	Text    string
	Flagged bool
}

// Transport define la interfaz para completar un intercambio con el asistente.
type Transport interface {
	Send(ctx context.Context, payload Payload) (Reply, error)
}
