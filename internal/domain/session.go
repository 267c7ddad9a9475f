package domain

import "time"

// Session describe una sesión de conversación activa. Vive solo en memoria.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
