package service

import (
	"fmt"
	"strings"
	"time"

	"havenchat/internal/domain"
)

// ExportTranscript proyecta un snapshot del log a texto plano: un bloque por
// turno, separados por línea en blanco, en orden de log. No muta nada.
func ExportTranscript(turns []domain.Turn) string {
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[%s] %s: %s\n",
			t.Timestamp.Local().Format("2006-01-02 15:04:05"),
			strings.ToUpper(string(t.Role)),
			t.Text,
		))
	}
	return sb.String()
}

// TranscriptFilename nombra el artefacto exportado con timestamp embebido.
func TranscriptFilename(now time.Time) string {
	return fmt.Sprintf("transcript-%s.txt", now.Local().Format("20060102-150405"))
}
