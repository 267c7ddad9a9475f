package service

import "strings"

// Frases de crisis detectadas por substring. El match es deliberadamente
// amplio: un falso negativo es el modo de falla peligroso, un falso positivo no.
var crisisPhrases = []string{
	"suicide",
	"kill myself",
	"end my life",
	"want to die",
	"hurt myself",
	"harm myself",
	"violent",
	"no reason to live",
	"self harm",
	"self-harm",
	"better off dead",
}

// ClassifyCrisis indica si el texto contiene lenguaje de crisis o autolesión.
// Función pura, sin estado; texto vacío devuelve false.
func ClassifyCrisis(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, phrase := range crisisPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
