package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"havenchat/internal/assist"
	"havenchat/internal/domain"
)

// Textos fijos visibles para el usuario.
const (
	fallbackReplyText = "Sorry — I couldn't generate a response."
	apologyReplyText  = "I'm really sorry, something went wrong on my end. " +
		"Could you try sending that again in a moment?"
	transportErrorText    = "We couldn't reach the assistant. Please try again."
	emptyMessageErrorText = "Please write a message before sending."
	consentErrorText      = "Please accept the consent notice before chatting."
)

var (
	ErrEmptyMessage    = errors.New("empty message")
	ErrConsentRequired = errors.New("consent required")
	ErrSessionBusy     = errors.New("session busy")
)

// Estados del ciclo de envío. Validating es transitorio y síncrono;
// AwaitingResponse cubre el único punto de suspensión (el request saliente).
type sessionState int

const (
	stateIdle sessionState = iota
	stateValidating
	stateAwaitingResponse
)

// StateSnapshot es la vista de estado que leen los colaboradores de UI.
type StateSnapshot struct {
	Messages         []domain.Turn   `json:"messages"`
	Pending          bool            `json:"pending"`
	CrisisFlagActive bool            `json:"crisis_flag_active"`
	LastError        string          `json:"last_error,omitempty"`
	Settings         domain.Settings `json:"settings"`
	ConsentGranted   bool            `json:"consent_granted"`
}

// SessionEngine orquesta el ciclo de envío contra el servicio asistente:
// valida, agrega el turno de usuario, clasifica crisis localmente, despacha
// exactamente un request y absorbe el resultado de vuelta en el log.
type SessionEngine struct {
	mu        sync.Mutex
	log       *MessageLog
	transport assist.Transport
	logger    *zap.Logger

	state     sessionState
	settings  domain.Settings
	consent   bool
	crisis    bool
	lastError string

	watchers    map[int64]chan StateSnapshot
	nextWatcher int64
}

// NewSessionEngine crea un motor de sesión con el log sembrado.
func NewSessionEngine(transport assist.Transport, logger *zap.Logger) *SessionEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionEngine{
		log:       NewMessageLog(),
		transport: transport,
		logger:    logger,
		settings:  domain.DefaultSettings(),
		watchers:  make(map[int64]chan StateSnapshot),
	}
}

// Submit ejecuta un ciclo completo del state machine. Los rechazos de
// validación no agregan turnos; las fallas de transporte se absorben como un
// turno de disculpa más lastError, y nunca se propagan al colaborador.
func (e *SessionEngine) Submit(ctx context.Context, rawText string) (StateSnapshot, error) {
	e.mu.Lock()

	if e.state == stateAwaitingResponse {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrSessionBusy
	}

	e.state = stateValidating
	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		e.lastError = emptyMessageErrorText
		e.state = stateIdle
		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.notify(snap)
		return snap, ErrEmptyMessage
	}
	if !e.consent {
		e.lastError = consentErrorText
		e.state = stateIdle
		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.notify(snap)
		return snap, ErrConsentRequired
	}

	e.lastError = ""
	e.log.Append(domain.RoleUser, trimmed)

	// La detección local nunca espera al round trip.
	if ClassifyCrisis(trimmed) {
		e.crisis = true
		e.logger.Warn("crisis language detected")
	}

	e.state = stateAwaitingResponse
	payload := BuildPayload(e.log.Snapshot(), e.settings, trimmed)
	pendingSnap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(pendingSnap)

	var reply assist.Reply
	err := errors.New("transport not configured")
	if e.transport != nil {
		reply, err = e.transport.Send(ctx, payload)
	}

	e.mu.Lock()
	if err != nil {
		e.logger.Warn("assistant round trip failed", zap.Error(err))
		e.lastError = transportErrorText
		e.log.Append(domain.RoleAssistant, apologyReplyText)
	} else {
		if reply.Flagged && !e.crisis {
			e.crisis = true
		}
		text := strings.TrimSpace(reply.Text)
		if text == "" {
			text = fallbackReplyText
		}
		e.log.Append(domain.RoleAssistant, text)
	}
	e.state = stateIdle
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return snap, nil
}

// Snapshot devuelve la vista actual del estado de sesión.
func (e *SessionEngine) Snapshot() StateSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Messages devuelve la secuencia ordenada de turnos.
func (e *SessionEngine) Messages() []domain.Turn {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Snapshot()
}

// Pending indica si hay un round trip en vuelo.
func (e *SessionEngine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == stateAwaitingResponse
}

// CrisisFlagActive indica si el aviso de crisis sigue activo (sticky).
func (e *SessionEngine) CrisisFlagActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.crisis
}

// LastError devuelve el último mensaje de error visible, si hay.
func (e *SessionEngine) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastError
}

// UpdateSettings aplica cambios parciales de tono/nombre (last-write-wins).
func (e *SessionEngine) UpdateSettings(tone *domain.Tone, userName *string) StateSnapshot {
	e.mu.Lock()
	if tone != nil {
		e.settings.Tone = *tone
	}
	if userName != nil {
		e.settings.UserName = strings.TrimSpace(*userName)
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return snap
}

// SetConsent registra la decisión de consentimiento del usuario.
func (e *SessionEngine) SetConsent(granted bool) StateSnapshot {
	e.mu.Lock()
	e.consent = granted
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return snap
}

// DismissCrisisFlag apaga el aviso de crisis; solo el usuario lo descarta.
func (e *SessionEngine) DismissCrisisFlag() StateSnapshot {
	e.mu.Lock()
	e.crisis = false
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return snap
}

// Clear vuelve a sembrar el log; settings y consentimiento sobreviven.
func (e *SessionEngine) Clear() StateSnapshot {
	e.mu.Lock()
	e.log.Reset()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return snap
}

// ExportTranscript proyecta el log actual a texto plano.
func (e *SessionEngine) ExportTranscript() string {
	e.mu.Lock()
	turns := e.log.Snapshot()
	e.mu.Unlock()
	return ExportTranscript(turns)
}

// Watch registra un observador de snapshots; el cancel lo da de baja.
// Los snapshots se entregan best-effort: si el canal está lleno se descartan.
func (e *SessionEngine) Watch() (<-chan StateSnapshot, func()) {
	e.mu.Lock()
	id := e.nextWatcher
	e.nextWatcher++
	ch := make(chan StateSnapshot, 8)
	e.watchers[id] = ch
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if c, ok := e.watchers[id]; ok {
			delete(e.watchers, id)
			close(c)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *SessionEngine) snapshotLocked() StateSnapshot {
	return StateSnapshot{
		Messages:         e.log.Snapshot(),
		Pending:          e.state == stateAwaitingResponse,
		CrisisFlagActive: e.crisis,
		LastError:        e.lastError,
		Settings:         e.settings,
		ConsentGranted:   e.consent,
	}
}

func (e *SessionEngine) notify(snap StateSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.watchers {
		select {
		case ch <- snap:
		default:
		}
	}
}
