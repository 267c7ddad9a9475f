package service

import (
	"fmt"
	"reflect"
	"testing"

	"havenchat/internal/domain"
)

func TestBuildPayload_CandidateIsAlwaysLast(t *testing.T) {
	settings := domain.Settings{Tone: domain.ToneCompassionate, UserName: "Ana"}

	t.Run("log previo al append", func(t *testing.T) {
		l := NewMessageLog()
		payload := BuildPayload(l.Snapshot(), settings, "me siento ansiosa")
		if len(payload.Messages) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(payload.Messages))
		}
		last := payload.Messages[len(payload.Messages)-1]
		if last.Role != "user" || last.Text != "me siento ansiosa" {
			t.Fatalf("expected candidate as last entry, got %+v", last)
		}
	})

	t.Run("log posterior al append no duplica", func(t *testing.T) {
		l := NewMessageLog()
		l.Append(domain.RoleUser, "me siento ansiosa")
		payload := BuildPayload(l.Snapshot(), settings, "me siento ansiosa")
		if len(payload.Messages) != 3 {
			t.Fatalf("expected 3 entries without duplication, got %d", len(payload.Messages))
		}
	})

	t.Run("pre y post append producen el mismo payload", func(t *testing.T) {
		before := NewMessageLog()
		after := NewMessageLog()
		after.Append(domain.RoleUser, "hola")

		p1 := BuildPayload(before.Snapshot(), settings, "hola")
		p2 := BuildPayload(after.Snapshot(), settings, "hola")
		if !reflect.DeepEqual(p1, p2) {
			t.Fatalf("expected identical payloads, got %+v vs %+v", p1, p2)
		}
	})
}

func TestBuildPayload_WindowLimit(t *testing.T) {
	l := NewMessageLog()
	for i := 0; i < 30; i++ {
		l.Append(domain.RoleUser, fmt.Sprintf("msg%d", i))
	}

	payload := BuildPayload(l.Snapshot(), domain.DefaultSettings(), "el último")

	if len(payload.Messages) != payloadWindowSize {
		t.Fatalf("expected exactly %d entries, got %d", payloadWindowSize, len(payload.Messages))
	}
	last := payload.Messages[len(payload.Messages)-1]
	if last.Text != "el último" {
		t.Fatalf("expected candidate to survive truncation, got %q", last.Text)
	}
	// Se descartan las entradas más viejas, no las recientes.
	if payload.Messages[len(payload.Messages)-2].Text != "msg29" {
		t.Fatalf("expected msg29 before the candidate, got %q", payload.Messages[len(payload.Messages)-2].Text)
	}
}

func TestBuildPayload_SettingsMetadata(t *testing.T) {
	l := NewMessageLog()
	payload := BuildPayload(l.Snapshot(), domain.Settings{Tone: domain.ToneCurious, UserName: "Luis"}, "hola")

	if payload.Settings.Tone != "curious" {
		t.Fatalf("expected tone curious, got %q", payload.Settings.Tone)
	}
	if payload.Metadata.UserName != "Luis" {
		t.Fatalf("expected userName Luis, got %q", payload.Metadata.UserName)
	}
}

func TestBuildPayload_Deterministic(t *testing.T) {
	l := NewMessageLog()
	l.Append(domain.RoleUser, "uno")
	l.Append(domain.RoleAssistant, "dos")
	turns := l.Snapshot()
	settings := domain.DefaultSettings()

	p1 := BuildPayload(turns, settings, "tres")
	p2 := BuildPayload(turns, settings, "tres")
	if !reflect.DeepEqual(p1, p2) {
		t.Fatalf("expected deterministic payloads")
	}
}
