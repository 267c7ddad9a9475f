package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"havenchat/internal/domain"
)

func TestExportTranscript_BlocksInOrder(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	turns := []domain.Turn{
		{ID: 0, Role: domain.RoleSystem, Text: "instrucciones", Timestamp: ts},
		{ID: 1, Role: domain.RoleAssistant, Text: "hola", Timestamp: ts.Add(time.Second)},
		{ID: 2, Role: domain.RoleUser, Text: "me siento mal", Timestamp: ts.Add(2 * time.Second)},
	}

	out := ExportTranscript(turns)

	blocks := strings.Split(strings.TrimRight(out, "\n"), "\n\n")
	if len(blocks) != len(turns) {
		t.Fatalf("expected %d blocks, got %d: %q", len(turns), len(blocks), out)
	}
	for i, want := range []string{"SYSTEM: instrucciones", "ASSISTANT: hola", "USER: me siento mal"} {
		if !strings.Contains(blocks[i], want) {
			t.Fatalf("block %d missing %q: %q", i, want, blocks[i])
		}
	}
	// Cada bloque lleva el timestamp local entre corchetes.
	wantTS := ts.Local().Format("2006-01-02 15:04:05")
	if !strings.HasPrefix(blocks[0], "["+wantTS+"]") {
		t.Fatalf("expected local timestamp prefix, got %q", blocks[0])
	}
}

func TestExportTranscript_Empty(t *testing.T) {
	if out := ExportTranscript(nil); out != "" {
		t.Fatalf("expected empty transcript, got %q", out)
	}
}

func TestExportTranscript_DoesNotMutate(t *testing.T) {
	l := NewMessageLog()
	before := l.Len()
	_ = ExportTranscript(l.Snapshot())
	if l.Len() != before {
		t.Fatalf("export must be a pure projection")
	}
}

func TestTranscriptFilename(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 30, 5, 0, time.Local)
	want := fmt.Sprintf("transcript-%s.txt", now.Format("20060102-150405"))
	if got := TranscriptFilename(now); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
