package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"havenchat/internal/service"
)

func TestEventsStream_DeliversSnapshots(t *testing.T) {
	f := newHandlerFixture(t, nil)
	created := createSession(t, f, "")

	srv := httptest.NewServer(f.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/sessions/" + created.Session.ID + "/events?token=" + created.Token
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()
	defer resp.Body.Close()

	// El primer frame es el snapshot actual.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first service.StateSnapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if len(first.Messages) != 2 || first.ConsentGranted {
		t.Fatalf("unexpected initial snapshot: %+v", first)
	}

	// Un cambio de estado empuja otro snapshot.
	engine, err := f.store.Get(created.Session.ID)
	if err != nil {
		t.Fatalf("get engine: %v", err)
	}
	engine.SetConsent(true)

	var second service.StateSnapshot
	deadline := time.Now().Add(2 * time.Second)
	for {
		_ = conn.SetReadDeadline(deadline)
		if err := conn.ReadJSON(&second); err != nil {
			t.Fatalf("read pushed snapshot: %v", err)
		}
		if second.ConsentGranted {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("never received consent snapshot")
		}
	}
}

func TestEventsStream_UnknownSession(t *testing.T) {
	f := newHandlerFixture(t, nil)
	tokens := service.NewSessionTokenService("secret", 15*time.Minute)
	token, err := tokens.Issue("ghost")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sessions/ghost/events?token="+token, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
