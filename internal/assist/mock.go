package assist

import "context"

// MockTransport permite tests sin llamar al servicio asistente real.
type MockTransport struct {
	Reply  Reply
	Err    error
	Calls  int
	Last   Payload
	OnSend func(payload Payload)
}

func (m *MockTransport) Send(ctx context.Context, payload Payload) (Reply, error) {
	m.Calls++
	m.Last = payload
	if m.OnSend != nil {
		m.OnSend(payload)
	}
	return m.Reply, m.Err
}
