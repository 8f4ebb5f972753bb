package sse

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestManager_ConnectDisconnect(t *testing.T) {
	m := NewManager(testLogger())

	client, err := m.Connect()
	require.NoError(t, err)
	require.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	require.Equal(t, 0, m.ClientCount())

	// Disconnecting twice is harmless.
	m.Disconnect(client.ID)
}

func TestManager_BroadcastReachesAllClients(t *testing.T) {
	m := NewManager(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	a, err := m.Connect()
	require.NoError(t, err)
	b, err := m.Connect()
	require.NoError(t, err)

	m.Emit(NewEvent(EventBookUpdated, map[string]int64{"id": 1}))

	for _, client := range []*Client{a, b} {
		select {
		case evt := <-client.EventChan:
			require.Equal(t, EventBookUpdated, evt.Type)
		case <-time.After(time.Second):
			t.Fatalf("client %s never received the event", client.ID)
		}
	}
}

func TestManager_EmitAfterShutdownIsDropped(t *testing.T) {
	m := NewManager(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)

	require.NoError(t, m.Shutdown(context.Background()))
	cancel()

	// Must not panic on the closed channel.
	m.Emit(NewEvent(EventBookCreated, nil))
}

func TestManager_EmitRejectsForeignTypes(t *testing.T) {
	m := NewManager(testLogger())
	m.Emit("not an event") // logged and ignored
}
