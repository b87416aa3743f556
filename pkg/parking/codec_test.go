package parking_test

import (
	"testing"

	"github.com/aretw0/lockstep/pkg/bridge"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/parking"
	"github.com/aretw0/lockstep/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeButton(t *testing.T) {
	ev, ok := parking.DecodeButton(ports.Message{Topic: parking.ButtonTopic, Payload: []byte("BUTTON_UP_PRESSED")})
	require.True(t, ok)
	assert.Equal(t, domain.EventKind(parking.ButtonUpPressed), ev.Kind())
	assert.Equal(t, parking.ToBarrier, ev.Port())

	ev, ok = parking.DecodeButton(ports.Message{Payload: []byte("BUTTON_DOWN_PRESSED")})
	require.True(t, ok)
	assert.Equal(t, domain.EventKind(parking.ButtonDownPressed), ev.Kind())

	for _, raw := range []string{"", "CAR_IN", "button_up_pressed", "BUTTON_UP_PRESSED "} {
		_, ok := parking.DecodeButton(ports.Message{Payload: []byte(raw)})
		assert.False(t, ok, raw)
	}
}

func TestEncodeSignal(t *testing.T) {
	tests := []struct {
		name    string
		event   domain.Event
		topic   string
		payload string
	}{
		{"red on", domain.NewPayloadEvent("p", parking.LedRed{On: true}), "LED_RED", "1"},
		{"red off", domain.NewPayloadEvent("p", parking.LedRed{}), "LED_RED", "0"},
		{"green on", domain.NewPayloadEvent("p", parking.LedGreen{On: true}), "LED_GREEN", "1"},
		{"led without payload", domain.NewEvent(parking.LedGreenKind, "p"), "LED_GREEN", "0"},
		{"display", domain.NewPayloadEvent("p", parking.Display{FreeSpaces: 3}), "DISPLAY", "3"},
		{"display empty", domain.NewPayloadEvent("p", parking.Display{}), "DISPLAY", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, payload, ok := parking.EncodeSignal(tt.event)
			require.True(t, ok)
			assert.Equal(t, tt.topic, topic)
			assert.Equal(t, tt.payload, string(payload))
		})
	}

	_, _, ok := parking.EncodeSignal(domain.NewEvent(parking.CarIn, "p"))
	assert.False(t, ok)
}

func TestSignalCodec_RoundTrip(t *testing.T) {
	for _, p := range []domain.Payload{
		parking.LedRed{On: true},
		parking.LedRed{On: false},
		parking.LedGreen{On: true},
		parking.Display{FreeSpaces: 0},
		parking.Display{FreeSpaces: 17},
	} {
		sent := domain.NewPayloadEvent(parking.ToSignalController, p)

		suffix, payload, ok := parking.EncodeSignal(sent)
		require.True(t, ok)

		got, ok := parking.DecodeSignal(ports.Message{Topic: bridge.Topic(parking.SignalTopic, suffix), Payload: payload})
		require.True(t, ok)
		assert.Equal(t, sent.Kind(), got.Kind())
		assert.Equal(t, sent.Payload(), got.Payload())
	}
}

func TestDecodeSignal_Rejects(t *testing.T) {
	for _, msg := range []ports.Message{
		{Topic: "other/LED_RED", Payload: []byte("1")},
		{Topic: parking.SignalTopic + "/LED_RED", Payload: []byte("2")},
		{Topic: parking.SignalTopic + "/DISPLAY", Payload: []byte("-1")},
		{Topic: parking.SignalTopic + "/DISPLAY", Payload: []byte("many")},
		{Topic: parking.SignalTopic + "/CAR_IN", Payload: []byte("1")},
	} {
		_, ok := parking.DecodeSignal(msg)
		assert.False(t, ok, msg.Topic)
	}
}
