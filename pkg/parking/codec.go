package parking

import (
	"strconv"
	"strings"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ports"
)

// MQTT topics used by the garage hardware.
const (
	ButtonTopic = "sorrir/button-pressed"
	SignalTopic = "sorrir/signal-update"
)

// DecodeButton accepts the two button payloads and rejects everything else.
func DecodeButton(msg ports.Message) (domain.Event, bool) {
	switch kind := domain.EventKind(msg.Payload); kind {
	case ButtonUpPressed, ButtonDownPressed:
		return domain.NewEvent(kind, ToBarrier), true
	default:
		return domain.Event{}, false
	}
}

// EncodeSignal maps a signal event to its topic suffix and payload.
// LED states are sent as "1" or "0", the display as the decimal count.
func EncodeSignal(ev domain.Event) (string, []byte, bool) {
	switch ev.Kind() {
	case LedRedKind, LedGreenKind:
		on := false
		switch p := ev.Payload().(type) {
		case LedRed:
			on = p.On
		case LedGreen:
			on = p.On
		}
		if on {
			return string(ev.Kind()), []byte("1"), true
		}
		return string(ev.Kind()), []byte("0"), true
	case DisplayKind:
		free := 0
		if p, ok := ev.Payload().(Display); ok {
			free = p.FreeSpaces
		}
		return string(DisplayKind), []byte(strconv.Itoa(free)), true
	default:
		return "", nil, false
	}
}

// DecodeSignal parses a message published by EncodeSignal under SignalTopic.
// It is used by monitors and tests; the garage itself never consumes signals.
func DecodeSignal(msg ports.Message) (domain.Event, bool) {
	suffix, ok := strings.CutPrefix(msg.Topic, SignalTopic+"/")
	if !ok {
		return domain.Event{}, false
	}

	value := string(msg.Payload)
	switch domain.EventKind(suffix) {
	case LedRedKind:
		on, ok := parseBit(value)
		return domain.NewPayloadEvent(FromParkingManagement, LedRed{On: on}), ok
	case LedGreenKind:
		on, ok := parseBit(value)
		return domain.NewPayloadEvent(FromParkingManagement, LedGreen{On: on}), ok
	case DisplayKind:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return domain.Event{}, false
		}
		return domain.NewPayloadEvent(FromParkingManagement, Display{FreeSpaces: n}), true
	default:
		return domain.Event{}, false
	}
}

func parseBit(s string) (bool, bool) {
	switch s {
	case "1":
		return true, true
	case "0":
		return false, true
	default:
		return false, false
	}
}
