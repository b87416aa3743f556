package parking

import "github.com/aretw0/lockstep/pkg/domain"

// Event kinds of the parking application.
const (
	ButtonUpPressed   domain.EventKind = "BUTTON_UP_PRESSED"
	ButtonDownPressed domain.EventKind = "BUTTON_DOWN_PRESSED"
	CarIn             domain.EventKind = "CAR_IN"
	CarOut            domain.EventKind = "CAR_OUT"
	LedRedKind        domain.EventKind = "LED_RED"
	LedGreenKind      domain.EventKind = "LED_GREEN"
	DisplayKind       domain.EventKind = "DISPLAY"
)

// LedRed switches the red signal light.
type LedRed struct {
	On bool `json:"on"`
}

func (LedRed) Kind() domain.EventKind { return LedRedKind }

// LedGreen switches the green signal light.
type LedGreen struct {
	On bool `json:"on"`
}

func (LedGreen) Kind() domain.EventKind { return LedGreenKind }

// Display shows the number of free spaces.
type Display struct {
	FreeSpaces int `json:"free_spaces"`
}

func (Display) Kind() domain.EventKind { return DisplayKind }

// signals returns the three signal updates for a free-space count, in publish order.
func signals(port domain.PortID, free int) []domain.Event {
	full := free == 0
	return []domain.Event{
		domain.NewPayloadEvent(port, LedRed{On: full}),
		domain.NewPayloadEvent(port, LedGreen{On: !full}),
		domain.NewPayloadEvent(port, Display{FreeSpaces: free}),
	}
}
