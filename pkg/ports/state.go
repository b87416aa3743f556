package ports

import "github.com/aretw0/lockstep/pkg/domain"

// StateReader exposes the latest committed configuration state to concurrent readers.
type StateReader interface {
	// Snapshot returns the last committed state, or false before the first Init.
	Snapshot() (domain.ConfigurationState, bool)
}
