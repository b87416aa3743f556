// Package parking is the parking garage application expressed as lockstep
// configuration data.
//
// Button presses arrive over MQTT, move a barrier through a short cool-down and
// update a free-space counter, whose changes are published back as LED and
// display signals.
package parking
