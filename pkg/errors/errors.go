package errors

import "errors"

// Lookup and registration errors shared across the simulator. Operation
// refusals (such as opening a locked door) are not errors; they are reported
// through boolean results at the device layer.
var (
	ErrDeviceNotFound  = errors.New("device not found")
	ErrRuleNotFound    = errors.New("rule not found")
	ErrDuplicateDevice = errors.New("device id already registered")
	ErrDuplicateRule   = errors.New("rule name already registered")
)
