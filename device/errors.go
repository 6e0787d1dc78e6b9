package device

import (
	"errors"
	"fmt"
)

var (
	// ErrShaderUnsupported is returned when the backend cannot compile the
	// shaders sprite rendering needs. It is fatal and never retried.
	ErrShaderUnsupported = errors.New("device: required shader support is unavailable")

	// ErrDeviceLost is returned by frame operations while the device is lost.
	ErrDeviceLost = errors.New("device: device lost")

	// ErrNoSurface is returned when a frame is prepared with no bound surface.
	ErrNoSurface = errors.New("device: no surface bound")

	// ErrSlotOutOfRange is returned for descriptor slots beyond the heap capacity.
	ErrSlotOutOfRange = errors.New("device: descriptor slot out of range")

	// ErrNotCreated is returned when resources are used before CreateDeviceResources.
	ErrNotCreated = errors.New("device: device resources not created")
)

// StatusDeviceRemoved is the status a backend reports for work submitted
// while it holds no device.
const StatusDeviceRemoved uint32 = 0x887A0005

// StatusError carries a failing status code reported by a graphics call.
// Backends return it, through Check, for failures that have no sentinel.
type StatusError struct {
	Op   string
	Code uint32
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: failure with status code %08X", e.Op, e.Code)
}

// Failed reports whether code is a failure status (high bit set).
func Failed(code uint32) bool {
	return code&0x80000000 != 0
}

// Check converts a status code into an error. Success codes yield nil.
func Check(op string, code uint32) error {
	if !Failed(code) {
		return nil
	}
	return &StatusError{Op: op, Code: code}
}
