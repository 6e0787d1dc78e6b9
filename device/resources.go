// Package device manages the lifetime of the graphics device and the
// resources created from it, including recovery after device loss.
package device

import (
	"context"
	"fmt"
	"image"

	"github.com/looplab/fsm"
)

// Device states.
const (
	StateInactive = "inactive"
	StateActive   = "active"
	StateLost     = "lost"
)

const (
	eventCreate  = "create"
	eventLose    = "lose"
	eventRestore = "restore"
)

// Resources owns the device backend, the output size and the device state
// machine: inactive -> active -> lost -> active.
type Resources struct {
	backend Backend
	notify  Notify
	state   *fsm.FSM

	width, height int
}

// NewResources wraps backend. No device is created until CreateDeviceResources.
func NewResources(backend Backend) *Resources {
	r := &Resources{
		backend: backend,
		width:   1,
		height:  1,
	}

	r.state = fsm.NewFSM(
		StateInactive,
		fsm.Events{
			{Name: eventCreate, Src: []string{StateInactive}, Dst: StateActive},
			{Name: eventLose, Src: []string{StateActive}, Dst: StateLost},
			{Name: eventRestore, Src: []string{StateLost}, Dst: StateActive},
		},
		fsm.Callbacks{
			"enter_" + StateLost: func(_ context.Context, _ *fsm.Event) {
				if r.notify != nil {
					r.notify.OnDeviceLost()
				}
			},
			"after_" + eventRestore: func(_ context.Context, _ *fsm.Event) {
				if r.notify != nil {
					r.notify.OnDeviceRestored()
				}
			},
		},
	)

	return r
}

// RegisterDeviceNotify sets the receiver of loss and restoration callbacks.
func (r *Resources) RegisterDeviceNotify(notify Notify) {
	r.notify = notify
}

// Backend returns the underlying backend.
func (r *Resources) Backend() Backend {
	return r.backend
}

// State returns the current device state.
func (r *Resources) State() string {
	return r.state.Current()
}

// SetWindow records the output size. Sizes below one pixel are raised to one.
func (r *Resources) SetWindow(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
}

// CreateDeviceResources creates the device. On first use it also moves the
// state machine to active.
func (r *Resources) CreateDeviceResources() error {
	if err := r.backend.CreateDevice(); err != nil {
		return fmt.Errorf("device: create device: %w", err)
	}
	if r.state.Is(StateInactive) {
		if err := r.state.Event(context.Background(), eventCreate); err != nil {
			return fmt.Errorf("device: %w", err)
		}
	}
	return nil
}

// CreateWindowSizeDependentResources prepares size-dependent device state.
// The toolkit owns the swap chain, so there is nothing to allocate beyond
// validating that a device exists.
func (r *Resources) CreateWindowSizeDependentResources() error {
	if r.state.Is(StateInactive) {
		return ErrNotCreated
	}
	return nil
}

// WindowSizeChanged updates the output size and reports whether it changed.
func (r *Resources) WindowSizeChanged(width, height int) bool {
	width, height = max(width, 1), max(height, 1)
	if width == r.width && height == r.height {
		return false
	}
	r.width, r.height = width, height
	return r.CreateWindowSizeDependentResources() == nil
}

// OutputSize returns the output size in pixels.
func (r *Resources) OutputSize() (width, height int) {
	return r.width, r.height
}

// Viewport returns the full output rectangle.
func (r *Resources) Viewport() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// Prepare returns the surface for the next frame.
func (r *Resources) Prepare() (Surface, error) {
	switch r.state.Current() {
	case StateLost:
		return nil, ErrDeviceLost
	case StateInactive:
		return nil, ErrNotCreated
	}

	surface := r.backend.Surface()
	if surface == nil {
		return nil, ErrNoSurface
	}
	return surface, nil
}

// Present shows the prepared frame.
func (r *Resources) Present() error {
	if r.state.Is(StateLost) {
		return ErrDeviceLost
	}
	if err := r.backend.Present(); err != nil {
		return fmt.Errorf("device: present: %w", err)
	}
	return nil
}

// WaitForGPU blocks until outstanding device work has finished.
func (r *Resources) WaitForGPU() {
	if r.state.Is(StateActive) {
		r.backend.WaitForGPU()
	}
}

// HandleDeviceLost runs the loss and restoration cycle: notify loss, release
// and recreate the device, then notify restoration. It is the only way the
// device leaves the active state and is invoked by the host, not game logic.
// If recreation fails the device stays lost and the error is returned.
func (r *Resources) HandleDeviceLost(ctx context.Context) error {
	if r.state.Is(StateActive) {
		if err := r.state.Event(ctx, eventLose); err != nil {
			return fmt.Errorf("device: %w", err)
		}
		r.backend.ReleaseDevice()
	}
	if !r.state.Is(StateLost) {
		return fmt.Errorf("device: cannot restore from state %q", r.state.Current())
	}

	if err := r.CreateDeviceResources(); err != nil {
		return err
	}
	if err := r.CreateWindowSizeDependentResources(); err != nil {
		return err
	}

	if err := r.state.Event(ctx, eventRestore); err != nil {
		return fmt.Errorf("device: %w", err)
	}
	return nil
}
