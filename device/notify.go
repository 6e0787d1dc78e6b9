package device

// Notify receives device loss and restoration callbacks from Resources.
type Notify interface {
	// OnDeviceLost releases everything created from the lost device.
	OnDeviceLost()
	// OnDeviceRestored recreates device-dependent resources.
	OnDeviceRestored()
}
