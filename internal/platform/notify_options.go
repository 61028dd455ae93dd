// Package platform sends desktop notifications through whatever the host
// operating system provides.
package platform

import "time"

// AppName identifies the application to the notification service.
const AppName = "Doodle"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown with the
	// notification where the platform supports it.
	IconPath string
	// Timeout is how long the notification stays up. Zero selects the
	// platform default.
	Timeout time.Duration
}

func (o Options) timeoutMillis() int32 {
	if o.Timeout <= 0 {
		return 5000
	}
	return int32(o.Timeout / time.Millisecond)
}
