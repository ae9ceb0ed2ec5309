package video

// Listener receives the framebuffer-changed notification. It is called
// synchronously from within the machine cycle that changed the frame and
// must not call back into the machine.
type Listener interface {
	FrameChanged(frame Snapshot)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(frame Snapshot)

// FrameChanged calls f(frame).
func (f ListenerFunc) FrameChanged(frame Snapshot) {
	f(frame)
}
