package serial

// Device is a device that can be attached to the Controller.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true.
func (n nullDevice) Send() bool { return true }

// Recorder is a Device that collects the bytes sent by the Game Boy,
// as test ROMs do to report their results. It sends 1 bits, as if
// nothing were attached.
type Recorder struct {
	data  []byte
	value uint8
	count uint8
}

// Receive shifts in a bit sent by the Game Boy, most significant
// bit first.
func (r *Recorder) Receive(bit bool) {
	r.value <<= 1
	if bit {
		r.value |= 1
	}
	if r.count++; r.count == 8 {
		r.data = append(r.data, r.value)
		r.value, r.count = 0, 0
	}
}

// Send always returns true.
func (r *Recorder) Send() bool { return true }

// Bytes returns the bytes received so far.
func (r *Recorder) Bytes() []byte { return r.data }

func (r *Recorder) String() string { return string(r.data) }
