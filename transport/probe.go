package transport

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

const probeTimeout = 100 * time.Millisecond

var (
	statusRequest = []byte("\x1b[5n")
	statusOK      = []byte("\x1b[0n")
)

// probeEscapes sends a device status request and expects the "terminal OK" reply.
func probeEscapes(r io.Reader, w io.Writer) error {
	if _, err := w.Write(statusRequest); err != nil {
		return err
	}

	reply := make([]byte, len(statusOK))
	if _, err := io.ReadFull(r, reply); err != nil {
		return fmt.Errorf("%w: %v", ErrNoEscapes, err)
	}
	if !bytes.Equal(reply, statusOK) {
		return fmt.Errorf("%w: unexpected reply %q", ErrNoEscapes, reply)
	}

	return nil
}
