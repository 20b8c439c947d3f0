//go:build linux

package transport

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

var baudRates = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
	460800: unix.B460800,
	921600: unix.B921600,
}

// Serial is a UART or USB CDC device node configured as raw 8N1.
type Serial struct {
	device string
	baud   int
	kind   Kind

	file *os.File
	old  *unix.Termios
	r    io.Reader
	w    io.Writer
}

func NewSerial(device string, baud int, kind Kind) *Serial {
	if baud == 0 {
		baud = 115200
	}

	return &Serial{
		device: device,
		baud:   baud,
		kind:   kind,
	}
}

func (s *Serial) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	speed, ok := baudRates[s.baud]
	if !ok {
		return fmt.Errorf("unsupported baud rate: %d", s.baud)
	}

	file, err := os.OpenFile(s.device, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.device, err)
	}

	fd := int(file.Fd())
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to read termios of %s: %w", s.device, err)
	}
	old := *tio

	tio.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	tio.Oflag &^= unix.OPOST
	tio.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CBAUD
	tio.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | speed
	tio.Ispeed = speed
	tio.Ospeed = speed
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		file.Close()
		return fmt.Errorf("failed to configure %s: %w", s.device, err)
	}

	s.file = file
	s.old = &old
	s.r = NewReader(file)
	s.w = NewWriter(file)
	return nil
}

func (s *Serial) Read(p []byte) (int, error) {
	if s.file == nil {
		return 0, ErrNotOpen
	}
	return s.r.Read(p)
}

func (s *Serial) Write(p []byte) (int, error) {
	if s.file == nil {
		return 0, ErrNotOpen
	}
	return s.w.Write(p)
}

func (s *Serial) Kind() Kind {
	return s.kind
}

func (s *Serial) Probe() error {
	if s.file == nil {
		return ErrNotOpen
	}

	if err := s.file.SetReadDeadline(time.Now().Add(probeTimeout)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoEscapes, err)
	}
	defer s.file.SetReadDeadline(time.Time{})

	return probeEscapes(s.file, s.file)
}

func (s *Serial) LocalEcho() bool {
	return true
}

func (s *Serial) Close() error {
	if s.file == nil {
		return nil
	}

	if s.old != nil {
		_ = unix.IoctlSetTermios(int(s.file.Fd()), unix.TCSETS, s.old)
	}

	err := s.file.Close()
	s.file = nil
	return err
}
