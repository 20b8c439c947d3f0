package transport

import (
	"bytes"
	"io"
)

type crReader struct {
	r      io.Reader
	lastCR bool
}

// NewReader translates received CR and CRLF line endings into LF.
func NewReader(r io.Reader) io.Reader {
	return &crReader{r: r}
}

func (c *crReader) Read(p []byte) (int, error) {
	for {
		n, err := c.r.Read(p)

		out := 0
		for i := 0; i < n; i++ {
			b := p[i]
			switch {
			case b == '\r':
				p[out] = '\n'
				out++
				c.lastCR = true
			case b == '\n' && c.lastCR:
				c.lastCR = false
			default:
				p[out] = b
				out++
				c.lastCR = false
			}
		}

		if out > 0 || err != nil || n == 0 {
			return out, err
		}
	}
}

type crlfWriter struct {
	w io.Writer
}

// NewWriter translates transmitted LF line endings into CRLF.
func NewWriter(w io.Writer) io.Writer {
	return &crlfWriter{w: w}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
