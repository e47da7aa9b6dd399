package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gipmap/gipmap/gip"
)

// FrameLogger handles raw protocol frame logging with optional file output.
type FrameLogger interface {
	Log(in bool, data []byte)
}

// frameLogger implements FrameLogger with thread-safe logging.
type frameLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewFrame creates a new FrameLogger. If writer is nil, returns a no-op logger.
func NewFrame(w io.Writer) FrameLogger {
	return &frameLogger{w: w}
}

// Log emits a single-line frame log with timestamp, direction, command name
// and hex dump. in=true means device->host, in=false means host->device.
func (r *frameLogger) Log(in bool, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	dir := "host->dev"
	if in {
		dir = "dev->host"
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s %s: %d bytes, hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		gip.CommandName(data[0]),
		len(data),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
