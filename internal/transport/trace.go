package transport

import (
	"time"

	"github.com/gipmap/gipmap/gip"
	"github.com/gipmap/gipmap/internal/log"
)

// traced wraps a transport and feeds every successful transfer to a frame
// logger.
type traced struct {
	tr     gip.Transport
	frames log.FrameLogger
}

// WithTrace decorates tr so that every frame crossing it is hex-dumped to
// frames. A nil frame logger returns tr unchanged.
func WithTrace(tr gip.Transport, frames log.FrameLogger) gip.Transport {
	if frames == nil {
		return tr
	}
	return &traced{tr: tr, frames: frames}
}

func (t *traced) Read(buf []byte, timeout time.Duration) (int, error) {
	n, err := t.tr.Read(buf, timeout)
	if err == nil && n > 0 {
		t.frames.Log(true, buf[:n])
	}
	return n, err
}

func (t *traced) Write(data []byte, timeout time.Duration) error {
	err := t.tr.Write(data, timeout)
	if err == nil {
		t.frames.Log(false, data)
	}
	return err
}
