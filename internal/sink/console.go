package sink

import (
	"log/slog"

	"github.com/gipmap/gipmap/mapping"
	"github.com/gipmap/gipmap/translate"
)

// Console logs every event instead of injecting it. It tracks a virtual
// cursor so absolute-mode delivery behaves the same as with a real sink.
type Console struct {
	logger *slog.Logger
	x, y   float64
}

func NewConsole(logger *slog.Logger) *Console {
	return &Console{logger: logger}
}

func (c *Console) Key(code mapping.KeyCode, pressed bool) error {
	c.logger.Info("key", "name", mapping.KeyName(code), "pressed", pressed)
	return nil
}

func (c *Console) MouseButton(btn translate.MouseButton, pressed bool) error {
	c.logger.Info("mouse button", "button", btn.String(), "pressed", pressed)
	return nil
}

func (c *Console) MouseMove(dx, dy float64) error {
	c.x += dx
	c.y += dy
	c.logger.Info("mouse move", "dx", dx, "dy", dy)
	return nil
}

func (c *Console) MouseMoveTo(x, y float64) error {
	c.x, c.y = x, y
	c.logger.Info("mouse move to", "x", x, "y", y)
	return nil
}

func (c *Console) CursorPosition() (float64, float64, error) {
	return c.x, c.y, nil
}

func (c *Console) Close() error { return nil }
