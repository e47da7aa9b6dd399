// Package transport connects the GIP session to a controller over USB
// interrupt endpoints.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/gousb"

	"github.com/gipmap/gipmap/gip"
)

// Config selects which controller to open. Vendor and Product are hex
// strings so config files can carry the familiar 045e notation. An empty
// Product probes the whole known product family.
type Config struct {
	Vendor  string `help:"USB vendor id (hex)." default:"045e"`
	Product string `help:"USB product id (hex). Empty probes the known controller family." default:""`
}

func parseID(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid usb id %q: %w", s, err)
	}
	return uint16(v), nil
}

// USB is a gip.Transport over a claimed interrupt interface.
type USB struct {
	ctx    *gousb.Context
	dev    *gousb.Device
	cfg    *gousb.Config
	intf   *gousb.Interface
	in     *gousb.InEndpoint
	out    *gousb.OutEndpoint
	logger *slog.Logger
}

// Open claims the first matching controller. The kernel driver is detached
// automatically so the raw endpoints are available.
func Open(cfg Config, logger *slog.Logger) (*USB, error) {
	vendor, err := parseID(cfg.Vendor)
	if err != nil {
		return nil, err
	}

	products := gip.ProductFamily
	if cfg.Product != "" {
		p, err := parseID(cfg.Product)
		if err != nil {
			return nil, err
		}
		products = []uint16{p}
	}

	usbCtx := gousb.NewContext()
	for _, pid := range products {
		dev, err := usbCtx.OpenDeviceWithVIDPID(gousb.ID(vendor), gousb.ID(pid))
		if err != nil || dev == nil {
			continue
		}

		t, err := claim(usbCtx, dev, logger)
		if err != nil {
			logger.Warn("matched device could not be claimed", "product", fmt.Sprintf("%#04x", pid), "error", err)
			dev.Close()
			continue
		}
		logger.Info("controller opened", "vendor", fmt.Sprintf("%#04x", vendor), "product", fmt.Sprintf("%#04x", pid))
		return t, nil
	}
	usbCtx.Close()
	return nil, fmt.Errorf("no controller found for vendor %#04x: %w", vendor, gip.ErrDisconnected)
}

func claim(usbCtx *gousb.Context, dev *gousb.Device, logger *slog.Logger) (*USB, error) {
	if err := dev.SetAutoDetach(true); err != nil {
		return nil, fmt.Errorf("auto-detach: %w", err)
	}

	cfg, err := dev.Config(1)
	if err != nil {
		return nil, fmt.Errorf("claim configuration 1: %w", err)
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		return nil, fmt.Errorf("claim interface 0: %w", err)
	}

	in, err := intf.InEndpoint(1)
	if err != nil {
		intf.Close()
		cfg.Close()
		return nil, fmt.Errorf("open in endpoint 1: %w", err)
	}

	out, err := intf.OutEndpoint(1)
	if err != nil {
		intf.Close()
		cfg.Close()
		return nil, fmt.Errorf("open out endpoint 1: %w", err)
	}

	return &USB{ctx: usbCtx, dev: dev, cfg: cfg, intf: intf, in: in, out: out, logger: logger}, nil
}

// Read reads one interrupt transfer into buf, waiting at most timeout.
func (u *USB) Read(buf []byte, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := u.in.ReadContext(ctx, buf)
	if err != nil {
		return n, mapUSBError(err)
	}
	return n, nil
}

// Write sends one interrupt transfer, waiting at most timeout.
func (u *USB) Write(data []byte, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := u.out.WriteContext(ctx, data); err != nil {
		return mapUSBError(err)
	}
	return nil
}

// Close releases the interface, configuration and device, then the usb
// context, in that order.
func (u *USB) Close() error {
	if u.intf != nil {
		u.intf.Close()
	}
	var errs []error
	if u.cfg != nil {
		errs = append(errs, u.cfg.Close())
	}
	if u.dev != nil {
		errs = append(errs, u.dev.Close())
	}
	if u.ctx != nil {
		errs = append(errs, u.ctx.Close())
	}
	return errors.Join(errs...)
}

// mapUSBError folds libusb and context failures into the two transport
// sentinels the session layer distinguishes.
func mapUSBError(err error) error {
	switch {
	case errors.Is(err, gousb.TransferTimedOut),
		errors.Is(err, gousb.ErrorTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", gip.ErrTimeout, err)
	case errors.Is(err, gousb.TransferNoDevice),
		errors.Is(err, gousb.ErrorNoDevice),
		errors.Is(err, gousb.ErrorIO),
		errors.Is(err, gousb.TransferStall):
		return fmt.Errorf("%w: %w", gip.ErrDisconnected, err)
	default:
		return err
	}
}
