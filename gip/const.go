package gip

// GIP command identifiers. The controller tags every frame with one of
// these in the first header byte.
const (
	CmdAcknowledge  byte = 0x01
	CmdAnnounce     byte = 0x02
	CmdStatus       byte = 0x03
	CmdIdentify     byte = 0x04
	CmdPower        byte = 0x05
	CmdAuthenticate byte = 0x06
	CmdGuideButton  byte = 0x07
	CmdAudioConfig  byte = 0x08
	CmdRumble       byte = 0x09
	CmdLED          byte = 0x0a
	CmdSerial       byte = 0x1e
	CmdInput        byte = 0x20
)

// CommandName returns a readable name for a command byte, for logging.
func CommandName(cmd byte) string {
	switch cmd {
	case CmdAcknowledge:
		return "acknowledge"
	case CmdAnnounce:
		return "announce"
	case CmdStatus:
		return "status"
	case CmdIdentify:
		return "identify"
	case CmdPower:
		return "power"
	case CmdAuthenticate:
		return "authenticate"
	case CmdGuideButton:
		return "guide"
	case CmdAudioConfig:
		return "audio-config"
	case CmdRumble:
		return "rumble"
	case CmdLED:
		return "led"
	case CmdSerial:
		return "serial"
	case CmdInput:
		return "input"
	default:
		return "unknown"
	}
}

// Button bitmasks for the 16-bit button field of an input frame, as read
// little-endian from the wire.
const (
	ButtonSync      uint16 = 0x0001
	ButtonGuide     uint16 = 0x0002
	ButtonMenu      uint16 = 0x0004
	ButtonView      uint16 = 0x0008
	ButtonA         uint16 = 0x0010
	ButtonB         uint16 = 0x0020
	ButtonX         uint16 = 0x0040
	ButtonY         uint16 = 0x0080
	ButtonDPadUp    uint16 = 0x0100
	ButtonDPadDown  uint16 = 0x0200
	ButtonDPadLeft  uint16 = 0x0400
	ButtonDPadRight uint16 = 0x0800
	ButtonLB        uint16 = 0x1000
	ButtonRB        uint16 = 0x2000
	ButtonLS        uint16 = 0x4000
	ButtonRS        uint16 = 0x8000
)

// USB identifiers for the supported controller family.
const (
	VendorMicrosoft  uint16 = 0x045e
	ProductXboxOne   uint16 = 0x02d1
	ProductXboxOneS  uint16 = 0x02dd
	ProductXboxOneX  uint16 = 0x02ea
	ProductXboxElite uint16 = 0x02e3
)

// ProductFamily lists the product ids probed when no explicit product is
// configured.
var ProductFamily = []uint16{ProductXboxOne, ProductXboxOneS, ProductXboxOneX, ProductXboxElite}
