// Package config declares the top-level CLI grammar parsed by kong.
package config

import "github.com/gipmap/gipmap/internal/cmd"

// LogOptions configures the logger shared by all commands.
type LogOptions struct {
	Level      string `help:"Log level (trace, debug, info, warn, error)" enum:"trace,debug,info,warn,error" default:"info" env:"GIPMAP_LOG_LEVEL"`
	File       string `help:"Write logs to this file instead of the console" env:"GIPMAP_LOG_FILE"`
	FramesFile string `help:"Write a hex dump of every protocol frame to this file" env:"GIPMAP_FRAMES_FILE"`
}

// CLI is the root of the command tree.
type CLI struct {
	ConfigPath string     `name:"config" help:"Path to a config file (json, yaml or toml)" env:"GIPMAP_CONFIG"`
	Log        LogOptions `embed:"" prefix:"log."`

	Run    cmd.Run           `cmd:"" default:"withargs" help:"Translate controller input into keyboard and mouse events"`
	Probe  cmd.Probe         `cmd:"" help:"Dump raw controller frames without translating"`
	Config cmd.ConfigCommand `cmd:"" help:"Configuration file helpers"`
}
