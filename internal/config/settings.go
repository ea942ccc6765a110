package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings holds the runtime configuration resolved at startup.
// Environment variables are read first; explicit command line flags win.
type Settings struct {
	Port      string `env:"GOAGE_PORT"`
	BindAddr  string `env:"GOAGE_BIND"`
	Language  string `env:"GOAGE_LANGUAGE"`
	Serve     bool   `env:"GOAGE_SERVE"`
	Debug     bool   `env:"GOAGE_DEBUG"`
	VCardUser string `env:"GOAGE_VCARD_USER"`
	VCardPass string `env:"GOAGE_VCARD_PASSWORD"`

	// Flag-only options.
	ShowVersion bool   `env:"-"`
	Birth       string `env:"-"`
	VCard       string `env:"-"`
}

// OneShot reports whether the process should print a single result and exit.
func (s *Settings) OneShot() bool {
	return s.Birth != "" || s.VCard != ""
}

// Mode returns the run mode name used in startup logs.
func (s *Settings) Mode() string {
	switch {
	case s.OneShot():
		return ModeOneShot
	case s.Serve:
		return ModeServe
	default:
		return ModeDesktop
	}
}

// LoadSettings parses the environment, then the given command line arguments.
// Defaults come from the package constants; unset variables leave them as is.
func LoadSettings(name string, args []string) (*Settings, error) {
	s := &Settings{
		Port:     DefaultPort,
		BindAddr: LocalhostBindAddr,
		Language: DefaultLanguage,
	}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsEnv, err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.BoolVar(&s.ShowVersion, FlagVersion, false, FlagDescVersion)
	fs.BoolVar(&s.Debug, FlagDebug, s.Debug, FlagDescDebug)
	fs.BoolVar(&s.Serve, FlagServe, s.Serve, FlagDescServe)
	fs.StringVar(&s.Port, FlagPort, s.Port, FlagDescPort)
	fs.StringVar(&s.BindAddr, FlagBind, s.BindAddr, FlagDescBind)
	fs.StringVar(&s.Language, FlagLang, s.Language, FlagDescLang)
	fs.StringVar(&s.Birth, FlagBirth, "", FlagDescBirth)
	fs.StringVar(&s.VCard, FlagVCard, "", FlagDescVCard)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsFlags, err)
	}
	return s, nil
}
