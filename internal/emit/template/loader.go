package template

import (
	"os"
	"path/filepath"

	"github.com/orris-inc/subconv/internal/shared/logger"
)

// Loader preloads every dialect's base template from one directory at
// startup and holds them for every conversion to read, rather than each
// request re-reading a file from disk (spec §9's "load config once, hand
// an immutable snapshot to each emission" principle, applied to base
// templates instead of process configuration). Template files are named
// custom.clash.yaml and custom.surge.conf; a missing directory or a
// missing individual file both fall back to "no base template" rather
// than failing startup, since a base template is optional input (spec
// §4.E).
type Loader struct {
	clash        map[string]any
	surgeGeneral []string
	surgeDNS     []string
}

// NewLoader returns an empty Loader; call Load to populate it.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads custom.clash.yaml and custom.surge.conf out of dir. An empty
// dir argument returns at once without logging; a missing dir or a missing
// individual file is logged and otherwise ignored; only a malformed file
// that exists is a fatal error.
func (l *Loader) Load(dir string, log logger.Interface) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Warn("base template directory not found, emitting without a base template", "path", dir)
		return nil
	}

	clashPath := filepath.Join(dir, "custom.clash.yaml")
	if fileExists(clashPath) {
		doc, err := LoadClashBase(clashPath)
		if err != nil {
			return err
		}
		l.clash = doc
		log.Info("loaded clash base template", "path", clashPath)
	} else {
		log.Debug("no clash base template found", "path", clashPath)
	}

	surgePath := filepath.Join(dir, "custom.surge.conf")
	if fileExists(surgePath) {
		general, dns, err := LoadSurgeBase(surgePath)
		if err != nil {
			return err
		}
		l.surgeGeneral, l.surgeDNS = general, dns
		log.Info("loaded surge base template", "path", surgePath)
	} else {
		log.Debug("no surge base template found", "path", surgePath)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ClashBase returns the preloaded Clash base template's top-level keys,
// or nil if none was loaded.
func (l *Loader) ClashBase() map[string]any {
	return l.clash
}

// SurgeBase returns the preloaded Surge base template's [General]/[DNS]
// lines, or (nil, nil) if none was loaded.
func (l *Loader) SurgeBase() (general, dns []string) {
	return l.surgeGeneral, l.surgeDNS
}
