// Package profile holds the runtime configuration of the server.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where trogiang stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string

	// LLM configuration. The assistant talks to any OpenAI-compatible
	// endpoint; Gemini's compatibility endpoint is the default.
	LLMAPIKey  string // TROGIANG_LLM_API_KEY
	LLMBaseURL string // TROGIANG_LLM_BASE_URL
	LLMModel   string // TROGIANG_LLM_MODEL
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if an LLM endpoint is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.LLMAPIKey != ""
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}
	// Trim trailing "/" in case the user supplies
	dataDir = strings.TrimRight(dataDir, "/")

	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes and validates the profile.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}
	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/trogiang"
	}
	if p.Data == "" {
		p.Data = "."
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	switch p.Driver {
	case "sqlite":
		if p.DSN == "" {
			dbFile := fmt.Sprintf("trogiang_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("dsn is required for postgres driver")
		}
	default:
		return errors.Errorf("unsupported db driver: %s", p.Driver)
	}

	return nil
}
