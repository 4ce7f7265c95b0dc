package sample

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// DefaultOutputName is the file name of the pruned tree inside the output
// directory.
const DefaultOutputName = "extant_species_tree.nwk"

// Config holds everything Run needs for one sampling run.
type Config struct {
	TreePath   string // Newick file to read
	NExtant    int    // number of leaves to keep
	OutputDir  string // created if missing
	OutputName string // defaults to DefaultOutputName
}

// NewConfig validates `cfg` and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TreePath == "" {
		return nil, errors.New("species tree path is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	if cfg.NExtant < 0 {
		return nil, errors.Newf("number of extant nodes must not be negative, got %d",
			cfg.NExtant)
	}
	if cfg.OutputName == "" {
		cfg.OutputName = DefaultOutputName
	}
	if strings.ContainsRune(cfg.OutputName, filepath.Separator) {
		return nil, errors.Newf("output name %q must not contain a path separator",
			cfg.OutputName)
	}
	return &cfg, nil
}

// OutputPath is where the pruned tree is written.
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputName)
}
