package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	ConfigPath   string
	Debug        bool
	Workers      int
	SingleThread bool
	Seed         int64

	Kind   string
	Width  int
	Height int
	Size   float32
}

// Register binds the flags to fs, usually a cobra command's persistent flag set.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Workers, "workers", 0, "Worker count for parallel loops (0 keeps the config value)")
	fs.BoolVar(&f.SingleThread, "single-thread", false, "Run parallel loops on the calling goroutine")
	fs.Int64Var(&f.Seed, "seed", 0, "Random seed for edit sessions (0 keeps the config value)")
	fs.StringVar(&f.Kind, "kind", "", "Generator kind: grid or box")
	fs.IntVar(&f.Width, "width", 0, "Grid cells along X")
	fs.IntVar(&f.Height, "height", 0, "Grid cells along Z")
	fs.Float32Var(&f.Size, "size", 0, "Grid cell size or box edge length")
}

// Apply applies flag overrides to the config.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Workers > 0 {
		cfg.Parallel.Workers = f.Workers
	}
	if f.SingleThread {
		cfg.Parallel.ForceSingleThread = true
	}
	if f.Seed != 0 {
		cfg.Edits.Seed = f.Seed
	}
	if f.Kind != "" {
		cfg.Generator.Kind = f.Kind
	}
	if f.Width > 0 {
		cfg.Generator.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Generator.Height = f.Height
	}
	if f.Size > 0 {
		cfg.Generator.Size = f.Size
	}
}
