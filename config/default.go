package config

// New returns the configuration defaults; flags and the config file are
// layered on top by the CLI.
func New() *Config {
	return &Config{
		Path: "./collections",
		Port: 6790,
		Test: Test{
			Delay: 0,
			RPS:   0,
		},
	}
}
