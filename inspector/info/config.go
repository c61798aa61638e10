package info

type Config struct {
	LocalTypes        bool // surface local and anonymous classes found in executable bodies
	SinglePublicTypes bool // treat more than one public top level type as malformed
}

func DefaultConfig() *Config {
	return &Config{
		LocalTypes:        true,
		SinglePublicTypes: true,
	}
}
