package config

// DefaultConfig returns a Config with sensible defaults.
//
// PageSize and DropdownSize differ on purpose: listings page at the service
// default of 10, while the live search dropdown shows at most 5 entries.
func DefaultConfig() *Config {
	return &Config{
		APIURL:       "http://localhost:8080/api",
		PageSize:     10,
		DropdownSize: 5,
		DebounceMS:   300,
		Browse: BrowseConfig{
			Port: 7763,
		},
	}
}
