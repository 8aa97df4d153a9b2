package config

// Config is the top-level lovelace configuration, corresponding to
// .lovelace.yml.
type Config struct {
	// APIURL is the base URL of the marketplace REST API.
	APIURL string `yaml:"api_url" koanf:"api_url"`
	// SessionFile overrides where the session token is persisted. Empty
	// means ~/.lovelace/session.json.
	SessionFile string `yaml:"session_file" koanf:"session_file"`
	// HistoryDB overrides where the activity history database lives. Empty
	// means ~/.lovelace/history.db.
	HistoryDB string `yaml:"history_db" koanf:"history_db"`
	// PageSize is the default page size for catalog and wishlist listings.
	PageSize int `yaml:"page_size" koanf:"page_size"`
	// DropdownSize caps the live search dropdown.
	DropdownSize int `yaml:"dropdown_size" koanf:"dropdown_size"`
	// DebounceMS is the live search debounce window in milliseconds.
	DebounceMS int          `yaml:"debounce_ms" koanf:"debounce_ms"`
	Browse     BrowseConfig `yaml:"browse" koanf:"browse"`
}

// BrowseConfig holds settings for the local browse dashboard.
type BrowseConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
