package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to lovelace! Let's configure the client.")
	fmt.Println()

	defaults := DefaultConfig()

	urlPrompt := promptui.Prompt{
		Label:   "Marketplace API base URL",
		Default: defaults.APIURL,
	}
	apiURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("API URL: %w", err)
	}

	pagePrompt := promptui.Prompt{
		Label:   "Results per page for listings",
		Default: strconv.Itoa(defaults.PageSize),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return fmt.Errorf("enter a positive number")
			}
			return nil
		},
	}
	pageStr, err := pagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("page size: %w", err)
	}
	pageSize, _ := strconv.Atoi(pageStr)

	portPrompt := promptui.Prompt{
		Label:   "Local browse dashboard port",
		Default: strconv.Itoa(defaults.Browse.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dashboard port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg := DefaultConfig()
	cfg.APIURL = apiURL
	cfg.PageSize = pageSize
	cfg.Browse.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration written to %s\n", path)
	return cfg, nil
}
