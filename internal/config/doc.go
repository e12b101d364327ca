// Package config provides configuration management for the catalog client.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - CATALOG_* environment overrides
//   - Conversion to graphql.Config and logging.Config for other packages
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Talks to http://localhost:8000/graphql/ with a 30s timeout
//	// Caches up to 64 query results
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // The file exists but could not be parsed
//	}
//	settings.ApplyEnv()
//	if err := settings.Validate(); err != nil {
//	    // One line per invalid option
//	}
//
// # Saving Settings
//
//	settings.Endpoint = "https://catalog.example.com/graphql/"
//	err := settings.Save(config.DefaultPath())
package config
