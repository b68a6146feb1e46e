// Package config loads and validates Filmreel Core configuration.
//
// Configuration comes from a YAML file, with FILMREEL_-prefixed environment
// variables taking precedence over file values. Defaults are applied before
// validation, and loading happens once at startup:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The JWT signing secret is the one value that should never live in the
// file; set it via FILMREEL_JWT_SECRET instead.
package config
