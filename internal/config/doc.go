// Package config provides configuration management for the switchboard CLI.
//
// This package handles loading and validating switchboard's own configuration
// file. It is distinct from the canonical store, which holds providers and MCP
// servers, and from the live files the platform adapters write.
//
// # Configuration File
//
// The default configuration file location is ~/.config/switchboard/config.yaml
// (or $SWITCHBOARD_CONFIG_DIR/config.yaml):
//
//	store_path: ~/.config/switchboard/config.json
//	backup:
//	  dir: ~/.config/switchboard/backups
//	  retention: 10
//	sync:
//	  live_policy: skip-if-absent   # or: always
//	  process_lock: false
//	apps:
//	  claude:
//	    config_dir: ~/work/.claude
//	skills:
//	  sync_method: auto             # auto, symlink or copy
//	language: en
//
// Every key can be overridden from the environment with the SWITCHBOARD_
// prefix and dots replaced by underscores, e.g. SWITCHBOARD_SYNC_LIVE_POLICY.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//
// Load validates the result; [Validate] can also be called directly and
// returns one [FieldError] per offending key.
package config
