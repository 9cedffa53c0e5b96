// Package config loads runtime configuration for the LabKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables with the LAB_ prefix.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "database_path": "laboratorio.db",
//	  "log_level": "info",
//	  "show_default_credentials": true,
//	  "operation_timeout": "5s"
//	}
//
// Environment
//
//	LAB_DATABASE_PATH, LAB_LOG_LEVEL, LAB_SHOW_DEFAULT_CREDENTIALS,
//	LAB_OPERATION_TIMEOUT
package config
