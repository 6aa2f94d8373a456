// Package config loads the KitchenHelper client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/kitchenhelper/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// The KITCHEN_HOST environment variable overrides deployment_host in every
// case.
//
// # TOML Format
//
//	api_base_url        = ""                      # wins over deployment_host
//	deployment_host     = "app.kitchenhelper-ai.de"
//	auth_transport      = "bearer"                # or "cookie"
//	store_path          = "~/.local/share/kitchenhelper/session.db"
//	log_path            = "~/.local/share/kitchenhelper/kitchen.log"
//	log_level           = "info"
//	language            = "de"
//	session_timeout     = "15m"
//	session_warning     = "2m"
//	requests_per_second = 5
//	metrics_addr        = ""                      # e.g. "127.0.0.1:9465"
//
// All fields are optional. Tilde expansion is performed for paths.
//
// # Base URL
//
// Without api_base_url the API prefix is derived from the deployment host:
//
//   - kitchenhelper-ai.de and www.kitchenhelper-ai.de use https://api.kitchenhelper-ai.de/api
//   - other *.kitchenhelper-ai.de hosts use https://<host>/api
//   - localhost, 127.0.0.1 and anything else use http://127.0.0.1:8000/api
//
// Missing config files are NOT an error; the client works against a local
// backend without any configuration.
package config
