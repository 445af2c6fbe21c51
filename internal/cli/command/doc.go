// Package command provides the endpointauth command-line interface.
//
// It uses urfave/cli/v2 for command parsing. Commands:
//
//	serve                        run the demo server
//	token generate|inspect|validate
//	whoami                       call the demo server with a token
//	config show|validate
//	version
//
// Every command reads the same layered configuration as the server:
// defaults, the --config YAML file, ENDPOINTAUTH_* environment variables
// and finally command flags.
package command
