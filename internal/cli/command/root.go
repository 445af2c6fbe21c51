package command

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/endpointauth-go/internal/cli/output"
	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/infra/buildinfo"
	"github.com/yndnr/endpointauth-go/internal/server/config"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "endpointauth",
		Usage:   "Endpoint identity tokens for RPC authentication",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ServeCommand(),
			TokenCommand(),
			WhoAmICommand(),
			ConfigCommand(),
			VersionCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to YAML configuration file",
			EnvVars: []string{"ENDPOINTAUTH_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   string(output.FormatTable),
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config string
	Output output.Format
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return &GlobalFlags{
		Config: c.String("config"),
		Output: format,
	}, nil
}

// loadConfig loads the layered configuration with flag overrides.
func loadConfig(c *cli.Context, overrides map[string]any) (*config.ServerConfig, error) {
	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// render writes data in the selected output format.
func render(c *cli.Context, data any) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	return output.NewFormatter(flags.Output).Format(writer(c), data)
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// Envelope text encodings accepted on the command line.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

func encodingFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "encoding",
		Aliases: []string{"e"},
		Usage:   "Envelope text encoding: hex, base64",
		Value:   EncodingHex,
	}
}

func encodeEnvelope(envelope []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case EncodingHex:
		return hex.EncodeToString(envelope), nil
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(envelope), nil
	default:
		return "", fmt.Errorf("unknown encoding %q (want hex or base64)", encoding)
	}
}

func decodeEnvelope(text, encoding string) ([]byte, error) {
	text = strings.TrimSpace(text)
	switch strings.ToLower(encoding) {
	case EncodingHex:
		return hex.DecodeString(text)
	case EncodingBase64:
		return base64.StdEncoding.DecodeString(text)
	default:
		return nil, fmt.Errorf("unknown encoding %q (want hex or base64)", encoding)
	}
}

func identityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "domain",
			Usage: "Endpoint identity domain (default: client.domain)",
		},
		&cli.StringFlag{
			Name:  "identifier",
			Usage: "Hex-encoded endpoint identifier (default: client.identifier)",
		},
	}
}

// identityOverrides maps identity flags onto client config keys.
func identityOverrides(c *cli.Context, overrides map[string]any) map[string]any {
	if overrides == nil {
		overrides = map[string]any{}
	}
	if c.IsSet("domain") {
		overrides["client.domain"] = c.String("domain")
	}
	if c.IsSet("identifier") {
		overrides["client.identifier"] = c.String("identifier")
	}
	return overrides
}

// clientIdentity builds the identity configured for this client.
func clientIdentity(cfg *config.ServerConfig) (domain.EndpointIdentity, error) {
	identifier, err := hex.DecodeString(cfg.Client.Identifier)
	if err != nil {
		return domain.EndpointIdentity{}, fmt.Errorf("client.identifier: %w", err)
	}
	if cfg.Client.Domain == "" && len(identifier) == 0 {
		return domain.EndpointIdentity{}, fmt.Errorf("no endpoint identity configured (set --domain and --identifier)")
	}
	return domain.NewEndpointIdentity(cfg.Client.Domain, identifier), nil
}

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			return render(c, buildinfo.Get())
		},
	}
}
