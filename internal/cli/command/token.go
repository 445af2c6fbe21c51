package command

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/endpointauth-go/internal/cli/output"
	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/core/keyring"
	"github.com/yndnr/endpointauth-go/internal/core/service"
	"github.com/yndnr/endpointauth-go/internal/server/config"
)

// TokenCommand returns the token subcommand group.
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Generate and examine authentication tokens",
		Subcommands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Generate a token envelope for an endpoint identity",
				Flags:  append(identityFlags(), encodingFlag()),
				Action: tokenGenerate,
			},
			{
				Name:      "inspect",
				Usage:     "Decode a token envelope without validating it",
				ArgsUsage: "ENVELOPE",
				Flags:     []cli.Flag{encodingFlag()},
				Action:    tokenInspect,
			},
			{
				Name:      "validate",
				Usage:     "Validate a token envelope",
				ArgsUsage: "ENVELOPE",
				Flags: []cli.Flag{
					encodingFlag(),
					&cli.StringFlag{
						Name:  "policy",
						Usage: "Token policy: none, optional, required (default: auth.policy)",
					},
					&cli.DurationFlag{
						Name:  "tolerance",
						Usage: "Accepted clock skew (default: auth.tolerance)",
					},
				},
				Action: tokenValidate,
			},
		},
	}
}

// GeneratedToken is the structured output of token generate.
type GeneratedToken struct {
	Envelope string `json:"envelope" yaml:"envelope"`
	Encoding string `json:"encoding" yaml:"encoding"`
	Size     int    `json:"size" yaml:"size"`
	Identity string `json:"identity" yaml:"identity"`
}

// TokenInfo describes a decoded envelope.
type TokenInfo struct {
	Version      int32  `json:"version" yaml:"version"`
	Domain       string `json:"domain" yaml:"domain"`
	Identifier   string `json:"identifier" yaml:"identifier"`
	SecretLength int    `json:"secret_length" yaml:"secret_length"`
	EnvelopeSize int    `json:"envelope_size" yaml:"envelope_size"`
}

// ValidationReport is the structured output of token validate.
type ValidationReport struct {
	Policy   string     `json:"policy" yaml:"policy"`
	Result   string     `json:"result" yaml:"result"`
	Identity string     `json:"identity,omitempty" yaml:"identity,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty" yaml:"issued_at,omitempty"`
	Cause    string     `json:"cause,omitempty" yaml:"cause,omitempty"`
}

// newAuthService builds an AuthService from the auth section.
func newAuthService(cfg *config.ServerConfig, keys *keyring.Keyring, rec service.Recorder) (*service.AuthService, error) {
	policy, err := domain.ParseTokenPolicy(cfg.Auth.Policy)
	if err != nil {
		return nil, err
	}
	return service.NewAuthService(&service.AuthServiceConfig{
		Policy:    policy,
		Tolerance: cfg.Auth.Tolerance,
		Keyring:   keys,
		Recorder:  rec,
	})
}

func tokenGenerate(c *cli.Context) error {
	cfg, err := loadConfig(c, identityOverrides(c, nil))
	if err != nil {
		return err
	}
	identity, err := clientIdentity(cfg)
	if err != nil {
		return err
	}

	svc, err := newAuthService(cfg, nil, nil)
	if err != nil {
		return err
	}
	envelope, err := svc.GenerateToken(identity)
	if err != nil {
		return err
	}

	text, err := encodeEnvelope(envelope, c.String("encoding"))
	if err != nil {
		return err
	}

	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	if flags.Output == output.FormatTable {
		_, err = fmt.Fprintln(writer(c), text)
		return err
	}
	return render(c, GeneratedToken{
		Envelope: text,
		Encoding: c.String("encoding"),
		Size:     len(envelope),
		Identity: identity.String(),
	})
}

func envelopeArg(c *cli.Context) ([]byte, error) {
	if c.NArg() != 1 {
		return nil, fmt.Errorf("exactly one ENVELOPE argument required")
	}
	envelope, err := decodeEnvelope(c.Args().First(), c.String("encoding"))
	if err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return envelope, nil
}

func tokenInspect(c *cli.Context) error {
	envelope, err := envelopeArg(c)
	if err != nil {
		return err
	}

	token, err := service.DecodeEnvelope(envelope)
	if err != nil {
		return err
	}

	return render(c, TokenInfo{
		Version:      token.Version,
		Domain:       token.EndpointIdentity.Domain,
		Identifier:   hex.EncodeToString(token.EndpointIdentity.Identifier),
		SecretLength: len(token.EncryptedSecret),
		EnvelopeSize: len(envelope),
	})
}

func tokenValidate(c *cli.Context) error {
	envelope, err := envelopeArg(c)
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	if c.IsSet("policy") {
		overrides["auth.policy"] = c.String("policy")
	}
	if c.IsSet("tolerance") {
		overrides["auth.tolerance"] = c.Duration("tolerance").String()
	}
	cfg, err := loadConfig(c, overrides)
	if err != nil {
		return err
	}

	svc, err := newAuthService(cfg, nil, nil)
	if err != nil {
		return err
	}

	outcome, err := svc.ValidateToken(envelope)
	if err != nil {
		return err
	}

	report := ValidationReport{
		Policy: svc.Policy().String(),
		Result: outcome.Result.String(),
	}
	if outcome.Identity != nil {
		report.Identity = outcome.Identity.String()
	}
	if outcome.Result == domain.Valid {
		issued := outcome.IssuedAt.UTC()
		report.IssuedAt = &issued
	}
	if outcome.Cause != nil {
		report.Cause = outcome.Cause.Error()
	}

	if err := render(c, report); err != nil {
		return err
	}
	if outcome.Result == domain.Invalid {
		return fmt.Errorf("token is %s", outcome.Result)
	}
	return nil
}
