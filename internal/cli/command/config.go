package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/endpointauth-go/internal/cli/output"
	"github.com/yndnr/endpointauth-go/internal/server/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (YAML unless --output is set)",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Load and verify the configuration",
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg, err := loadConfig(c, nil)
	if err != nil {
		return err
	}

	sanitized := config.Sanitize(cfg)
	if !c.IsSet("output") {
		return output.NewFormatter(output.FormatYAML).Format(writer(c), sanitized)
	}
	return render(c, sanitized)
}

func configValidate(c *cli.Context) error {
	if _, err := loadConfig(c, nil); err != nil {
		return err
	}

	source := c.String("config")
	if source == "" {
		source = "defaults and environment"
	}
	_, err := fmt.Fprintf(writer(c), "configuration is valid: %s\n", source)
	return err
}
