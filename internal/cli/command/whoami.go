package command

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/urfave/cli/v2"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/yndnr/endpointauth-go/internal/infra/buildinfo"
	"github.com/yndnr/endpointauth-go/internal/server/httpserver"
	"github.com/yndnr/endpointauth-go/internal/server/httpserver/handler"
	"github.com/yndnr/endpointauth-go/internal/server/rpcauth"
)

// WhoAmICommand returns the whoami command.
func WhoAmICommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Call the demo server and print the identity it authenticated",
		Flags: append(identityFlags(),
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Server URL (default: client.server_url)",
			},
			&cli.BoolFlag{
				Name:  "anonymous",
				Usage: "Call without a token",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: 10 * time.Second,
			},
		),
		Action: whoami,
	}
}

// WhoAmIResult is the output of whoami.
type WhoAmIResult struct {
	Identity  string `json:"identity" yaml:"identity"`
	IssuedAt  string `json:"issued_at,omitempty" yaml:"issued_at,omitempty"`
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
}

func whoami(c *cli.Context) error {
	overrides := identityOverrides(c, nil)
	if c.IsSet("server") {
		overrides["client.server_url"] = c.String("server")
	}
	cfg, err := loadConfig(c, overrides)
	if err != nil {
		return err
	}

	var opts []connect.ClientOption
	if !c.Bool("anonymous") {
		identity, err := clientIdentity(cfg)
		if err != nil {
			return err
		}
		svc, err := newAuthService(cfg, nil, nil)
		if err != nil {
			return err
		}
		opts = append(opts, connect.WithInterceptors(rpcauth.NewClientInterceptor(svc, identity)))
	}

	url := strings.TrimRight(cfg.Client.ServerURL, "/") + httpserver.WhoAmIProcedure
	client := connect.NewClient[emptypb.Empty, wrapperspb.StringValue](http.DefaultClient, url, opts...)

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	req := connect.NewRequest(&emptypb.Empty{})
	req.Header().Set("User-Agent", buildinfo.UserAgent())

	resp, err := client.CallUnary(ctx, req)
	if err != nil {
		return fmt.Errorf("whoami %s: %w", cfg.Client.ServerURL, err)
	}

	return render(c, WhoAmIResult{
		Identity:  resp.Msg.GetValue(),
		IssuedAt:  resp.Header().Get(handler.HeaderIssuedAt),
		RequestID: resp.Header().Get(httpserver.HeaderRequestID),
	})
}
