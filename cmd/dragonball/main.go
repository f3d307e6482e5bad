// Command dragonball logs in to the DragonBall API and lists heroes. It can
// also run a local fake of the API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ambiyansyah-risyal/dragonball"
)

// Globals are the flags shared by every command. Non-empty flags override the
// config file.
type Globals struct {
	Config      string           `help:"YAML config file." type:"path" default:"dragonball.yaml" env:"DRAGONBALL_CONFIG"`
	Host        string           `help:"API host, optionally with port." env:"DRAGONBALL_HOST"`
	User        string           `short:"u" help:"Account username." env:"DRAGONBALL_USER"`
	Password    string           `short:"p" help:"Account password." env:"DRAGONBALL_PASSWORD"`
	MetricsAddr string           `help:"Serve Prometheus metrics on this address."`
	Insecure    bool             `help:"Skip TLS certificate verification."`
	Debug       bool             `help:"Log every request."`
	Version     kong.VersionFlag `help:"Print version and exit."`
}

// CLI is the command tree.
type CLI struct {
	Globals

	Login      LoginCmd      `cmd:"" help:"Log in and print the session token."`
	Heroes     HeroesCmd     `cmd:"" help:"List heroes, optionally filtered by name."`
	Hero       HeroCmd       `cmd:"" help:"Show one hero by name."`
	FakeServer FakeServerCmd `cmd:"" name:"fake-server" help:"Run a local fake of the API."`
}

func main() {
	cli := &CLI{}
	cliCtx := kong.Parse(cli,
		kong.Name("dragonball"),
		kong.Description("DragonBall heroes client."),
		kong.UsageOnError(),
		kong.Vars{"version": dragonball.GetVersion()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliCtx.BindTo(ctx, (*context.Context)(nil))
	err := cliCtx.Run(&cli.Globals)
	cliCtx.FatalIfErrorf(err)
}
