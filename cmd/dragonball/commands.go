package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ambiyansyah-risyal/dragonball"
	"github.com/ambiyansyah-risyal/dragonball/dbtest"
	"github.com/ambiyansyah-risyal/dragonball/heroes"
)

// LoginCmd prints the session token.
type LoginCmd struct{}

func (c *LoginCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.login(ctx); err != nil {
		return err
	}
	token, _ := a.client.SessionStore().GetSession()
	fmt.Println(string(token))
	return nil
}

// HeroesCmd lists heroes.
type HeroesCmd struct {
	Name           string `short:"n" help:"Only heroes whose name contains this."`
	RequireResults bool   `help:"Fail when no hero matches."`
}

func (c *HeroesCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.login(ctx); err != nil {
		return err
	}

	req := heroes.GetHeroesRequest(c.Name)
	if c.RequireResults {
		req.Decode = dragonball.NonEmpty(dragonball.DecodeWith[[]heroes.Hero](a.client.Codec()))
	}

	list, err := dragonball.Perform(ctx, a.client, req)
	if err != nil {
		return fmt.Errorf("listing heroes: %w", err)
	}
	a.log.Debug("heroes loaded", zap.Int("count", len(list)))

	for _, h := range list {
		printHero(os.Stdout, h, false)
	}
	return nil
}

// HeroCmd shows heroes by exact name. Lookups run concurrently.
type HeroCmd struct {
	Names []string `arg:"" name:"name" help:"Hero names, matched ignoring case."`
}

func (c *HeroCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.login(ctx); err != nil {
		return err
	}

	detail := heroes.NewGetHeroDetail(a.client)
	found := make([]*heroes.Hero, len(c.Names))

	eg, gctx := errgroup.WithContext(ctx)
	for i, name := range c.Names {
		eg.Go(func() error {
			hero, err := detail.Execute(gctx, name)
			if err != nil {
				return fmt.Errorf("looking up %q: %w", name, err)
			}
			if hero == nil {
				return fmt.Errorf("no hero named %q", name)
			}
			found[i] = hero
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, hero := range found {
		printHero(os.Stdout, *hero, true)
	}
	return nil
}

// FakeServerCmd serves the fake API until interrupted.
type FakeServerCmd struct {
	Addr string `default:"127.0.0.1:8443" help:"Listen address."`
}

func (c *FakeServerCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.resolve()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var opts []dbtest.Option
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts, dbtest.WithUser(cfg.Username, cfg.Password))
	}

	srv, err := dbtest.NewServerAt(c.Addr, opts...)
	if err != nil {
		return fmt.Errorf("starting fake server: %w", err)
	}
	defer srv.Close()

	log.Info("fake server listening",
		zap.String("url", srv.URL),
		zap.String("default_user", dbtest.DefaultUsername),
	)
	<-ctx.Done()
	log.Info("fake server stopping")
	return nil
}

var (
	nameColor     = color.New(color.FgYellow, color.Bold)
	favoriteColor = color.New(color.FgRed)
	dimColor      = color.New(color.Faint)
)

func printHero(w io.Writer, h heroes.Hero, detailed bool) {
	nameColor.Fprint(w, h.Name)
	if h.Favorite {
		favoriteColor.Fprint(w, " ♥")
	}
	fmt.Fprintln(w)
	if !detailed {
		return
	}
	dimColor.Fprintf(w, "  id:    %s\n", h.ID)
	dimColor.Fprintf(w, "  photo: %s\n", h.Photo)
	fmt.Fprintf(w, "  %s\n", h.Description)
}
