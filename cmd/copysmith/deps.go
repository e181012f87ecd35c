package main

import (
	"context"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/config"
	"github.com/sant0-9/copysmith/internal/generator"
	"github.com/sant0-9/copysmith/internal/schema"
	"github.com/sant0-9/copysmith/internal/store"
	"github.com/sant0-9/copysmith/internal/tui"
)

// deps wires the stores and, when credentials resolve, the generator. A
// startup failure is kept in StartupError rather than returned, so the UI can
// still browse the catalog.
func (o *options) deps(ctx context.Context) tui.Deps {
	if ctx == nil {
		ctx = context.Background()
	}
	d := tui.Deps{
		Config:   o.settings,
		Catalog:  catalog.New(o.settings.DataDir),
		Configs:  o.configStore(),
		Examples: store.NewExampleStore(o.settings.DataDir, o.log),
		Log:      o.log,
	}

	gen, creds, err := o.generator(ctx)
	d.Credentials = creds
	if err != nil {
		o.log.WithError(err).Error("generation unavailable", nil)
		d.StartupError = err
		return d
	}
	d.Generator = gen
	return d
}

// generator resolves credentials for both tracks and builds the pipeline. A
// preset router skips credential loading.
func (o *options) generator(ctx context.Context) (*generator.Generator, *config.Credentials, error) {
	var creds *config.Credentials
	router := o.router
	if router == nil {
		var err error
		creds, err = config.LoadCredentials(o.settings.DataDir, o.settings.RequiredKeys())
		if err != nil {
			return nil, nil, err
		}
		router, err = generator.NewRouterFromConfig(ctx, o.settings, creds, o.log)
		if err != nil {
			return nil, creds, err
		}
	}

	gen := generator.New(router, o.log)
	gen.SetAlignMode(schema.AlignMode(o.settings.AlignMode))
	return gen, creds, nil
}

func (o *options) configStore() *store.ConfigStore {
	s := store.NewConfigStore(o.settings.DataDir)
	s.SetAlignMode(schema.AlignMode(o.settings.AlignMode))
	return s
}
