package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmhub/config"
	"farmhub/database"
	"farmhub/entities"
	"farmhub/pkg/record"
	"farmhub/pkg/record/repositoryImp"
	"farmhub/pkg/recordapi"
	"farmhub/pkg/seed"
)

// app holds one record service per entity over the configured backend.
type app struct {
	cfg      config.AppConfig
	log      *zap.Logger
	db       *gorm.DB
	services map[string]*record.Service
	backends []record.Backend
}

func newApp(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, services: map[string]*record.Service{}}

	deps := repositoryImp.Deps{Latency: cfg.MockLatency, PageSize: cfg.Apper.PageSize}
	var dataset seed.Dataset
	var err error
	switch cfg.Backend {
	case repositoryImp.KindMock:
		if dataset, err = seed.Load(cfg.Seed); err != nil {
			return nil, err
		}
		deps.Dataset = dataset
	case repositoryImp.KindRemote:
		deps.Client = recordapi.New(cfg.Apper.Endpoint, cfg.Apper.ProjectID, cfg.Apper.PublicKey,
			recordapi.WithTimeout(cfg.Apper.Timeout))
	case repositoryImp.KindSQLite:
		if a.db, err = database.OpenSQLite(cfg.DBPath); err != nil {
			return nil, err
		}
		deps.DB = a.db
		if cfg.Seed != "" {
			if dataset, err = seed.Load(cfg.Seed); err != nil {
				return nil, err
			}
		}
	}
	factory, err := repositoryImp.NewFactory(cfg.Backend, deps)
	if err != nil {
		return nil, err
	}

	for _, s := range entities.All() {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		b := factory(s)
		if cfg.Backend == repositoryImp.KindSQLite && dataset != nil {
			n, err := seed.Apply(ctx, b, dataset[s.Table])
			if err != nil {
				return nil, err
			}
			if n > 0 {
				log.Info("seeded table", zap.String("table", s.Table), zap.Int("rows", n))
			}
		}
		a.backends = append(a.backends, b)
		a.services[s.Path] = record.NewService(s, b, log)
	}
	log.Info("backend ready",
		zap.String("backend", cfg.Backend),
		zap.Int("entities", len(a.services)),
		zap.String("replace", a.backends[0].Semantics().String()))
	return a, nil
}

func (a *app) service(name string) (*record.Service, error) {
	s, err := entities.ByPath(name)
	if err != nil {
		return nil, err
	}
	svc, ok := a.services[s.Path]
	if !ok {
		return nil, fmt.Errorf("entity %s is not wired", s.Path)
	}
	return svc, nil
}

func (a *app) close() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.log.Warn("close database", zap.Error(err))
		}
	}
}

// cliTimeout bounds one-shot CLI commands.
const cliTimeout = 30 * time.Second
