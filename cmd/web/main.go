package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"GameStore/internal/config"
	"GameStore/internal/web"
	"GameStore/pkg/kit"
)

func main() {
	service := "web"
	cfg := config.LoadWeb()

	log := kit.NewLogger(service, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h, err := web.NewHandler(web.Deps{
		CatalogURL:   cfg.CatalogURL,
		FetchTimeout: cfg.FetchTimeout,
		Debounce:     cfg.Debounce,
	}, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})
	if err != nil {
		log.Fatal("init web handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
