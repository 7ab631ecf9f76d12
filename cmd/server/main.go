package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"farmhub/config"
	"farmhub/pkg/logging"
	"farmhub/pkg/middleware"
	"farmhub/router"

	dashCtrlImp "farmhub/pkg/dashboard/controllerImp"
	dashSvcImp "farmhub/pkg/dashboard/serviceImp"
	healthCtrlImp "farmhub/pkg/health/controllerImp"
	recordCtrlImp "farmhub/pkg/record/controllerImp"
	weatherCtrlImp "farmhub/pkg/weather/controllerImp"
	weatherSvcImp "farmhub/pkg/weather/serviceImp"
)

var (
	configPath string
	backend    string
	format     string

	cfg    config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "farmhub",
	Short:         "Farm management record service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if backend != "" {
			cfg.Backend = backend
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel, cfg.LogJSON)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	RunE:  runServe,
}

var listCmd = &cobra.Command{
	Use:   "list [entity]",
	Short: "Print every record of an entity (farmers, farms, crops, tasks, subtasks, transactions, weather)",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "override FARMHUB_BACKEND: remote, mock or sqlite")
	listCmd.Flags().StringVarP(&format, "output", "o", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(serveCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("config", zap.Any("cfg", cfg.Redacted()))
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	e := newServer(a)
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		errc <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return e.Shutdown(shutdown)
}

func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(logger))

	h := router.Handlers{}
	for _, svc := range a.services {
		h.Records = append(h.Records, recordCtrlImp.New(svc))
	}
	weather := weatherSvcImp.New(a.services["weather"])
	wCtrl := weatherCtrlImp.New(weather)
	dash := dashSvcImp.New(a.services["crops"], a.services["tasks"], a.services["transactions"], weather)

	h.Subtasks = recordCtrlImp.ChildrenOf(a.services["subtasks"], "taskId")
	h.WeatherCurrent = wCtrl.Current
	h.WeatherForecast = wCtrl.Forecast
	h.Dashboard = dashCtrlImp.New(dash).Summary
	h.Health = healthCtrlImp.NewHealthCtrl(cfg.Backend, a.backends...).Health

	return router.New(e, cfg.APIKey, h)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cliTimeout)
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	svc, err := a.service(args[0])
	if err != nil {
		return err
	}
	recs, err := svc.GetAll(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		plain := make([]map[string]any, len(recs))
		for i, r := range recs {
			plain[i] = r
		}
		return enc.Encode(plain)
	}
	return fmt.Errorf("unknown output format %q", format)
}
