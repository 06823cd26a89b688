package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attrition-go/internal/config"
	"attrition-go/internal/database"
	"attrition-go/internal/metrics"
	"attrition-go/internal/models"
	"attrition-go/internal/narrative"
	"attrition-go/internal/router"
	"attrition-go/internal/scoring"
	"attrition-go/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(projectRoot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*projectRoot)
		},
	}
}

func runServe(projectRoot string) error {
	log, err := bootstrap(projectRoot)
	if err != nil {
		return err
	}
	defer log.Sync()

	database.Init(log)

	form, err := models.LoadSurveyForm(config.Conf.Survey.FormPath)
	if err != nil {
		log.Fatal("Failed to load survey form", zap.Error(err))
	}

	mode, err := scoring.ParseMode(config.Conf.Scoring.Mode)
	if err != nil {
		return err
	}
	scorer := scoring.NewScorer(mode).WithWorkers(config.Conf.Scoring.Workers)
	log.Info("Scoring configured", zap.String("mode", string(mode)))

	var provider narrative.Provider
	if p, err := narrative.NewOpenAI(config.Conf.AI); err != nil {
		log.Warn("Narrative service not configured; survey submissions will fail", zap.Error(err))
	} else {
		provider = p
	}

	rec, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	surveys := services.NewSurveyService(log, form, scorer, provider, config.Conf.AI, rec, services.NewAlertService(log))
	insights, err := services.NewInsightsService(log, scorer, provider, config.Conf.AI, config.Conf.Insights.CacheSize, rec)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services.NewScheduler(log, services.InsightsRefresher(insights), config.Conf.Insights.RefreshInterval).Start(ctx)

	r := router.Setup(log, router.Services{
		Surveys:       surveys,
		Insights:      insights,
		Dashboard:     services.NewDashboardService(log, insights),
		Organizations: services.NewOrganizationSuggester(log, config.Conf.Survey.OrganizationSuggestURL),
		Metrics:       rec,
		Gatherer:      prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + config.Conf.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Server listening on http://localhost:" + config.Conf.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Failed to run server", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}
