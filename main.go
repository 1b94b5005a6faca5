package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nagrik-nivedan/classifier"
	"nagrik-nivedan/complaint"
	"nagrik-nivedan/config"
	"nagrik-nivedan/database"
	"nagrik-nivedan/departments"
	"nagrik-nivedan/gemini"
	"nagrik-nivedan/geocoder"
	"nagrik-nivedan/handlers"
	"nagrik-nivedan/metrics"
	"nagrik-nivedan/rabbitmq"
	"nagrik-nivedan/service"
	"nagrik-nivedan/storagefs"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("loaded configuration from .env")
	}

	cfg := config.Load()
	metrics.Register()

	// The classifier artifact is required; serving traffic without it
	// is pointless.
	model, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load classifier artifact")
	}
	log.WithField("labels", len(model.Labels())).Info("classifier loaded")

	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.CreateTables(ctx); err != nil {
		log.WithError(err).Fatal("failed to create tables")
	}
	if err := db.SeedDepartments(ctx, departments.Seed()); err != nil {
		log.WithError(err).Fatal("failed to seed departments")
	}

	images, err := storagefs.NewStore(cfg.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize image storage")
	}

	resolver := geocoder.NewResolver(geocoder.NewClientWithBaseURL(cfg.NominatimBaseURL))

	// Letter generation falls back from the remote model to the local
	// template; the template never fails.
	var strategies []complaint.Generator
	if cfg.GeminiAPIKey != "" {
		strategies = append(strategies,
			complaint.NewRemoteGenerator(gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)))
		log.WithField("model", cfg.GeminiModel).Info("remote complaint generation enabled")
	}
	strategies = append(strategies, complaint.NewTemplateGenerator())
	letters := complaint.NewChain(strategies...)

	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			// Events are best-effort; intake still works without them.
			log.WithError(err).Warn("failed to initialize RabbitMQ publisher")
		} else {
			publisher = p
			defer p.Close()
		}
	}

	svc := service.NewService(db, model, resolver, letters, images, publisher)

	router := gin.Default()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.Register(router, handlers.NewHandlers(svc, images, cfg.DefaultRadiusKm))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
