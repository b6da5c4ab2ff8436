package main

import (
	"clinic-ledger-service/cmd/migration"
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/delivery/http/controllers"
	"clinic-ledger-service/internal/app/delivery/http/middlewares"
	"clinic-ledger-service/internal/app/delivery/http/routers"
	"clinic-ledger-service/internal/app/drivers/database"
	"clinic-ledger-service/internal/app/drivers/logger"
	"clinic-ledger-service/internal/app/drivers/messaging"
	"clinic-ledger-service/internal/app/drivers/storage"
	"clinic-ledger-service/internal/app/services/core/doctors"
	"clinic-ledger-service/internal/app/services/core/packages"
	"clinic-ledger-service/internal/app/services/core/patients"
	"clinic-ledger-service/internal/app/services/core/payments"
	"clinic-ledger-service/internal/app/services/core/reconciler"
	"clinic-ledger-service/internal/app/services/core/reports"
	"clinic-ledger-service/internal/app/services/core/roles"
	"clinic-ledger-service/internal/app/services/core/sessions"
	"clinic-ledger-service/internal/app/services/core/transactions"
	"clinic-ledger-service/internal/app/services/shared/activity"
	"clinic-ledger-service/internal/app/services/shared/audit"
	"clinic-ledger-service/internal/app/services/shared/eventqueue"
	"clinic-ledger-service/internal/app/services/shared/jwtmanager"
	"clinic-ledger-service/internal/app/services/shared/locker"
	"clinic-ledger-service/internal/app/services/shared/redis"
	objectStorage "clinic-ledger-service/internal/app/services/shared/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "develop"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	if internalConfig.App.Version == "" {
		internalConfig.App.Version = Version
	}

	logrusLogger := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	postgresDB := database.NewPostgresDB(driverConfig)
	if internalConfig.App.MigrateOnStart {
		if err := migration.Run(postgresDB, logrusLogger); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		PostgresDB:     postgresDB,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		zapLogger.Info("Server starting",
			zap.String("address", internalConfig.App.Port),
			zap.String("version", internalConfig.App.Version),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrusLogger.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Failed to release resources: %v", err)
	}

	logrusLogger.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Object storage
	if err := objectStorage.EnsureBucket(ctx, bootstrap.Minio, internalConfig.Minio.BucketName); err != nil {
		return err
	}
	minioStorage := objectStorage.NewMinioStorage(bootstrap.Minio, log)

	// Ledger events and audit trail
	publisher, err := eventqueue.NewService(bootstrap.RabbitMQ, internalConfig.RabbitMQ.LedgerEventsQueue, log)
	if err != nil {
		return err
	}
	bootstrap.PublisherClose = publisher.Close

	auditRepository := audit.NewAuditMongoRepository(
		bootstrap.MongoDB,
		internalConfig.MongoDB.DBName,
		internalConfig.MongoDB.AuditCollection,
	)
	activityRecorder := activity.NewActivityRecorder(auditRepository, publisher, internalConfig, log)

	// Postgres store
	store := transactions.NewStore(bootstrap.PostgresDB)
	txManager := transactions.NewPostgresTxManager(bootstrap.PostgresDB, internalConfig.Ledger.TxMaxAttempts, log)
	statusProjector := patients.NewStatusProjector(log)

	// Usecases
	patientUsecase := patients.NewPatientUsecase(store, log)
	doctorUsecase := doctors.NewDoctorUsecase(store, log)
	packageUsecase := packages.NewPackageUsecase(store, txManager, statusProjector, activityRecorder, log)
	sessionUsecase := sessions.NewSessionUsecase(store, txManager, statusProjector, activityRecorder, log)
	paymentUsecase := payments.NewPaymentUsecase(store, txManager, statusProjector, activityRecorder, log)
	reportUsecase := reports.NewReportUsecase(
		reports.NewReportPostgresRepository(bootstrap.PostgresDB),
		reports.NewExcelReportRenderer(),
		minioStorage,
		internalConfig,
		log,
	)

	// Reconciler
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	worker := reconciler.NewWorker(log, internalConfig, lockService, store, txManager, statusProjector)
	worker.Start()
	bootstrap.WorkerStop = worker.Stop

	// Middlewares
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig, log)
	if err != nil {
		return err
	}
	enforcer, err := roles.NewEnforcer()
	if err != nil {
		return err
	}
	middlewares := middlewares.NewMiddlewares(log, internalConfig, jwtManager, enforcer)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, &routers.Controllers{
		Patient: controllers.NewPatientController(log, internalConfig, patientUsecase, packageUsecase, sessionUsecase, paymentUsecase),
		Doctor:  controllers.NewDoctorController(log, doctorUsecase),
		Package: controllers.NewPackageController(log, packageUsecase),
		Session: controllers.NewSessionController(log, sessionUsecase),
		Payment: controllers.NewPaymentController(log, paymentUsecase),
		Report:  controllers.NewReportController(log, reportUsecase),
	})
	return nil
}
