package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/lefika/ripota/apps/api/echo"
	"github.com/lefika/ripota/core"
	"github.com/lefika/ripota/core/class"
	"github.com/lefika/ripota/core/course"
	"github.com/lefika/ripota/core/monitoring"
	"github.com/lefika/ripota/core/rating"
	"github.com/lefika/ripota/core/report"
	"github.com/lefika/ripota/core/user"
	emailsvc "github.com/lefika/ripota/services/email"
	logsvc "github.com/lefika/ripota/services/logger"
	"github.com/lefika/ripota/storage/cache"
	"github.com/lefika/ripota/storage/database"
	sqlxrepos "github.com/lefika/ripota/storage/database/sqlx"
)

// build is injected at compile time.
var build = "dev"

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig(build)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.IsProd() {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = core.NewStdLogger(std)
	}
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	reportRepo := sqlxrepos.NewReportRepository(db)
	ratingRepo := sqlxrepos.NewRatingRepository(db)

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc, conf)
	classSvc := class.NewService(sqlxrepos.NewClassRepository(db))
	courseSvc := course.NewService(sqlxrepos.NewCourseRepository(db))
	reportSvc := report.NewService(reportRepo)
	ratingSvc := rating.NewService(ratingRepo)
	monitoringSvc := monitoring.NewService(reportRepo, ratingRepo)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			UserSvc:       usrSvc,
			ClassSvc:      classSvc,
			CourseSvc:     courseSvc,
			ReportSvc:     reportSvc,
			RatingSvc:     ratingSvc,
			MonitoringSvc: monitoringSvc,
			Cache:         cache.New(conf),
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
