package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/taskistry/collabo/apps/api/echo"
	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/project"
	"github.com/taskistry/collabo/core/session"
	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
	emailsvc "github.com/taskistry/collabo/services/email"
	logsvc "github.com/taskistry/collabo/services/logger"
	dummydb "github.com/taskistry/collabo/storage/database/dummy"
	dummykv "github.com/taskistry/collabo/storage/kv/dummy"
	rediskv "github.com/taskistry/collabo/storage/kv/redis"
)

// build is injected at compile time:
// go build -ldflags "-X main.build=$(git rev-parse HEAD)"
var build = "dev"

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig(build)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		rollbar := logsvc.NewRollbarLogger(std, conf)
		rollbar.Enable(true)
		logger = rollbar
	}

	db, err := dummydb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	var kv core.KVStore
	if conf.Debug || conf.TestMode {
		kv = dummykv.NewStore()
	} else {
		kv = rediskv.NewStore(conf)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}

	usrSvc := user.NewService(dummydb.NewUserRepository(db), mailSvc)
	taskRepo := dummydb.NewTaskRepository(db)
	projSvc := project.NewService(dummydb.NewProjectRepository(db), usrSvc, taskRepo)
	taskSvc := task.NewService(taskRepo, projSvc, usrSvc)
	sessions := session.NewStore(usrSvc, kv, logger, conf)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	task.InitValidators(validate, translator)

	user.InitTokenGen(conf.SecretKey, conf.PasswordResetTimeoutDelta)

	// restore any persisted session before serving traffic
	sessions.Init(context.Background())

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(&echoapi.Options{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Sessions:   sessions,
		UserSvc:    usrSvc,
		ProjectSvc: projSvc,
		TaskSvc:    taskSvc,
	})
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
