package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "loanflow-backend/internal/adapter/http"
	idemp "loanflow-backend/internal/adapter/middleware"
	"loanflow-backend/internal/adapter/notification"
	"loanflow-backend/internal/adapter/repository/mysql"
	"loanflow-backend/internal/config"
	"loanflow-backend/internal/infrastructure/cache"
	"loanflow-backend/internal/infrastructure/db"
	appUC "loanflow-backend/internal/usecase/application"
	contractUC "loanflow-backend/internal/usecase/contract"
	docUC "loanflow-backend/internal/usecase/document"
	loanUC "loanflow-backend/internal/usecase/loan"
	profileUC "loanflow-backend/internal/usecase/profile"
	userUC "loanflow-backend/internal/usecase/user"
)

const expirySweepInterval = time.Hour

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	users := mysql.NewUserRepository(gdb)
	docs := mysql.NewDocumentRepository(gdb)
	apps := mysql.NewApplicationRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	contracts := mysql.NewContractRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	dispatcher := notification.NewDispatcher(users, notification.LogSender{}, cfg.NotifyTimeout())

	userUc := userUC.NewUsecase(users)
	profileUc := profileUC.NewUsecase(users, docs)
	docUc := docUC.NewUsecase(docs, uow)
	appUc := appUC.NewUsecase(apps, uow)
	loanUc := loanUC.NewUsecase(loans, uow)
	contractUc := contractUC.NewUsecase(contracts, uow, dispatcher, contractUC.Config{
		ExpiryWindow:   cfg.ContractExpiryWindow(),
		DeclineRoles:   cfg.ContractDeclineRoles,
		SigningBaseURL: cfg.SigningBaseURL,
	})

	h := httpadp.NewHandler()
	userH := httpadp.NewUserHandler(userUc, profileUc)
	docH := httpadp.NewDocumentHandler(docUc)
	appH := httpadp.NewApplicationHandler(appUc)
	loanH := httpadp.NewLoanHandler(loanUc)
	contractH := httpadp.NewContractHandler(contractUc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	// Mutating routes replay via the idempotency store.
	m := e.Group("", idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	m.POST("/users", userH.Register)
	e.GET("/users/:user_id", userH.Get)
	m.PUT("/users/:user_id", userH.Update)
	m.POST("/users/:user_id/deactivate", userH.Deactivate)
	e.GET("/users/:user_id/score", userH.Score)

	m.POST("/documents", docH.Upload)
	e.GET("/documents/:document_id", docH.Get)
	m.POST("/documents/:document_id/verify", docH.Verify)
	e.GET("/users/:user_id/documents", docH.ListByUser)
	e.GET("/users/:user_id/documents/gate", docH.Gate)

	m.POST("/applications", appH.Submit)
	e.GET("/applications/:application_id", appH.Get)
	m.POST("/applications/:application_id/advance", appH.Advance)
	m.POST("/applications/:application_id/decide", appH.Decide)
	m.POST("/applications/:application_id/require-action", appH.RequireAction)
	m.POST("/applications/:application_id/notes", appH.AddNote)

	e.GET("/loans/:loan_id", loanH.Get)
	e.GET("/loans/schedule", loanH.Schedule)
	m.POST("/loans/:loan_id/payments", loanH.RecordPayment)
	m.POST("/loans/:loan_id/reject", loanH.Reject)

	m.POST("/loans/:loan_id/contract", contractH.Generate)
	e.GET("/contracts/:contract_id", contractH.Get)
	m.POST("/contracts/:contract_id/send", contractH.Send)
	m.POST("/contracts/:contract_id/view", contractH.View)
	m.POST("/contracts/:contract_id/sign", contractH.Sign)
	m.POST("/contracts/:contract_id/cancel", contractH.Cancel)
	m.POST("/contracts/:contract_id/resend", contractH.Resend)
	m.POST("/contracts/:contract_id/decline", contractH.Decline)
	m.POST("/contracts/:contract_id/expire", contractH.Expire)

	go expiryLoop(contractUc)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// expiryLoop sweeps sent/viewed contracts past their signing window.
func expiryLoop(uc *contractUC.Usecase) {
	t := time.NewTicker(expirySweepInterval)
	defer t.Stop()
	for now := range t.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		n, err := uc.ExpireDue(ctx, now.UTC())
		cancel()
		if err != nil {
			log.Printf("contract expiry sweep: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("contract expiry sweep: expired %d", n)
		}
	}
}
