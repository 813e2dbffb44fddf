package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Tomlord1122/portfolio-backend/internal/config"
	"github.com/Tomlord1122/portfolio-backend/internal/database"
	"github.com/Tomlord1122/portfolio-backend/internal/rpc"
	"github.com/Tomlord1122/portfolio-backend/internal/service"
)

type Server struct {
	cfg       config.Config
	log       *zap.Logger
	db        database.Service // nil when STORE=memory
	guestbook *service.GuestbookService
	todos     *service.TodoService
	rpc       *rpc.Router
}

// NewServer wires the HTTP routes and the RPC procedures over the same
// services and returns a ready to start *http.Server.
func NewServer(cfg config.Config, log *zap.Logger, db database.Service, guestbook *service.GuestbookService, todos *service.TodoService) *http.Server {
	procedures := rpc.NewRouter(log)
	rpc.RegisterCRUD(procedures, "guestbook", guestbook)
	rpc.RegisterCRUD(procedures, "todos", todos)

	appServer := &Server{
		cfg:       cfg,
		log:       log,
		db:        db,
		guestbook: guestbook,
		todos:     todos,
		rpc:       procedures,
	}

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     zap.NewStdLog(log.Named("http")),
	}
}
