package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     *zap.Logger
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Handler         http.Handler
	Logger          *zap.Logger
}

func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger.Named("http")
	errorLog, err := zap.NewStdLogAt(logger, zap.WarnLevel)
	if err != nil {
		errorLog = zap.NewStdLog(logger)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           cfg.Handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ErrorLog:          errorLog,
		},
		logger: logger,
	}
}

// Listen binds the port without serving. Start calls it when needed.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr is the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.logger.Info("starting image api", zap.String("addr", s.Addr()))
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight uploads until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	started := time.Now()
	fields := []zap.Field{zap.String("addr", s.Addr())}
	if deadline, ok := ctx.Deadline(); ok {
		fields = append(fields, zap.Duration("grace", time.Until(deadline)))
	}
	s.logger.Info("shutting down image api", fields...)

	err := s.httpServer.Shutdown(ctx)
	s.logger.Info("image api drained", zap.Duration("took", time.Since(started)), zap.Error(err))
	return err
}
