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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Cameron-Kurotori/caseclosed/agent"
	"github.com/Cameron-Kurotori/caseclosed/config"
	"github.com/Cameron-Kurotori/caseclosed/grid"
	"github.com/Cameron-Kurotori/caseclosed/logging"
	"github.com/Cameron-Kurotori/caseclosed/sdk"
)

// HTTP Handlers

type server struct {
	agent  *agent.Agent
	logger log.Logger
}

func newRouter(a *agent.Agent, logger log.Logger) http.Handler {
	s := &server{agent: a, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.HandleIndex)
	r.Post("/start", s.HandleStart)
	r.Post("/move", s.HandleMove)
	r.Post("/end", s.HandleEnd)
	return r
}

func requestLogger(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			_ = level.Debug(logger).Log(
				"msg", "request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", middleware.GetReqID(r.Context()),
				"source_ip", r.RemoteAddr,
				"took_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func (s *server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	response := info()

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to encode info response", "err", err)
	}
}

func (s *server) HandleStart(w http.ResponseWriter, r *http.Request) {
	snap := sdk.Snapshot{}
	err := json.NewDecoder(r.Body).Decode(&snap)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to decode start json", "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	start(s.logger, snap)
	w.WriteHeader(http.StatusOK)
}

func (s *server) HandleMove(w http.ResponseWriter, r *http.Request) {
	snap := sdk.Snapshot{}
	err := json.NewDecoder(r.Body).Decode(&snap)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to decode move json", "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	response, err := move(s.agent, snap)
	if err != nil {
		_ = level.Error(snap.Logger(s.logger)).Log("msg", "cannot move", "err", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to encode move response", "err", err)
	}
}

func (s *server) HandleEnd(w http.ResponseWriter, r *http.Request) {
	snap := sdk.Snapshot{}
	err := json.NewDecoder(r.Body).Decode(&snap)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to decode end json", "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	end(s.logger, snap)

	// Nothing to respond with here
	w.WriteHeader(http.StatusOK)
}

// statusFor maps a snapshot problem to 400 and anything else to 500.
func statusFor(err error) int {
	var malformed *grid.MalformedBoardError
	switch {
	case errors.As(err, &malformed),
		errors.Is(err, agent.ErrMissingPosition),
		errors.Is(err, agent.ErrPositionOutOfBounds),
		errors.Is(err, agent.ErrInvalidDirection):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Main Entrypoint

func main() {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		_ = level.Error(logging.GlobalLogger()).Log("msg", "invalid configuration", "err", err)
		os.Exit(1)
	}
	logging.SetLevel(cfg.LogLevel)
	logger := logging.GlobalLogger()

	a, err := agent.New(cfg.Agent, logger)
	if err != nil {
		_ = level.Error(logger).Log("msg", "failed to build agent", "err", err)
		os.Exit(1)
	}

	if cfg.Mode == config.ModeStdio {
		err = runStdio(os.Stdin, os.Stdout, a, logger)
	} else {
		err = serve(cfg.Port, newRouter(a, logger), logger)
	}
	if err != nil {
		_ = level.Error(logger).Log("msg", "agent stopped", "err", err)
		os.Exit(1)
	}
}

func serve(port string, handler http.Handler, logger log.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		_ = level.Info(logger).Log("msg", "starting case closed agent", "addr", fmt.Sprintf("http://0.0.0.0:%s", port))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-done:
		_ = level.Info(logger).Log("msg", "shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
