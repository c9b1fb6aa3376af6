package stub

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

// Server is a development stand-in for the task monitoring server.
type Server struct {
	apiKey string

	mu    sync.RWMutex
	tasks []model.Task
	// delay is applied before every tasks/index.json answer
	delay time.Duration

	server  *http.Server
	router  *mux.Router
	runChan chan struct{}
}

func NewServer(addr, apiKey string, tasks []model.Task) *Server {
	s := &Server{
		apiKey:  apiKey,
		tasks:   tasks,
		router:  mux.NewRouter(),
		runChan: make(chan struct{}),
	}
	s.server = &http.Server{
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  15 * time.Second,

		Handler: s.router,
	}

	s.router.HandleFunc("/tasks/index.json", s.HandleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/tasks", s.HandleListTasks).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/tasks", s.HandleReplaceTasks).Methods(http.MethodPut)
	s.router.HandleFunc("/api/v1/tasks/{id}/status", s.HandleSetStatus).Methods(http.MethodPut)
	s.router.HandleFunc("/api/v1/delay", s.HandleSetDelay).Methods(http.MethodPut)
	s.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(s.HandleNotFound)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Server) SetTasks(tasks []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

// Run the server in blocking mode.
func (s *Server) Run(ctx context.Context) {
	go func() {
		defer close(s.runChan)
		logrus.Infof("[stub] HTTP Server start at %v", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("[stub] HTTP Server crashed: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		logrus.Info("[stub] HTTP Server shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("[stub] HTTP Server shutdown error: %v", err)
		} else {
			logrus.Info("[stub] HTTP Server shutdown success")
		}
	case <-s.runChan:
		logrus.Errorf("[stub] HTTP Server unexpected stopped")
	}
}

// Fixture is the task list served when none is configured.
func Fixture() []model.Task {
	return []model.Task{
		{ID: "1", Name: "Nightly import", Active: model.True, LastStatus: model.True, Records: "1204", LastExecuted: "2024-05-01 02:00:13"},
		{ID: "2", Name: "Invoice export", Active: model.True, LastStatus: model.False, Records: "0", LastExecuted: "2024-05-01 03:15:40"},
		{ID: "3", Name: "Legacy sync", Active: model.False, LastStatus: model.False, Records: "0", LastExecuted: "2023-11-20 12:00:00"},
		{ID: "4", Name: "Stock levels", Active: model.True, LastStatus: model.True, Records: "87", LastExecuted: "2024-05-01 03:30:02"},
	}
}
