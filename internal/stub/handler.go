package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

const unauthorizedPage = `<!DOCTYPE html>
<html><head><title>401 Unauthorized</title></head><body><h1>Unauthorized</h1></body></html>`

type statusRequest struct {
	LastStatus string `json:"laststatus"`
	Active     string `json:"active"`
}

type delayRequest struct {
	Delay string `json:"delay"`
}

// HandleIndex serves tasks/index.json to callers holding the API key.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	delay := s.delay
	list := model.TaskList{Tasks: append([]model.Task(nil), s.tasks...)}
	s.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if r.URL.Query().Get("apiKey") != s.apiKey {
		logrus.Warnf("[stub] rejected request from %v: bad api key", r.RemoteAddr)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(unauthorizedPage))
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, model.TaskList{Tasks: s.tasks})
}

func (s *Server) HandleReplaceTasks(w http.ResponseWriter, r *http.Request) {
	list := model.TaskList{}
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		http.Error(w, fmt.Sprintf("bad task list: %v", err), http.StatusBadRequest)
		return
	}
	s.SetTasks(list.Tasks)
	logrus.Infof("[stub] task list replaced, %d tasks", len(list.Tasks))
	writeJSON(w, http.StatusOK, list)
}

// HandleSetStatus flips laststatus and/or active of one task.
func (s *Server) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	req := statusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if req.LastStatus != "" {
			s.tasks[i].LastStatus = req.LastStatus
		}
		if req.Active != "" {
			s.tasks[i].Active = req.Active
		}
		writeJSON(w, http.StatusOK, s.tasks[i])
		return
	}
	http.Error(w, "task not found", http.StatusNotFound)
}

func (s *Server) HandleSetDelay(w http.ResponseWriter, r *http.Request) {
	req := delayRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
		return
	}
	d, err := time.ParseDuration(req.Delay)
	if err != nil {
		http.Error(w, fmt.Sprintf("bad delay: %v", err), http.StatusBadRequest)
		return
	}
	s.SetDelay(d)
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = fmt.Fprintf(w, "<html><head><title>404 Not Found</title></head><body>%s</body></html>", r.URL.Path)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("[stub] write response failed: %v", err)
	}
}
