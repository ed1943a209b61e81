package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/small-engineer/user-crud/internal/usecase/users"
)

const (
	msgNotFound     = "Usuário não encontrado"
	msgCreated      = "Usuário criado com sucesso"
	msgCreateFailed = "Falha ao criar o usuário"
	msgDeleted      = "Usuário removido com sucesso"
	msgDeleteFailed = "Falha ao remover o usuário"
	msgBadBody      = "Corpo da requisição inválido"
	msgInternal     = "Erro interno do servidor"
	msgNoRoute      = "Rota não encontrada"
	msgNoMethod     = "Método não permitido"
)

const maxBodyBytes = 1 << 20

type Server struct {
	users *users.Service
}

// envelope is the body of every response.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func NewServer(u *users.Service) *Server {
	return &Server{
		users: u,
	}
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, accessLog, recoverer)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", s.handleGetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)

	// mux skips middleware for these, so wrap them explicitly
	r.NotFoundHandler = requestID(accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, false, msgNoRoute)
	})))
	r.MethodNotAllowedHandler = requestID(accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, false, msgNoMethod)
	})))
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, true, "ok")
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, ok bool, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(envelope{Success: ok, Data: data})
	if err != nil {
		logFor(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}
