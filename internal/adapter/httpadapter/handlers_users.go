package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/small-engineer/user-crud/internal/domain"
	"github.com/small-engineer/user-crud/internal/usecase/users"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	us, err := s.users.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, true, us)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeJSON(w, r, http.StatusNotFound, false, msgNotFound)
		return
	}

	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeJSON(w, r, http.StatusNotFound, false, msgNotFound)
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, true, u)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	u, err := decodeUser(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, false, msgBadBody)
		return
	}

	err = s.users.Create(r.Context(), u)
	if err != nil {
		if errors.Is(err, users.ErrCreateFailed) {
			writeJSON(w, r, http.StatusInternalServerError, false, msgCreateFailed)
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, true, msgCreated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeJSON(w, r, http.StatusInternalServerError, false, msgDeleteFailed)
		return
	}

	err := s.users.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrDeleteFailed) {
			writeJSON(w, r, http.StatusInternalServerError, false, msgDeleteFailed)
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, true, msgDeleted)
}

// decodeUser reads exactly one JSON object from rd. A null body or any
// data after the object is rejected.
func decodeUser(rd io.Reader) (domain.User, error) {
	dec := json.NewDecoder(rd)
	var u *domain.User
	if err := dec.Decode(&u); err != nil {
		return domain.User{}, err
	}
	if u == nil {
		return domain.User{}, errors.New("empty user body")
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.User{}, errors.New("unexpected data after user body")
	}
	return *u, nil
}

// userID reads the {id} route variable. A value that is not an integer
// names no user.
func userID(r *http.Request) (domain.UserID, bool) {
	n, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return domain.UserID(n), true
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logFor(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeJSON(w, r, http.StatusInternalServerError, false, msgInternal)
}
