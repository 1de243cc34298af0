package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	authdomain "storyhub/backend/internal/domain/auth"
	storydomain "storyhub/backend/internal/domain/story"
	authusecase "storyhub/backend/internal/usecase/auth"
	storyusecase "storyhub/backend/internal/usecase/story"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/auth/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/auth/login", http.HandlerFunc(s.handleLogin))

	authenticated := s.authMiddleware
	s.router.Handle("/users", authenticated(http.HandlerFunc(s.handleUsers)))
	s.router.Handle("/users/me", authenticated(http.HandlerFunc(s.handleCurrentUser)))
	s.router.Handle("/stories", authenticated(http.HandlerFunc(s.handleStories)))
	s.router.Handle("/stories/", authenticated(http.HandlerFunc(s.handleStoryByID)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.authService.Register(r.Context(), authusecase.RegisterInput{
		Username: payload.Username,
		Email:    payload.Email,
		FullName: payload.FullName,
		Password: payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrUsernameTaken):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, authusecase.ErrUsernameRequired), errors.Is(err, authusecase.ErrPasswordRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, user, err := s.authService.Login(r.Context(), authdomain.Credentials{
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, authdomain.ErrInvalidCredentials.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	users, err := s.authService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeAuthError(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, user)
	case http.MethodPatch, http.MethodPut:
		var payload struct {
			Email    *string `json:"email"`
			FullName *string `json:"full_name"`
			Password *string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			if errors.Is(err, io.EOF) {
				writeError(w, http.StatusBadRequest, "update payload required")
			} else {
				writeError(w, http.StatusBadRequest, "invalid JSON payload")
			}
			return
		}

		updated, err := s.authService.UpdateProfile(r.Context(), user.Username, authusecase.UpdateInput{
			Email:    payload.Email,
			FullName: payload.FullName,
			Password: payload.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, authdomain.ErrUserNotFound):
				writeAuthError(w)
			case errors.Is(err, authusecase.ErrPasswordRequired):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.authService.Delete(r.Context(), user.Username); err != nil {
			if errors.Is(err, authdomain.ErrUserNotFound) {
				writeAuthError(w)
			} else {
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleStories(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeAuthError(w)
		return
	}

	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		items, err := s.storyService.List(ctx, user.Username)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var payload storyusecase.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		item, err := s.storyService.Create(ctx, user.Username, payload)
		if err != nil {
			switch {
			case errors.Is(err, storydomain.ErrDuplicateTitle):
				writeError(w, http.StatusConflict, err.Error())
			case errors.Is(err, storyusecase.ErrCompletionUnavailable):
				writeError(w, http.StatusBadGateway, storyusecase.ErrCompletionUnavailable.Error())
			case errors.Is(err, storyusecase.ErrTitleRequired), errors.Is(err, storyusecase.ErrCategoryRequired):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleStoryByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeAuthError(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/stories/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "story id required")
		return
	}

	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		item, err := s.storyService.Get(ctx, user.Username, id)
		if err != nil {
			if errors.Is(err, storydomain.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPatch, http.MethodPut:
		var payload storyusecase.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		item, err := s.storyService.Update(ctx, user.Username, id, payload)
		if err != nil {
			if errors.Is(err, storydomain.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if err := s.storyService.Delete(ctx, user.Username, id); err != nil {
			if errors.Is(err, storydomain.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodDelete)
	}
}

// authMiddleware resolves the bearer token into a user before the protected
// handler runs. Invalid, expired, and orphaned tokens all produce the same
// 401; a disabled account is the one authorization failure that is named.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeAuthError(w)
			return
		}

		user, err := s.resolver.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, authdomain.ErrUserDisabled) {
				writeError(w, http.StatusForbidden, authdomain.ErrUserDisabled.Error())
				return
			}
			writeAuthError(w)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUserFromContext(ctx context.Context) (*authdomain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser{}).(*authdomain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

type ctxKeyUser struct{}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
