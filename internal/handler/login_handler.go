package handler

import (
	"net/http"

	"go-blog-api/internal/service"
	"go-blog-api/pkg/apierror"
)

type LoginHandler struct {
	auth *service.AuthService
}

func NewLoginHandler(auth *service.AuthService) *LoginHandler {
	return &LoginHandler{auth: auth}
}

// Token exchanges form-encoded credentials for a bearer token. The
// username field carries the user's email.
func (h *LoginHandler) Token(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if err := r.ParseForm(); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid form body", "", http.StatusBadRequest))
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, apierror.New("BAD_REQUEST", "username and password are required", "", http.StatusBadRequest))
		return
	}

	tokens, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}
