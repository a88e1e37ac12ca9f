package controllers

import (
	"errors"
	"net/http"

	"riseabove/backend/app/apperr"
	"riseabove/backend/app/dto"
	jwtutil "riseabove/backend/app/jwt"
	"riseabove/backend/app/services"
	"riseabove/backend/app/session"
	"riseabove/backend/app/view"
)

type AuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
	View   *view.Renderer
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer, v *view.Renderer) *AuthController {
	return &AuthController{Users: users, Signer: signer, View: v}
}

func (c *AuthController) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(c.View, w, r, "login", "Log in", nil)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	s := currentSession(r)
	id, err := c.Users.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, apperr.ErrValidation) && !errors.Is(err, apperr.ErrInvalidCredentials) {
			internalError(w, r, err)
			return
		}
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			s.AddFlash(session.FlashDanger, "Invalid username or password")
		} else {
			flashAll(s, err)
		}
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	s.SetUserID(id)
	s.AddFlash(session.FlashSuccess, "Logged in successfully!")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (c *AuthController) RegisterPage(w http.ResponseWriter, r *http.Request) {
	renderPage(c.View, w, r, "register", "Register", nil)
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	s := currentSession(r)
	_, err := c.Users.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"), r.PostFormValue("password-confirm"))
	if err != nil {
		if !errors.Is(err, apperr.ErrValidation) {
			internalError(w, r, err)
			return
		}
		flashAll(s, err)
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}
	s.AddFlash(session.FlashSuccess, "Registration successful! You can now log in.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	currentSession(r).Clear()
	http.Redirect(w, r, "/", http.StatusFound)
}

// Token exchanges JSON credentials for a bearer token for API clients.
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := c.Users.ValidateCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}
