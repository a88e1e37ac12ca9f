package router

import (
	"net/http"

	"riseabove/backend/app/controllers"
	"riseabove/backend/app/middleware"
)

type Controllers struct {
	HTTP   *controllers.HTTPController
	Auth   *controllers.AuthController
	Pages  *controllers.PageController
	Skills *controllers.SkillController
}

func NewRouter(c Controllers, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, middleware.WithRoute(pattern, h))
	}
	page := func(h http.HandlerFunc) http.Handler { return mw.RequireLogin(h) }
	api := func(h http.HandlerFunc) http.Handler { return mw.RequireUser(h) }

	// public
	handle("GET /ping", http.HandlerFunc(c.HTTP.Ping))
	handle("GET /login", http.HandlerFunc(c.Auth.LoginPage))
	handle("POST /login", http.HandlerFunc(c.Auth.Login))
	handle("GET /register", http.HandlerFunc(c.Auth.RegisterPage))
	handle("POST /register", http.HandlerFunc(c.Auth.Register))
	handle("GET /logout", http.HandlerFunc(c.Auth.Logout))
	handle("POST /api/token", http.HandlerFunc(c.Auth.Token))

	// pages
	handle("GET /{$}", page(c.Pages.Home))
	handle("GET /calendar", page(c.Pages.Calendar))

	// skill ledger
	handle("POST /save_xp", api(c.Skills.SaveXP))
	handle("POST /add_skill", api(c.Skills.AddSkill))
	handle("POST /delete_skill", api(c.Skills.DeleteSkill))
	handle("GET /api/skills", api(c.Skills.List))

	return mux
}
