package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-demo/internal/handlers"
	"github.com/vancomm/minesweeper-demo/internal/middleware"
	"github.com/vancomm/minesweeper-demo/internal/repository"
)

func (a *App) loadRoutes() {
	demos := handlers.NewDemoHandler(a.logger, repository.New(a.db), a.ws)
	a.mountDemoRoutes(demos)
}

func (a *App) mountDemoRoutes(demos *handlers.DemoHandler) {
	uploader := middleware.RequireToken(a.logger, a.jwt)

	a.router.Handle("POST /demos", uploader(http.HandlerFunc(demos.Upload)))
	a.router.HandleFunc("GET /demos", demos.List)
	a.router.HandleFunc("GET /demos/{id}", demos.Download)
	a.router.Handle("DELETE /demos/{id}", uploader(http.HandlerFunc(demos.Delete)))
	a.router.HandleFunc("GET /demos/{id}/replay", demos.Replay)
}
