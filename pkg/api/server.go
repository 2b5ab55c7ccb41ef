package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/modeadvisor/pkg/api/routes"
	"github.com/travigo/modeadvisor/pkg/history"
	"github.com/travigo/modeadvisor/pkg/http_server"
)

type Server struct {
	Adviser   routes.Adviser
	Suggester routes.Suggester
	History   history.Store
}

func (s *Server) App() *fiber.App {
	webApp := fiber.New()
	webApp.Use(http_server.NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.AdviceRouter(group.Group("/advice"), s.Adviser)
	routes.SuggestRouter(group.Group("/suggest"), s.Suggester)

	routes.HistoryRouter(group.Group("/history"), s.History)
	routes.DashboardRouter(group.Group("/dashboard"), s.History)

	return webApp
}

func (s *Server) Listen(listen string) error {
	return s.App().Listen(listen)
}
