package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	user := api.Group("/user/:username")
	user.GET("/profile", s.getProfile)
	user.GET("/about", s.getAbout)
	user.GET("/projects", s.getProjects)
	user.GET("/contributions", s.getContributions)
	user.GET("/prs-by-org", s.getPRsByOrg)

	api.GET("/screenshot", s.getScreenshot)
}
