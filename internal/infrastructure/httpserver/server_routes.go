package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	films := api.Group("/films")
	films.GET("", s.listFilms)
	films.GET("/search", s.searchFilms)
	films.GET("/:id", s.getFilm)

	genres := api.Group("/genres")
	genres.GET("", s.listGenres)
	genres.GET("/:id", s.getGenre)

	persons := api.Group("/persons")
	persons.GET("", s.listPersons)
	persons.GET("/search", s.searchPersons)
	persons.GET("/:id", s.getPerson)
	persons.GET("/:id/films", s.getPersonFilms)
}
