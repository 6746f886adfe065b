// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"cinegraph/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	FilmHandler    *handler.FilmHandler
	CatalogHandler *handler.CatalogHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	filmHandler    *handler.FilmHandler
	catalogHandler *handler.CatalogHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		filmHandler:    params.FilmHandler,
		catalogHandler: params.CatalogHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	usersGroup := e.Group("/users")
	{
		usersGroup.GET("", r.userHandler.ListUsers)
		usersGroup.POST("", r.userHandler.CreateUser)
		usersGroup.PUT("", r.userHandler.UpdateUser)
		usersGroup.GET("/:id", r.userHandler.GetUser)
		usersGroup.DELETE("/:id", r.userHandler.DeleteUser)

		// Friend graph, edges are directed from :id
		usersGroup.GET("/:id/friends", r.userHandler.ListFriends)
		usersGroup.PUT("/:id/friends/:friendId", r.userHandler.AddFriend)
		usersGroup.DELETE("/:id/friends/:friendId", r.userHandler.RemoveFriend)
		usersGroup.GET("/:id/friends/common/:otherId", r.userHandler.ListCommonFriends)
	}

	filmsGroup := e.Group("/films")
	{
		filmsGroup.GET("", r.filmHandler.ListFilms)
		filmsGroup.POST("", r.filmHandler.CreateFilm)
		filmsGroup.PUT("", r.filmHandler.UpdateFilm)
		// Static segment wins over /:id in echo's router
		filmsGroup.GET("/popular", r.filmHandler.PopularFilms)
		filmsGroup.GET("/:id", r.filmHandler.GetFilm)
		filmsGroup.DELETE("/:id", r.filmHandler.DeleteFilm)
		filmsGroup.PUT("/:id/like/:userId", r.filmHandler.AddLike)
		filmsGroup.DELETE("/:id/like/:userId", r.filmHandler.RemoveLike)
	}

	// Reference data
	e.GET("/genres", r.catalogHandler.ListGenres)
	e.GET("/genres/:id", r.catalogHandler.GetGenre)
	e.GET("/mpa", r.catalogHandler.ListMpaRatings)
	e.GET("/mpa/:id", r.catalogHandler.GetMpaRating)
}
