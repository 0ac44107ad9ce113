package router

import (
	"journey-api/common"
	"journey-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "journey-api/docs"
)

func NewRouter(
	authHandler *handler.AuthHandler,
	todoHandler *handler.ToDoHandler,
	retrospectHandler *handler.RetrospectHandler,
	authMW *handler.AuthMiddleware,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	mux.Handle("POST /auth", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /user", handler.ErrorHandlingMiddleware(authHandler.Register))

	protected := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return authMW.Authenticate(handler.ErrorHandlingMiddleware(h))
	}

	mux.Handle("POST /todo", protected(todoHandler.Create))
	mux.Handle("PATCH /todo/{toDoIdx}", protected(todoHandler.Update))
	mux.Handle("DELETE /todo/{toDoIdx}", protected(todoHandler.Delete))
	mux.Handle("GET /todo/journey", protected(todoHandler.ListByJourney))
	mux.Handle("GET /todo/date", protected(todoHandler.ListByDate))

	mux.Handle("GET /retrospect/value", protected(retrospectHandler.ListValues))
	mux.Handle("POST /retrospect", protected(retrospectHandler.Create))

	return mux
}
