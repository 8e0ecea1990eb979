package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/middleware"
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/validation"
)

// Handler is the base handler type holding shared application dependencies.
// Concrete handlers embed it to reach config, logger and the rest of the
// server container.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function: it receives a bound and
// validated request payload and returns a response or an error. Req is
// normally a pointer type so echo's binder can populate it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint function for routes with no
// response body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// ResponseHandler writes a successful handler result to the HTTP response.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
}

// JSONResponseHandler writes JSON responses with a fixed status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// NoContentResponseHandler writes responses with no body.
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

// handleRequest is the shared execution pipeline for all endpoints: bind and
// validate the payload, run the typed handler, log both phases with the
// request-scoped logger, and write the response. Errors flow out to the
// global error handler untouched.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", c.Request().Method).
		Str("route", c.Path()).
		Logger()

	logger.Info().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		logger.Error().
			Err(err).
			Dur("validation_duration", time.Since(validationStart)).
			Msg("request validation failed")
		return err
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")
		return err
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// validatablePtr constrains Req to pointer payload types so each request
// gets a freshly allocated payload; sharing one instance across concurrent
// requests would race.
type validatablePtr[T any] interface {
	*T
	validation.Validatable
}

// Handle wraps a typed handler into an echo.HandlerFunc with binding,
// validation, logging and JSON response writing.
func Handle[Req any, PReq validatablePtr[Req], Res any](
	h Handler,
	handler HandlerFunc[PReq, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(c, req, func(c echo.Context, req PReq) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleNoContent wraps a typed handler for endpoints that return no body.
func HandleNoContent[Req any, PReq validatablePtr[Req]](
	h Handler,
	handler HandlerFuncNoContent[PReq],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(c, req, func(c echo.Context, req PReq) (interface{}, error) {
			err := handler(c, req)
			return nil, err
		}, NoContentResponseHandler{status: status})
	}
}

// echoContextWithTimeout derives a bounded context from the request.
func echoContextWithTimeout(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), d)
}

// EmptyRequest is the payload for endpoints that take no input.
type EmptyRequest struct{}

// Validate implements validation.Validatable.
func (r *EmptyRequest) Validate() error { return nil }

// InsertResponse reports the identifier of a newly created record, in the
// shape frontends already consume.
type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResponse reports how many records an update touched.
type UpdateResponse struct {
	ModifiedCount int `json:"modifiedCount"`
}

// DeleteResponse reports how many records a delete removed.
type DeleteResponse struct {
	DeletedCount int `json:"deletedCount"`
}
