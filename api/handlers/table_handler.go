// api/handlers/table_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/nebula-connector/api/middleware"
	"github.com/Annany2002/nebula-connector/api/models"
	"github.com/Annany2002/nebula-connector/config"
	"github.com/Annany2002/nebula-connector/internal/connection"
	"github.com/Annany2002/nebula-connector/internal/ddl"
	"github.com/Annany2002/nebula-connector/internal/logger"
	"github.com/Annany2002/nebula-connector/internal/secrets"
	"github.com/Annany2002/nebula-connector/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// Opener hands out one open connection per request.
type Opener func(ctx context.Context, driver string, d connection.Descriptor, databaseName string) (ddl.Conn, error)

// StorageOpener opens real connections through the storage package.
func StorageOpener(ctx context.Context, driver string, d connection.Descriptor, databaseName string) (ddl.Conn, error) {
	conn, err := storage.Open(ctx, driver, d, databaseName)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// TableHandler holds dependencies for table management handlers.
type TableHandler struct {
	Cfg     *config.Config
	Engine  *ddl.Engine
	Open    Opener
	Secrets secrets.Lookup
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(cfg *config.Config, open Opener) *TableHandler {
	return &TableHandler{
		Cfg: cfg,
		Engine: ddl.NewEngine(
			ddl.WithDuplicateMarkers(storage.DuplicateMarkers(cfg.DBDriver)...),
			ddl.WithIdentifierPolicy(cfg.IdentifierPolicy),
		),
		Open:    open,
		Secrets: secrets.Env,
	}
}

// descriptor resolves secrets in the request's authentication block, falling
// back to the configured connection, and validates the result.
func (h *TableHandler) descriptor(a *models.Authentication) (connection.Descriptor, error) {
	if a == nil {
		return h.Cfg.Connection, nil
	}
	auth := *a
	if err := secrets.ResolveAll(h.Secrets, &auth.Host, &auth.Port, &auth.Username, &auth.Password); err != nil {
		return connection.Descriptor{}, err
	}
	return connection.NewDescriptor(auth.Host, auth.Port, auth.Username, auth.Password, auth.ConnectionType)
}

// CreateTable handles POST /api/v1/tables.
func (h *TableHandler) CreateTable(c *gin.Context) {
	requestID := c.GetString(middleware.RequestIDKey)

	var req models.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Handler: CreateTable binding error: %v", err)
		_ = c.Error(fmt.Errorf("%w: %v", middleware.ErrBadRequestBody, err))
		return
	}

	if err := secrets.ResolveAll(h.Secrets, &req.DatabaseName); err != nil {
		_ = c.Error(err)
		return
	}

	desc, err := h.descriptor(req.Authentication)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Validation failures must not cost a round trip to the database.
	if _, err := ddl.BuildCreateTable(req.Request, h.Cfg.IdentifierPolicy); err != nil {
		customLog.Warnf("Handler: CreateTable validation failed for request %s: %v", requestID, err)
		_ = c.Error(err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Cfg.ExecTimeout)
	defer cancel()
	ctx = ddl.WithRequestID(ctx, requestID)

	conn, err := h.Open(ctx, h.Cfg.DBDriver, desc, req.DatabaseName)
	if err != nil {
		customLog.Warnf("Handler: Could not open connection for request %s: %v", requestID, err)
		_ = c.Error(err)
		return
	}

	resp, err := h.Engine.CreateTable(ctx, req.Request, conn)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, models.CreateTableResponse{
		Response:  resp.Response,
		RequestID: requestID,
	})
}

// Endpoint handles POST /api/v1/connections/endpoint. No connection is opened.
func (h *TableHandler) Endpoint(c *gin.Context) {
	var req models.EndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	desc, err := h.descriptor(&req.Authentication)
	if err != nil {
		_ = c.Error(err)
		return
	}
	databaseName, err := secrets.Resolve(req.DatabaseName, h.Secrets)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.EndpointResponse{
		Endpoint: desc.Endpoint(databaseName),
		JDBCURL:  desc.JDBCURL(databaseName),
	})
}
