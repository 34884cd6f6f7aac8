// api/models/table_models.go
package models

import (
	"github.com/Annany2002/nebula-connector/internal/connection"
	"github.com/Annany2002/nebula-connector/internal/ddl"
)

// --- Table Request/Response Structs ---

// Authentication carries the (possibly secret-bearing) connection fields
type Authentication struct {
	Host           string `json:"host"`
	Port           string `json:"port"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	ConnectionType string `json:"connectionType"`
}

// Descriptor converts the fields into a connection descriptor without validating them
func (a Authentication) Descriptor() connection.Descriptor {
	return connection.Descriptor{
		Host:           a.Host,
		Port:           a.Port,
		Username:       a.Username,
		Password:       a.Password,
		ConnectionType: a.ConnectionType,
	}
}

// CreateTableRequest is the body of POST /api/v1/tables.
// Authentication is optional; the server's configured connection is used when it is absent.
type CreateTableRequest struct {
	Authentication *Authentication `json:"authentication"`
	ddl.Request
}

// EndpointRequest is the body of POST /api/v1/connections/endpoint
type EndpointRequest struct {
	Authentication Authentication `json:"authentication"`
	DatabaseName   string         `json:"databaseName" binding:"required"`
}

// EndpointResponse describes the assembled connection endpoint
type EndpointResponse struct {
	Endpoint string `json:"endpoint"`
	JDBCURL  string `json:"jdbc_url"`
}

// CreateTableResponse is returned on success
type CreateTableResponse struct {
	Response  string `json:"response"`
	RequestID string `json:"request_id"`
}
