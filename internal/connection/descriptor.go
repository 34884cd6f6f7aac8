// internal/connection/descriptor.go
package connection

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	go_ora "github.com/sijms/go-ora/v2"

	"github.com/Annany2002/nebula-connector/internal/logger"
)

// Addressing modes understood by the Oracle thin driver.
const (
	TypeSID         = "sid"
	TypeServiceName = "service-name"
)

var (
	ErrConfiguration = errors.New("invalid connection configuration")
	customLog        = logger.NewLogger()
	validate         = validator.New()
)

// ConfigurationError reports a malformed connection field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: field '%s' %s", ErrConfiguration.Error(), e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Descriptor holds the addressing details of one Oracle database.
// It is built once per request and never mutated afterwards.
type Descriptor struct {
	Host           string `json:"host" validate:"required"`
	Port           string `json:"port" validate:"required,number"`
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required"`
	ConnectionType string `json:"connectionType" validate:"oneof=sid service-name"`
}

// NewDescriptor validates the fields and returns an immutable descriptor.
// An empty connectionType defaults to sid.
func NewDescriptor(host, port, username, password, connectionType string) (Descriptor, error) {
	if connectionType == "" {
		connectionType = TypeSID
	}
	d := Descriptor{
		Host:           host,
		Port:           port,
		Username:       username,
		Password:       password,
		ConnectionType: connectionType,
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Validate checks the descriptor and returns a *ConfigurationError naming
// the first offending field.
func (d Descriptor) Validate() error {
	if d.ConnectionType == "" {
		d.ConnectionType = TypeSID
	}
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigurationError{Field: "connection", Reason: err.Error()}
	}
	fe := fieldErrs[0]
	cfgErr := &ConfigurationError{Field: jsonName(fe.Field())}
	switch fe.Tag() {
	case "required":
		cfgErr.Reason = "can't be null or empty"
	case "number":
		cfgErr.Reason = "must be a number"
	case "oneof":
		cfgErr.Reason = fmt.Sprintf("must be one of '%s' or '%s'", TypeSID, TypeServiceName)
	default:
		cfgErr.Reason = fmt.Sprintf("failed on '%s'", fe.Tag())
	}
	customLog.Warnf("Connection: %v", cfgErr)
	return cfgErr
}

func jsonName(field string) string {
	switch field {
	case "Host":
		return "host"
	case "Port":
		return "port"
	case "Username":
		return "username"
	case "Password":
		return "password"
	case "ConnectionType":
		return "connectionType"
	}
	return field
}

func (d Descriptor) serviceName() bool {
	return d.ConnectionType == TypeServiceName
}

// Separator is "/" for service-name addressing and ":" otherwise.
func (d Descriptor) Separator() string {
	if d.serviceName() {
		return "/"
	}
	return ":"
}

// HostPrefix is "//" for service-name addressing and empty otherwise.
func (d Descriptor) HostPrefix() string {
	if d.serviceName() {
		return "//"
	}
	return ""
}

// Endpoint assembles host:port:sid or //host:port/service.
func (d Descriptor) Endpoint(databaseName string) string {
	return d.HostPrefix() + d.Host + ":" + d.Port + d.Separator() + databaseName
}

// JDBCURL is the thin-driver URL for the endpoint.
func (d Descriptor) JDBCURL(databaseName string) string {
	return "jdbc:oracle:thin:@" + d.Endpoint(databaseName)
}

// DSN builds a go-ora connection URL for the same endpoint.
func (d Descriptor) DSN(databaseName string) (string, error) {
	port, err := strconv.Atoi(d.Port)
	if err != nil {
		return "", &ConfigurationError{Field: "port", Reason: "must be a number"}
	}
	if d.serviceName() {
		return go_ora.BuildUrl(d.Host, port, databaseName, d.Username, d.Password, nil), nil
	}
	return go_ora.BuildUrl(d.Host, port, "", d.Username, d.Password, map[string]string{
		"SID": databaseName,
	}), nil
}

// String masks the password.
func (d Descriptor) String() string {
	return fmt.Sprintf("Descriptor{host=%s, port=%s, username=%s, password=****, connectionType=%s}",
		d.Host, d.Port, d.Username, d.ConnectionType)
}
