// internal/ddl/statement.go
package ddl

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Annany2002/nebula-connector/internal/core"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Request is the table creation payload after secrets have been resolved.
type Request struct {
	DatabaseName string           `json:"databaseName" validate:"notblank"`
	TableName    string           `json:"tableName" validate:"notblank"`
	ColumnsList  []map[string]any `json:"columnsList" validate:"notblank"`
}

// Validate checks the request envelope. Column level checks happen during
// normalization.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "DatabaseName":
			return &ValidationError{Message: "databaseName can't be null or empty"}
		case "TableName":
			return &ValidationError{Message: "tableName can't be null or empty"}
		case "ColumnsList":
			return &ValidationError{Message: "columnsList can't be null or empty"}
		}
	}
	return &ValidationError{Message: err.Error()}
}

// BuildCreateTable validates the request and synthesizes exactly one
// CREATE TABLE statement. No I/O happens here.
func BuildCreateTable(req Request, policy core.IdentifierPolicy) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if err := policy.CheckIdentifier("table name", req.TableName); err != nil {
		return "", &ValidationError{Message: err.Error()}
	}

	cols, err := NormalizeColumns(req.ColumnsList)
	if err != nil {
		return "", err
	}
	for _, col := range cols {
		if err := policy.CheckIdentifier("column name", col.Name); err != nil {
			return "", &ValidationError{Message: err.Error()}
		}
	}

	body := ColumnDefinitions(cols)
	if strings.TrimSpace(body) == "" {
		return "", &ValidationError{Message: MsgInvalidColumnsList}
	}
	return "CREATE TABLE " + req.TableName + " (" + body + ")", nil
}
