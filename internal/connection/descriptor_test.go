// internal/connection/descriptor_test.go
package connection

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorTokens(t *testing.T) {
	testCases := []struct {
		name           string
		connectionType string
		wantSeparator  string
		wantPrefix     string
		wantEndpoint   string
	}{
		{"sid", TypeSID, ":", "", "H:1521:ORCL"},
		{"default is sid", "", ":", "", "H:1521:ORCL"},
		{"service name", TypeServiceName, "/", "//", "//H:1521/ORCL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := NewDescriptor("H", "1521", "scott", "tiger", tc.connectionType)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSeparator, d.Separator())
			assert.Equal(t, tc.wantPrefix, d.HostPrefix())
			assert.Equal(t, tc.wantEndpoint, d.Endpoint("ORCL"))
			assert.Equal(t, "jdbc:oracle:thin:@"+tc.wantEndpoint, d.JDBCURL("ORCL"))
		})
	}
}

func TestNewDescriptorValidation(t *testing.T) {
	testCases := []struct {
		name      string
		host      string
		port      string
		user      string
		password  string
		connType  string
		wantField string
	}{
		{"missing host", "", "1521", "u", "p", "", "host"},
		{"missing port", "H", "", "u", "p", "", "port"},
		{"non numeric port", "H", "15a1", "u", "p", "", "port"},
		{"negative port", "H", "-1521", "u", "p", "", "port"},
		{"missing username", "H", "1521", "", "p", "", "username"},
		{"missing password", "H", "1521", "u", "", "", "password"},
		{"unknown connection type", "H", "1521", "u", "p", "tns", "connectionType"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDescriptor(tc.host, tc.port, tc.user, tc.password, tc.connType)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.wantField, cfgErr.Field)
			assert.Contains(t, err.Error(), tc.wantField)
		})
	}
}

func TestDescriptorDSN(t *testing.T) {
	sid, err := NewDescriptor("db.local", "1521", "scott", "tiger", TypeSID)
	require.NoError(t, err)
	dsn, err := sid.DSN("ORCL")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "oracle://"))
	assert.Contains(t, dsn, "db.local:1521")
	assert.Contains(t, strings.ToUpper(dsn), "SID=ORCL")

	svc, err := NewDescriptor("db.local", "1521", "scott", "tiger", TypeServiceName)
	require.NoError(t, err)
	dsn, err = svc.DSN("ORCLPDB1")
	require.NoError(t, err)
	assert.Contains(t, dsn, "db.local:1521/ORCLPDB1")
}

func TestDescriptorStringMasksPassword(t *testing.T) {
	d, err := NewDescriptor("H", "1521", "scott", "tiger", "")
	require.NoError(t, err)
	assert.NotContains(t, d.String(), "tiger")
	assert.Contains(t, d.String(), "password=****")
}
