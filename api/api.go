// Package api holds the OpenAPI description of the HTTP interface.
package api

import _ "embed"

// OpenAPI is the OpenAPI 2.0 document served at /openapi.json.
//
//go:embed openapi.json
var OpenAPI []byte
