package docs

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var definitionRef = regexp.MustCompile(`#/definitions/([\w.]+)`)

func TestSwaggerDoc_RefsResolve(t *testing.T) {
	doc := SwaggerInfo.ReadDoc()

	var parsed struct {
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	for _, m := range definitionRef.FindAllStringSubmatch(doc, -1) {
		assert.Contains(t, parsed.Definitions, m[1])
	}
}

func TestSwaggerDoc_NoOpaqueObjects(t *testing.T) {
	assert.NotContains(t, SwaggerInfo.ReadDoc(), `{"type": "object"}`)
}
