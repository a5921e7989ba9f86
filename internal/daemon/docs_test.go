package daemon

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"testing"

	_ "framethumb/internal/docs"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerMatchesRoutes(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	routes, ok := f.server.Routes().(chi.Routes)
	require.True(t, ok)

	var served []string
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if strings.HasPrefix(route, "/swagger") || route == "/metrics" {
			return nil
		}
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		served = append(served, strings.ToLower(method)+" "+route)
		return nil
	})
	require.NoError(t, err)

	doc, err := swag.ReadDoc()
	require.NoError(t, err)
	var spec struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	var documented []string
	for path, methods := range spec.Paths {
		for method := range methods {
			documented = append(documented, method+" "+path)
		}
	}

	sort.Strings(served)
	sort.Strings(documented)
	assert.Equal(t, documented, served)
}
