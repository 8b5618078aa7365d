package api_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actadash/internal/config"
	"actadash/internal/enrich"
	"actadash/internal/handlers/api"
	"actadash/internal/testutil"
)

func TestManagerListingAgainstPostgres(t *testing.T) {
	database := testutil.TestDB(t)

	testutil.InsertTestProject(t, database, "PRJ-1", "pm1@example.com", map[string]any{
		"project_name":      "Downtown Redevelopment",
		"project_status":    "Active",
		"has_acta_document": true,
		"timeline_summary":  map[string]any{"milestones": 4, "completed": 1},
	})
	testutil.InsertTestProject(t, database, "PRJ-2", "pm1@example.com", map[string]any{
		"project_name": "Harbor Bridge Retrofit",
		"timeline": []any{
			map[string]any{"hito": "Closure", "fecha": "2026-05-01"},
			map[string]any{"hito": "Kickoff", "fecha": "2026-01-15"},
		},
	})
	testutil.InsertTestProject(t, database, "PRJ-3", "pm2@example.com", map[string]any{
		"project_name": "Green Energy Initiative",
	})

	cfg := &config.Config{ProjectsTable: "projects", AdminSegment: "all-projects"}
	h := api.NewProjectsHandler(cfg, database, enrich.New(nil, 30))

	app := fiber.New()
	app.Get("/pm-manager/:email", h.Manager)
	app.Get("/timeline/:id", h.Timeline)

	get := func(target string) map[string]any {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		return body
	}

	body := get("/pm-manager/pm1%40example.com")
	assert.Equal(t, "pm1@example.com", body["pm_email"])
	assert.Equal(t, float64(2), body["total_projects"])
	for _, p := range body["projects"].([]any) {
		view := p.(map[string]any)
		assert.Equal(t, "pm1@example.com", view["pm_email"])
		if view["project_id"] == "PRJ-1" {
			assert.Equal(t, "active", view["status"])
			assert.Equal(t, float64(4), view["timeline_summary"].(map[string]any)["milestones"])
		}
	}
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["with_document"])
	assert.Equal(t, float64(1), summary["without_document"])

	body = get("/pm-manager/all-projects")
	assert.Equal(t, "admin", body["access_level"])
	assert.Equal(t, float64(3), body["total_projects"])

	body = get("/timeline/PRJ-2")
	timeline := body["timeline"].([]any)
	require.Len(t, timeline, 2)
	assert.Equal(t, "Kickoff", timeline[0].(map[string]any)["hito"])
}
