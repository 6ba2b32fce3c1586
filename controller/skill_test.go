package controller_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-service/model"
)

func TestSkillMutationsRequireAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	student := register(t, app, "alice@campus.edu", "Alice")

	code, _ := doRequest(t, app, fiber.MethodPost, "/api/skills", student.Access,
		fiber.Map{"title": "Go"})
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = doRequest(t, app, fiber.MethodPut, "/api/skills/1", student.Access,
		fiber.Map{"title": "Go"})
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = doRequest(t, app, fiber.MethodDelete, "/api/skills/1", student.Access, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	// Reading stays open to everyone.
	code, _ = doRequest(t, app, fiber.MethodGet, "/api/skills", student.Access, nil)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestSkillCRUD(t *testing.T) {
	app, _ := newTestApp(t)
	admin := register(t, app, "dean@campus.edu", "Dean")
	student := register(t, app, "alice@campus.edu", "Alice")

	code, env := doRequest(t, app, fiber.MethodPost, "/api/skills", admin.Access, fiber.Map{
		"title":         "Distributed Systems",
		"category":      "CS",
		"level":         "advanced",
		"estimatedTime": "6 weeks",
	})
	require.Equal(t, fiber.StatusCreated, code, env.Message)

	var skill model.Skill
	require.NoError(t, json.Unmarshal(env.Data, &skill))
	assert.Equal(t, "Distributed Systems", skill.Title)
	assert.Zero(t, skill.Popularity)

	code, env = doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/api/skills/%d", skill.ID),
		admin.Access, fiber.Map{"title": "Distributed Systems II", "category": "CS"})
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &skill))
	assert.Equal(t, "Distributed Systems II", skill.Title)

	code, env = doRequest(t, app, fiber.MethodGet, "/api/skills", student.Access, nil)
	require.Equal(t, fiber.StatusOK, code)
	var skills []model.Skill
	require.NoError(t, json.Unmarshal(env.Data, &skills))
	require.Len(t, skills, 1)

	code, _ = doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("/api/skills/%d", skill.ID), admin.Access, nil)
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/api/skills/%d", skill.ID),
		admin.Access, fiber.Map{"title": "gone"})
	assert.Equal(t, fiber.StatusNotFound, code)
	code, _ = doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("/api/skills/%d", skill.ID), admin.Access, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestSkillValidation(t *testing.T) {
	app, _ := newTestApp(t)
	admin := register(t, app, "dean@campus.edu", "Dean")

	code, _ := doRequest(t, app, fiber.MethodPost, "/api/skills", admin.Access, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, code)
}
