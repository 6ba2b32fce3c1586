package controller_test

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-service/controller"
	"community-service/model"
)

func TestNoteVisibility(t *testing.T) {
	app, db := newTestApp(t)
	alice := register(t, app, "alice@campus.edu", "Alice")
	bob := register(t, app, "bob@campus.edu", "Bob")

	code, _ := doRequest(t, app, fiber.MethodPost, "/api/notes", alice.Access, fiber.Map{
		"title":   "Graphs",
		"subject": "Algorithms",
		"fileUrl": "https://files.campus.edu/graphs.pdf",
	})
	require.Equal(t, fiber.StatusCreated, code)

	code, _ = doRequest(t, app, fiber.MethodPost, "/api/notes", alice.Access, fiber.Map{
		"title":    "My draft",
		"fileUrl":  "https://files.campus.edu/draft.pdf",
		"isPublic": false,
	})
	require.Equal(t, fiber.StatusCreated, code)

	// The false must survive the insert, not get swallowed by a column default.
	stored := new(model.Note)
	require.NoError(t, db.Where("title = ?", "My draft").First(stored).Error)
	require.False(t, stored.IsPublic)

	// Alice sees both of her notes.
	code, env := doRequest(t, app, fiber.MethodGet, "/api/notes", alice.Access, nil)
	require.Equal(t, fiber.StatusOK, code)
	var notes []controller.NoteResponse
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	assert.Len(t, notes, 2)

	// Bob only sees the public one, with the uploader attached.
	code, env = doRequest(t, app, fiber.MethodGet, "/api/notes", bob.Access, nil)
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Graphs", notes[0].Title)
	assert.Equal(t, "Alice", notes[0].UploadedBy.Name)
}

func TestNoteValidation(t *testing.T) {
	app, _ := newTestApp(t)
	alice := register(t, app, "alice@campus.edu", "Alice")

	code, _ := doRequest(t, app, fiber.MethodPost, "/api/notes", alice.Access,
		fiber.Map{"fileUrl": "https://files.campus.edu/x.pdf"})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = doRequest(t, app, fiber.MethodPost, "/api/notes", alice.Access,
		fiber.Map{"title": "No file"})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestPaperVisibility(t *testing.T) {
	app, db := newTestApp(t)
	alice := register(t, app, "alice@campus.edu", "Alice")
	bob := register(t, app, "bob@campus.edu", "Bob")

	code, env := doRequest(t, app, fiber.MethodPost, "/api/papers", alice.Access, fiber.Map{
		"title":    "OS Final 2024",
		"subject":  "Operating Systems",
		"year":     2024,
		"examType": "final",
		"fileUrl":  "https://files.campus.edu/os-final.pdf",
	})
	require.Equal(t, fiber.StatusCreated, code)

	var paper controller.PaperResponse
	require.NoError(t, json.Unmarshal(env.Data, &paper))
	assert.Equal(t, 2024, paper.Year)
	assert.Equal(t, "final", paper.ExamType)

	code, _ = doRequest(t, app, fiber.MethodPost, "/api/papers", alice.Access, fiber.Map{
		"title":    "Mock answers",
		"fileUrl":  "https://files.campus.edu/mock.pdf",
		"isPublic": false,
	})
	require.Equal(t, fiber.StatusCreated, code)

	stored := new(model.Paper)
	require.NoError(t, db.Where("title = ?", "Mock answers").First(stored).Error)
	require.False(t, stored.IsPublic)

	code, env = doRequest(t, app, fiber.MethodGet, "/api/papers", bob.Access, nil)
	require.Equal(t, fiber.StatusOK, code)
	var papers []controller.PaperResponse
	require.NoError(t, json.Unmarshal(env.Data, &papers))
	require.Len(t, papers, 1)
	assert.Equal(t, "OS Final 2024", papers[0].Title)
}

func TestForumPostsNewestFirst(t *testing.T) {
	app, _ := newTestApp(t)
	alice := register(t, app, "alice@campus.edu", "Alice")
	bob := register(t, app, "bob@campus.edu", "Bob")

	for _, content := range []string{"first post", "second post"} {
		code, _ := doRequest(t, app, fiber.MethodPost, "/api/forum-posts", alice.Access,
			fiber.Map{"content": content})
		require.Equal(t, fiber.StatusCreated, code)
	}

	code, env := doRequest(t, app, fiber.MethodGet, "/api/forum-posts", bob.Access, nil)
	require.Equal(t, fiber.StatusOK, code)

	var posts []controller.ForumPostResponse
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "second post", posts[0].Content)
	assert.Equal(t, "first post", posts[1].Content)
	assert.Equal(t, "Alice", posts[0].Author.Name)

	code, _ = doRequest(t, app, fiber.MethodPost, "/api/forum-posts", bob.Access, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, code)
}
