package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testWorld = `
format = "clork"
type = "data"

[world]
start = "field"

[[room]]
label = "field"
name = "Open Field"
description = "You are standing in an open field."

[[room.exit]]
direction = "north"
dest = "forest"

[[room]]
label = "forest"
name = "Forest"
description = "Trees in all directions."

[[object]]
label = "lamp"
name = "brass lantern"
nouns = ["lamp", "lantern"]
adjectives = ["brass"]
flags = ["takeable", "lightable"]
location = "field"
`

func testServer(t *testing.T) *Server {
	t.Helper()

	worldPath := filepath.Join(t.TempDir(), "world.cwf")
	if err := os.WriteFile(worldPath, []byte(testWorld), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := New(worldPath, "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func doJSON(t *testing.T, s *Server, method, path, body string, into interface{}) int {
	t.Helper()

	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reqBody)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if into != nil && w.Code != http.StatusNoContent {
		if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
			t.Fatalf("unmarshaling %s %s response: %v", method, path, err)
		}
	}

	return w.Code
}

func createSession(t *testing.T, s *Server) SessionCreatedModel {
	t.Helper()

	var created SessionCreatedModel
	code := doJSON(t, s, "POST", "/sessions", "", &created)
	if code != http.StatusCreated {
		t.Fatalf("creating session: HTTP-%d", code)
	}
	return created
}

func Test_CreateSession(t *testing.T) {
	assert := assert.New(t)

	s := testServer(t)
	created := createSession(t, s)

	_, err := uuid.Parse(created.ID)
	assert.NoError(err)
	assert.Equal("Open Field", created.Room)
	assert.Contains(created.Output, "You are standing in an open field.")
	assert.Zero(created.Moves)
}

func Test_CreateCommand(t *testing.T) {
	assert := assert.New(t)

	s := testServer(t)
	created := createSession(t, s)

	var cmd CommandModel
	code := doJSON(t, s, "POST", "/sessions/"+created.ID+"/commands",
		`{"input": "take lamp"}`, &cmd)

	assert.Equal(http.StatusCreated, code)
	assert.Equal(1, cmd.Seq)
	assert.Equal("take lamp", cmd.Input)
	assert.Contains(cmd.Output, "Taken.")

	// the session reflects the move
	var sess SessionModel
	code = doJSON(t, s, "GET", "/sessions/"+created.ID, "", &sess)
	assert.Equal(http.StatusOK, code)
	assert.Equal(1, sess.Moves)
}

func Test_CreateCommand_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		body       string
		expectCode int
	}{
		{
			name:       "empty input",
			body:       `{"input": ""}`,
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{{{{`,
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "session does not exist",
			path:       "/sessions/" + uuid.NewString() + "/commands",
			body:       `{"input": "look"}`,
			expectCode: http.StatusNotFound,
		},
		{
			name:       "session ID is not a UUID",
			path:       "/sessions/not-a-uuid/commands",
			body:       `{"input": "look"}`,
			expectCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s := testServer(t)
			created := createSession(t, s)

			path := tc.path
			if path == "" {
				path = "/sessions/" + created.ID + "/commands"
			}

			code := doJSON(t, s, "POST", path, tc.body, nil)
			assert.Equal(tc.expectCode, code)
		})
	}
}

func Test_ParseDiagnosticsComeBackAsOutput(t *testing.T) {
	assert := assert.New(t)

	s := testServer(t)
	created := createSession(t, s)

	// a clarifying question comes back as output, and answering it on the
	// next command completes the original one
	var cmd CommandModel
	doJSON(t, s, "POST", "/sessions/"+created.ID+"/commands", `{"input": "take"}`, &cmd)
	assert.Equal("What do you want to take?", cmd.Output)

	doJSON(t, s, "POST", "/sessions/"+created.ID+"/commands", `{"input": "lamp"}`, &cmd)
	assert.Contains(cmd.Output, "Taken.")
}

func Test_ListCommands(t *testing.T) {
	assert := assert.New(t)

	s := testServer(t)
	created := createSession(t, s)

	for _, input := range []string{"take lamp", "light lamp", "go north"} {
		doJSON(t, s, "POST", "/sessions/"+created.ID+"/commands",
			`{"input": "`+input+`"}`, nil)
	}

	var transcript []CommandModel
	code := doJSON(t, s, "GET", "/sessions/"+created.ID+"/commands", "", &transcript)

	assert.Equal(http.StatusOK, code)
	if !assert.Len(transcript, 3) {
		return
	}
	assert.Equal("take lamp", transcript[0].Input)
	assert.Equal("light lamp", transcript[1].Input)
	assert.Equal("go north", transcript[2].Input)
	for i, cmd := range transcript {
		assert.Equal(i+1, cmd.Seq)
	}
}

func Test_DeleteSession(t *testing.T) {
	assert := assert.New(t)

	s := testServer(t)
	created := createSession(t, s)

	code := doJSON(t, s, "DELETE", "/sessions/"+created.ID, "", nil)
	assert.Equal(http.StatusNoContent, code)

	code = doJSON(t, s, "GET", "/sessions/"+created.ID, "", nil)
	assert.Equal(http.StatusNotFound, code)
}

func Test_SessionResumesByReplay(t *testing.T) {
	assert := assert.New(t)

	s := testServer(t)
	created := createSession(t, s)

	doJSON(t, s, "POST", "/sessions/"+created.ID+"/commands", `{"input": "take lamp"}`, nil)
	doJSON(t, s, "POST", "/sessions/"+created.ID+"/commands", `{"input": "go north"}`, nil)

	// simulate a restart losing the in-memory game
	id, err := uuid.Parse(created.ID)
	if !assert.NoError(err) {
		return
	}
	s.dropLive(id)

	var sess SessionModel
	code := doJSON(t, s, "GET", "/sessions/"+created.ID, "", &sess)
	assert.Equal(http.StatusOK, code)
	assert.Equal("Forest", sess.Room)
	assert.Equal(2, sess.Moves)
}

func Test_GetInfo(t *testing.T) {
	assert := assert.New(t)

	s := testServer(t)

	var info InfoModel
	code := doJSON(t, s, "GET", "/info", "", &info)

	assert.Equal(http.StatusOK, code)
	assert.NotEmpty(info.Version)
	assert.NotEmpty(info.WorldFile)
}
