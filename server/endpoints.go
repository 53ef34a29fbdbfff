package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tmoresby/clork/internal/version"
	"github.com/tmoresby/clork/server/dao"
)

func (s *Server) epCreateSession(req *http.Request) EndpointResult {
	sess, err := s.db.Sessions().Create(req.Context(), dao.Session{
		WorldFile: s.worldFile,
	})
	if err != nil {
		return jsonInternalServerError("could not create session: %v", err)
	}

	ls, err := s.liveFor(req.Context(), sess)
	if err != nil {
		return jsonInternalServerError("could not start game for session %s: %v", sess.ID, err)
	}

	resp := SessionCreatedModel{
		SessionModel: s.sessionModel(sess, ls),
		Output:       ls.Intro(),
	}

	return jsonCreated(resp, "session %s created", sess.ID)
}

func (s *Server) epListSessions(req *http.Request) EndpointResult {
	all, err := s.db.Sessions().GetAll(req.Context())
	if err != nil {
		return jsonInternalServerError("could not list sessions: %v", err)
	}

	resp := make([]SessionModel, 0, len(all))
	for _, sess := range all {
		resp = append(resp, SessionModel{
			ID:      sess.ID.String(),
			Created: sess.Created,
		})
	}

	return jsonOK(resp)
}

func (s *Server) epGetSession(req *http.Request) EndpointResult {
	sess, res := s.sessionFromURL(req)
	if res != nil {
		return *res
	}

	ls, err := s.liveFor(req.Context(), sess)
	if err != nil {
		return jsonInternalServerError("could not load game for session %s: %v", sess.ID, err)
	}

	return jsonOK(s.sessionModel(sess, ls))
}

func (s *Server) epDeleteSession(req *http.Request) EndpointResult {
	sess, res := s.sessionFromURL(req)
	if res != nil {
		return *res
	}

	if _, err := s.db.Sessions().Delete(req.Context(), sess.ID); err != nil {
		return jsonInternalServerError("could not delete session %s: %v", sess.ID, err)
	}
	s.dropLive(sess.ID)

	return jsonNoContent("session %s deleted", sess.ID)
}

func (s *Server) epCreateCommand(req *http.Request) EndpointResult {
	sess, res := s.sessionFromURL(req)
	if res != nil {
		return *res
	}

	var body CommandRequestBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return jsonBadRequest("Malformed request body", "unmarshal command body: %v", err)
	}
	if body.Input == "" {
		return jsonBadRequest("Command input cannot be empty")
	}

	ls, err := s.liveFor(req.Context(), sess)
	if err != nil {
		return jsonInternalServerError("could not load game for session %s: %v", sess.ID, err)
	}

	output := ls.Execute(body.Input)

	cmd, err := s.db.Commands().Create(req.Context(), dao.Command{
		SessionID: sess.ID,
		Input:     body.Input,
		Output:    output,
	})
	if err != nil {
		return jsonInternalServerError("could not save command for session %s: %v", sess.ID, err)
	}

	return jsonCreated(commandModel(cmd), "session %s command %d", sess.ID, cmd.Seq)
}

func (s *Server) epListCommands(req *http.Request) EndpointResult {
	sess, res := s.sessionFromURL(req)
	if res != nil {
		return *res
	}

	all, err := s.db.Commands().GetAllBySession(req.Context(), sess.ID)
	if err != nil {
		return jsonInternalServerError("could not list commands for session %s: %v", sess.ID, err)
	}

	resp := make([]CommandModel, 0, len(all))
	for _, cmd := range all {
		resp = append(resp, commandModel(cmd))
	}

	return jsonOK(resp)
}

func (s *Server) epGetInfo(req *http.Request) EndpointResult {
	return jsonOK(InfoModel{
		Version:       version.Current,
		ServerVersion: version.ServerCurrent,
		WorldFile:     s.worldFile,
	})
}

// sessionFromURL loads the session identified by the {id} URL parameter. The
// second return value is non-nil when the request cannot proceed and is the
// result to answer with.
func (s *Server) sessionFromURL(req *http.Request) (dao.Session, *EndpointResult) {
	idStr := chi.URLParam(req, "id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		res := jsonBadRequest("Session ID is not valid", "bad session ID %q", idStr)
		return dao.Session{}, &res
	}

	sess, err := s.db.Sessions().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			res := jsonNotFound("no session %s", id)
			return dao.Session{}, &res
		}
		res := jsonInternalServerError("could not get session %s: %v", id, err)
		return dao.Session{}, &res
	}

	return sess, nil
}

func (s *Server) sessionModel(sess dao.Session, ls *liveSession) SessionModel {
	score, moves := ls.Progress()
	return SessionModel{
		ID:      sess.ID.String(),
		Created: sess.Created,
		Room:    ls.RoomName(),
		Score:   score,
		Moves:   moves,
	}
}

func commandModel(cmd dao.Command) CommandModel {
	return CommandModel{
		ID:      cmd.ID.String(),
		Seq:     cmd.Seq,
		Input:   cmd.Input,
		Output:  cmd.Output,
		Created: cmd.Created,
	}
}
