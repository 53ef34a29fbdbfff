package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// File response.go has the uniform result type endpoints return, and the
// helpers that build one. The internal message of a result is logged, never
// shown to the client.

// EndpointResult is everything needed to answer one request: status, body,
// and the message to log.
type EndpointResult struct {
	isErr       bool
	status      int
	internalMsg string
	resp        interface{}
}

// jsonOK returns an EndpointResult containing an HTTP-200 along with a more
// detailed internal message, if one is given.
func jsonOK(respObj interface{}, internalMsg ...interface{}) EndpointResult {
	return jsonResponse(http.StatusOK, respObj, fmtInternal("OK", internalMsg))
}

// jsonCreated returns an EndpointResult containing an HTTP-201.
func jsonCreated(respObj interface{}, internalMsg ...interface{}) EndpointResult {
	return jsonResponse(http.StatusCreated, respObj, fmtInternal("created", internalMsg))
}

// jsonNoContent returns an EndpointResult containing an HTTP-204.
func jsonNoContent(internalMsg ...interface{}) EndpointResult {
	return jsonResponse(http.StatusNoContent, nil, fmtInternal("no content", internalMsg))
}

// jsonBadRequest returns an EndpointResult containing an HTTP-400, showing
// userMsg to the client.
func jsonBadRequest(userMsg string, internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusBadRequest, userMsg, fmtInternal("bad request", internalMsg))
}

// jsonNotFound returns an EndpointResult containing an HTTP-404.
func jsonNotFound(internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusNotFound, "The requested resource was not found", fmtInternal("not found", internalMsg))
}

// jsonInternalServerError returns an EndpointResult containing an HTTP-500.
// The detail goes to the log only.
func jsonInternalServerError(internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusInternalServerError, "An internal server error occurred", fmtInternal("internal server error", internalMsg))
}

func fmtInternal(def string, internalMsg []interface{}) string {
	if len(internalMsg) < 1 {
		return def
	}
	format := internalMsg[0].(string)
	return fmt.Sprintf(format, internalMsg[1:]...)
}

func jsonResponse(status int, respObj interface{}, internalMsg string) EndpointResult {
	return EndpointResult{
		status:      status,
		internalMsg: internalMsg,
		resp:        respObj,
	}
}

func jsonErr(status int, userMsg, internalMsg string) EndpointResult {
	return EndpointResult{
		isErr:       true,
		status:      status,
		internalMsg: internalMsg,
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

func (r EndpointResult) writeResponse(w http.ResponseWriter, req *http.Request) {
	// if this hasn't been properly created, output error directly and do not
	// try to read properties
	if r.status == 0 {
		logHTTPResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
		http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
		return
	}

	var respJSON []byte
	if r.status != http.StatusNoContent {
		var err error
		respJSON, err = json.Marshal(r.resp)
		if err != nil {
			jsonErr(http.StatusInternalServerError, "An internal server error occurred",
				"could not marshal JSON response: "+err.Error()).writeResponse(w, req)
			return
		}
	}

	level := "INFO"
	if r.isErr {
		level = "ERROR"
	}
	logHTTPResponse(level, req, r.status, r.internalMsg)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.status)

	if r.status != http.StatusNoContent {
		w.Write(respJSON)
	}
}

func logHTTPResponse(level string, req *http.Request, respStatus int, msg string) {
	if len(level) > 5 {
		level = level[0:5]
	}
	for len(level) < 5 {
		level += " "
	}

	// we don't really care about the ephemeral port from the client end
	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]

	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}
