package handler

import "net/http"

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty answers 204 No Content.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

type failResponse struct {
	err error
}

func (f failResponse) Render(http.ResponseWriter, *http.Request) error {
	return f.err
}

// Fail hands err to the error handler without writing anything itself.
func Fail(err error) Response {
	return failResponse{err: err}
}
