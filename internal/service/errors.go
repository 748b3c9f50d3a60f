package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/celerix-dev/celerix-registry/internal/engine"
	"github.com/celerix-dev/celerix-registry/internal/schema"
)

// DefaultInternalErrorMsg is shown to callers in place of internal failures.
const DefaultInternalErrorMsg = "Something went wrong. Please contact admin."

// ClientError is a caller-caused failure whose message is returned verbatim.
type ClientError struct {
	Msg    string
	Status int
}

func (e *ClientError) Error() string { return e.Msg }

func clientErrorf(format string, args ...any) *ClientError {
	return &ClientError{Msg: fmt.Sprintf(format, args...), Status: http.StatusBadRequest}
}

// Translate turns an error from any operation into the message and status code
// sent to the caller. Client errors keep their message and are logged at debug
// level; everything else is logged with its cause and hidden behind the
// generic internal message.
func (s *Service) Translate(err error) (string, int) {
	if err == nil {
		return "", http.StatusOK
	}

	msg, status, ok := clientFacing(err)
	if ok {
		s.log.Debug(msg, "status_code", status, "family", "info")
		return msg, status
	}

	s.log.Error(s.internalMsg,
		"status_code", http.StatusInternalServerError,
		"family", "error",
		"exception", fmt.Sprintf("%+v", err),
	)
	return s.internalMsg, http.StatusInternalServerError
}

func clientFacing(err error) (string, int, bool) {
	var cerr *ClientError
	if errors.As(err, &cerr) {
		status := cerr.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		return cerr.Msg, status, true
	}

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return verr.Error(), http.StatusBadRequest, true
	}

	var kerr *engine.KeyError
	if errors.As(err, &kerr) {
		return kerr.Error(), http.StatusBadRequest, true
	}
	return "", 0, false
}
