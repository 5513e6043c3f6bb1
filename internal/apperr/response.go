package apperr

import (
	"errors"
	"net/http"

	"github.com/2beens/fitbase/pkg"

	log "github.com/sirupsen/logrus"
)

type errorBody struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorBody `json:"error"`
}

// Write renders err as the JSON error envelope. Unclassified errors are logged
// and surfaced as a bare internal error.
func Write(w http.ResponseWriter, r *http.Request, uid string, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Code == Internal {
		log.WithFields(log.Fields{
			"path": r.URL.Path,
			"uid":  uid,
		}).Errorf("request failed: %s", err)
		pkg.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: errorBody{Code: Internal, Message: "internal error"},
		})
		return
	}

	log.WithFields(log.Fields{
		"path": r.URL.Path,
		"uid":  uid,
		"code": appErr.Code,
	}).Debugf("request rejected: %s", appErr.Message)

	pkg.WriteJSON(w, appErr.Code.HTTPStatus(), ErrorResponse{
		Error: errorBody{Code: appErr.Code, Message: appErr.Message},
	})
}
