package httputil

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

const jsonContentType = "application/json; charset=utf-8"

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	resp := ErrorResponse{Code: statusCode, Message: message}
	if details != nil {
		resp.Details = details.Error()
	}
	WriteJSONResponse(w, statusCode, resp)
}

// WriteJSONResponse writes body with the given status. A nil body sends headers only.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(statusCode)
	if body == nil {
		return
	}
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(body)
}

// WriteTextResponse streams plain text produced by render. Headers are sent
// before render runs, so render errors can only be returned to the caller.
func WriteTextResponse(w http.ResponseWriter, statusCode int, render func(io.Writer) error) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	return render(w)
}

// ReadJSON decodes the request body into dst.
func ReadJSON(r *http.Request, dst any) error {
	return sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst)
}
