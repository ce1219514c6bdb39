package response

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/schoolpay/schoolpay-gobackend/pkg/log"
)

// Response codes and messages shared by every endpoint.
const (
	CodeSuccess      = "RESPONSE_SUCCESS"
	MsgSuccess       = "Request served successfully."
	CodeBadRequest   = "BAD_REQUEST"
	MsgBadRequest    = "The request could not be understood by the server due to malformed syntax."
	CodeUnauthorized = "UNAUTHORIZED"
	MsgUnauthorized  = "This user is not authorized to perform this action."
	CodeNotFound     = "NOT_FOUND"
	MsgNotFound      = "Could not find the requested resource."
	CodeInternal     = "INTERNAL_SERVER_ERROR"
	MsgInternal      = "Oops, Something went wrong!"

	CodeStatusNotFound = "STATUS_NOT_FOUND"
	MsgStatusNotFound  = "Oops, could not find the status!"
)

// Envelope is the uniform body every endpoint responds with. Type tags the
// shape of Data so clients can dispatch without probing it.
type Envelope struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Type    string      `json:"type"`
	Data    interface{} `json:"data"`
}

// Success writes a 200 envelope around data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, Envelope{
		Code:    CodeSuccess,
		Message: MsgSuccess,
		Type:    kindOf(data),
		Data:    data,
	})
}

// Error writes an error envelope with a null data field.
func Error(w http.ResponseWriter, status int, code, message string) {
	write(w, status, Envelope{
		Code:    code,
		Message: message,
		Type:    "undefined",
		Data:    nil,
	})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.GetLogger().Error().Err(err).Msg("failed to encode response")
	}
}

func kindOf(data interface{}) string {
	if data == nil {
		return "undefined"
	}
	switch reflect.ValueOf(data).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
