package api

import "net/http"

// statusMessages maps HTTP status codes to user-facing text, used when the
// response body carries no message of its own.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Invalid information provided.",
	http.StatusUnauthorized:        "Invalid email or password.",
	http.StatusForbidden:           "Please verify your email address.",
	http.StatusNotFound:            "Service not found.",
	http.StatusConflict:            "Account with this email already exists.",
	http.StatusUnprocessableEntity: "Please check your information and try again.",
	http.StatusInternalServerError: "Server error. Please try again later.",
}

// fallbackMessage covers statuses outside the table.
const fallbackMessage = "Something went wrong. Please try again."

// MessageForStatus returns the user-facing default message for status.
func MessageForStatus(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fallbackMessage
}
