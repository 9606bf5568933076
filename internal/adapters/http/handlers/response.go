package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API reply. Status is the HTTP reason in
// upper snake case. On success Message repeats Status.
type Response struct {
	Code    int    `json:"code" example:"200"`
	Status  string `json:"status" example:"OK"`
	Message string `json:"message" example:"OK"`
	Data    any    `json:"data"`
}

func StatusName(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "UNKNOWN"
	}
	text = strings.ReplaceAll(text, "-", " ")
	text = strings.ReplaceAll(text, "'", "")
	return strings.ToUpper(strings.Join(strings.Fields(text), "_"))
}

func Respond(c *gin.Context, code int, data any) {
	status := StatusName(code)
	c.JSON(code, Response{Code: code, Status: status, Message: status, Data: data})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Code: code, Status: StatusName(code), Message: message})
}
