package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/gin-gonic/gin"
)

const retryMessage = "Something went wrong. Please try again."

var statusByKind = map[string]int{
	"validation":      http.StatusBadRequest,
	"unauthenticated": http.StatusUnauthorized,
	"forbidden":       http.StatusForbidden,
	"not_found":       http.StatusNotFound,
	"conflict":        http.StatusConflict,
	"transient_store": http.StatusServiceUnavailable,
}

var sentinels = []error{
	domain.ErrValidation,
	domain.ErrUnauthenticated,
	domain.ErrForbidden,
	domain.ErrNotFound,
	domain.ErrConflict,
}

// writeError renders err as {"success": false, "error": ...} with the status
// code of its kind. Store and unexpected failures never leak their cause.
func writeError(c *gin.Context, err error) {
	kind := domain.ErrorKind(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": publicMessage(err)})
}

func publicMessage(err error) string {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return capitalize(strings.TrimPrefix(err.Error(), sentinel.Error()+": "))
		}
	}
	return retryMessage
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
