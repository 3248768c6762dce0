package processing

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/spacesedan/redditqa/internal/clients"
	"github.com/spacesedan/redditqa/internal/models"
)

const (
	MAX_RESPONSE_BODY_CHARS = 500
	DEBUG_INFO              = "Check error_details for Reddit API response information"
)

func (f *Fetcher) errorRecord(err error, message string, details models.ErrorDetails) *models.ErrorRecord {
	details.Error = err.Error()
	details.ErrorType = ErrorType(err)
	details.RedditReadOnly = f.reddit.ReadOnly()
	details.ClientIDExists = f.reddit.ClientIDConfigured()

	var respErr *clients.ResponseError
	if errors.As(err, &respErr) {
		details.HTTPStatus = respErr.StatusCode
		details.ResponseHeaders = flattenHeaders(respErr.Header)
		details.ResponseBody = truncateChars(respErr.Body, MAX_RESPONSE_BODY_CHARS)
	}

	return &models.ErrorRecord{
		ErrorDetails: details,
		Message:      message,
		DebugInfo:    DEBUG_INFO,
	}
}

// ErrorType names the concrete type of err without its package, skipping
// fmt.Errorf wrappers, e.g. "ResponseError" or "errorString".
func ErrorType(err error) string {
	for err != nil {
		t := reflect.TypeOf(err)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		next := errors.Unwrap(err)
		if t.PkgPath() != "fmt" || next == nil {
			return typeName(t)
		}
		err = next
	}
	return ""
}

func typeName(t reflect.Type) string {
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

func flattenHeaders(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for key, values := range h {
		out[key] = strings.Join(values, ", ")
	}
	return out
}

func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
