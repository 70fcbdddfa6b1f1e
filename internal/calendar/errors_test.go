package calendar

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/alexanderramin/donna/internal/domain"
)

func TestClassifyError_GoogleStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, domain.ErrAuthentication},
		{"too many requests", &googleapi.Error{Code: http.StatusTooManyRequests}, domain.ErrAPILimit},
		{"rate limit reason", &googleapi.Error{
			Code:   http.StatusForbidden,
			Errors: []googleapi.ErrorItem{{Reason: "rateLimitExceeded"}},
		}, domain.ErrAPILimit},
		{"quota reason", &googleapi.Error{
			Code:   http.StatusForbidden,
			Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}},
		}, domain.ErrAPILimit},
		{"forbidden without quota reason", &googleapi.Error{
			Code:   http.StatusForbidden,
			Errors: []googleapi.ErrorItem{{Reason: "insufficientPermissions"}},
		}, domain.ErrAuthentication},
		{"not found", &googleapi.Error{Code: http.StatusNotFound}, domain.ErrEventNotFound},
		{"gone", &googleapi.Error{Code: http.StatusGone}, domain.ErrEventNotFound},
		{"token refresh", &oauth2.RetrieveError{Response: &http.Response{StatusCode: 400}}, domain.ErrAuthentication},
		{"invalid_grant text", errors.New(`oauth2: "invalid_grant" "Token has been expired or revoked."`), domain.ErrAuthentication},
		{"quota text", errors.New("Quota exceeded for quota metric"), domain.ErrAPILimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError("list events", tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, domain.ErrCalendar)
		})
	}
}

func TestClassifyError_Passthrough(t *testing.T) {
	assert.NoError(t, ClassifyError("op", nil))

	typed := domain.EventNotFound("gone")
	assert.Same(t, typed, ClassifyError("op", typed))

	other := errors.New("connection reset by peer")
	got := ClassifyError("insert event", other)
	assert.ErrorIs(t, got, other)
	assert.Nil(t, domain.KindOf(got))
	assert.Equal(t, "insert event: connection reset by peer", got.Error())
}
