package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/alexanderramin/donna/internal/domain"
)

var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"quotaExceeded":         true,
	"dailyLimitExceeded":    true,
}

// ClassifyError maps a Google Calendar failure onto the domain error kinds.
// Errors that already carry a kind, and nil, pass through unchanged.
func ClassifyError(op string, err error) error {
	if err == nil || domain.KindOf(err) != nil {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return domain.Authentication(err, "%s: calendar rejected credentials", op)
		case http.StatusTooManyRequests:
			return domain.APILimit(err, "%s: calendar rate limit reached", op)
		case http.StatusForbidden:
			for _, item := range gerr.Errors {
				if rateLimitReasons[item.Reason] {
					return domain.APILimit(err, "%s: calendar quota reached", op)
				}
			}
			return domain.Authentication(err, "%s: calendar access forbidden", op)
		case http.StatusNotFound, http.StatusGone:
			return domain.EventNotFound("%s: event no longer exists", op)
		}
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return domain.Authentication(err, "%s: token refresh failed", op)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid_grant"), strings.Contains(msg, "unauthorized"):
		return domain.Authentication(err, "%s: calendar rejected credentials", op)
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"):
		return domain.APILimit(err, "%s: calendar quota reached", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
