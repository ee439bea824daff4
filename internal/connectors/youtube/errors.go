package youtube

import (
	"errors"

	"google.golang.org/api/googleapi"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

// Provider reason codes that end pagination for a video permanently.
// Anything else is treated as transient: pagination still stops (no
// unbounded retry) but the condition is not recorded as terminal.
const (
	reasonCommentsDisabled   = "commentsDisabled"
	reasonForbidden          = "forbidden"
	reasonQuotaExceeded      = "quotaExceeded"
	reasonKeyInvalid         = "keyInvalid"
	reasonDailyLimitExceeded = "dailyLimitExceeded"
)

// classifyAPIError maps a provider error onto a domain sentinel when
// the reason is a known permanent condition. Unknown errors pass
// through unchanged.
func classifyAPIError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	for _, item := range gerr.Errors {
		switch item.Reason {
		case reasonCommentsDisabled:
			return domain.ErrCommentsDisabled
		case reasonQuotaExceeded, reasonDailyLimitExceeded:
			return domain.ErrQuotaExceeded
		case reasonKeyInvalid:
			return domain.ErrCredentialMissing
		case reasonForbidden:
			return domain.ErrCommentsDisabled
		}
	}
	if gerr.Code == 429 {
		return domain.ErrRateLimited
	}
	return err
}

// IsPermanent reports whether err is a terminal per-video condition:
// retrying the same video cannot succeed within this run.
func IsPermanent(err error) bool {
	return errors.Is(err, domain.ErrCommentsDisabled) ||
		errors.Is(err, domain.ErrQuotaExceeded) ||
		errors.Is(err, domain.ErrCredentialMissing)
}
