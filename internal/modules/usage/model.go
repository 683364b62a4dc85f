package usage

import "errors"

// ErrQuotaExceeded is returned when a client has no plan generations left this month.
var ErrQuotaExceeded = errors.New("monthly plan quota exceeded")

// DefaultPlans is the number of plan generations granted per client per month.
const DefaultPlans = 50
