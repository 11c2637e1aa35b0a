package warehouse

import "errors"

// ErrConnectionLost marks a query failure caused by a closed, broken or never
// opened warehouse session rather than by the statement itself. Drivers wrap
// it so callers can distinguish "re-open and retry" from "the SQL is wrong".
var ErrConnectionLost = errors.New("warehouse connection lost")
