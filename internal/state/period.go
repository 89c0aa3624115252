package state

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

// PeriodFilter resolves the active (month, year) window: an explicit
// user-chosen pair, or the current calendar month and year by default.
type PeriodFilter struct {
	explicit *core.Period
}

// Set fixes an explicit period. Values pass through verbatim; an
// out-of-range month simply matches nothing downstream.
func (f *PeriodFilter) Set(month, year int) {
	f.explicit = &core.Period{Month: month, Year: year}
}

// Clear drops the explicit filter; the next Resolve falls back to the
// current calendar period.
func (f *PeriodFilter) Clear() {
	f.explicit = nil
}

// Explicit returns the explicit period, or nil when none is set. The
// budgets fetch forwards it as query parameters only when non-nil.
func (f *PeriodFilter) Explicit() *core.Period {
	if f.explicit == nil {
		return nil
	}
	p := *f.explicit
	return &p
}

// Resolve returns the active period at the given instant.
func (f *PeriodFilter) Resolve(now time.Time) core.Period {
	if f.explicit != nil {
		return *f.explicit
	}
	return core.Period{Month: int(now.Month()), Year: now.Year()}
}

// Label phrases the active period for display, distinguishing an explicit
// filter from the current-period default.
func (f *PeriodFilter) Label(now time.Time) string {
	if f.explicit != nil {
		return fmt.Sprintf("Month %d  Year %d", f.explicit.Month, f.explicit.Year)
	}
	return fmt.Sprintf("Current month %d  year %d", int(now.Month()), now.Year())
}
