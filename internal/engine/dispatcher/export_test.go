package dispatcher

import "time"

// SetNow replaces the clock used to compute the schedule time.
func (d *Dispatcher) SetNow(now func() time.Time) {
	d.now = now
}
