package game

import (
	"time"

	"github.com/vancomm/minesweeper-demo/internal/actionlog"
)

// Recorder applies live actions to a session and appends every accepted one
// to a log, stamped with the time since the previous accepted action.
type Recorder struct {
	session *Session
	log     *actionlog.Log
	now     func() time.Time
	last    time.Time
}

func NewRecorder(session *Session, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{
		session: session,
		log:     actionlog.New(),
		now:     now,
		last:    now(),
	}
}

func (r *Recorder) Session() *Session { return r.session }

func (r *Recorder) Log() *actionlog.Log { return r.log }

func (r *Recorder) Apply(a actionlog.Action) (Status, error) {
	status, err := r.session.Apply(a)
	if err != nil {
		return status, err
	}
	t := r.now()
	a.Delay = max(t.Sub(r.last).Seconds(), 0)
	r.last = t
	if err := r.log.Append(a); err != nil {
		return status, err
	}
	return status, nil
}
