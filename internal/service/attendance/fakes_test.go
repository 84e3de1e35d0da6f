package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/jackc/pgx/v5"
)

// memStore backs both tracker repositories. Create enforces the same one-open-record
// rules as the partial unique indexes in the real schema unless withoutUniqueIndexes
// is set, which leaves the per-user lock as the only guard.
type memStore struct {
	mu                   sync.Mutex
	seq                  int
	attendances          []attendance.AttendanceRecord
	visits               []attendance.OutletVisitRecord
	withoutUniqueIndexes bool
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) openVisitCount(userID string, outletID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.visits {
		if v.UserID == userID && v.OutletID == outletID && v.IsOpen() {
			n++
		}
	}
	return n
}

func (s *memStore) openAttendanceCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.attendances {
		if a.UserID == userID && a.IsOpen() {
			n++
		}
	}
	return n
}

type memAttendanceRepo struct{ *memStore }

func (r memAttendanceRepo) GetOpen(ctx context.Context, userID string) (attendance.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attendances {
		if a.UserID == userID && a.IsOpen() {
			return a, nil
		}
	}
	return attendance.AttendanceRecord{}, pgx.ErrNoRows
}

func (r memAttendanceRepo) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attendances {
		if !r.withoutUniqueIndexes && a.UserID == rec.UserID && a.IsOpen() {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyPunchedIn
		}
	}
	rec.ID = r.nextID("att")
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	r.attendances = append(r.attendances, rec)
	return rec, nil
}

func (r memAttendanceRepo) Close(ctx context.Context, id string, at time.Time, location *attendance.Location, autoClosed bool) (attendance.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.attendances {
		if a.ID == id && a.IsOpen() {
			a.PunchOutTime = &at
			a.PunchOutLocation = location
			a.AutoClosed = autoClosed
			r.attendances[i] = a
			return a, nil
		}
	}
	return attendance.AttendanceRecord{}, pgx.ErrNoRows
}

func (r memAttendanceRepo) ListByUser(ctx context.Context, userID string, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []attendance.AttendanceRecord
	for _, a := range r.attendances {
		if a.UserID == userID {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PunchInTime.After(*all[j].PunchInTime) })
	start := min((filter.Page-1)*filter.Limit, len(all))
	end := min(start+filter.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r memAttendanceRepo) ListStaleOpen(ctx context.Context, before time.Time, limit int) ([]attendance.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stale []attendance.AttendanceRecord
	for _, a := range r.attendances {
		if a.IsOpen() && a.PunchInTime.Before(before) && len(stale) < limit {
			stale = append(stale, a)
		}
	}
	return stale, nil
}

type memVisitRepo struct{ *memStore }

func (r memVisitRepo) GetOpen(ctx context.Context, userID string, outletID string) (attendance.OutletVisitRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.visits {
		if v.UserID == userID && v.OutletID == outletID && v.IsOpen() {
			return v, nil
		}
	}
	return attendance.OutletVisitRecord{}, pgx.ErrNoRows
}

func (r memVisitRepo) ListOpen(ctx context.Context, userID string) ([]attendance.OutletVisitRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	open := []attendance.OutletVisitRecord{}
	for _, v := range r.visits {
		if v.UserID == userID && v.IsOpen() {
			open = append(open, v)
		}
	}
	return open, nil
}

func (r memVisitRepo) Create(ctx context.Context, rec attendance.OutletVisitRecord) (attendance.OutletVisitRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.visits {
		if !r.withoutUniqueIndexes && v.UserID == rec.UserID && v.OutletID == rec.OutletID && v.IsOpen() {
			return attendance.OutletVisitRecord{}, attendance.ErrAlreadyCheckedIn
		}
	}
	rec.ID = r.nextID("visit")
	r.visits = append(r.visits, rec)
	return rec, nil
}

func (r memVisitRepo) Close(ctx context.Context, id string, at time.Time, location *attendance.Location, autoClosed bool) (attendance.OutletVisitRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range r.visits {
		if v.ID == id && v.IsOpen() {
			v.CheckOutTime = &at
			v.CheckOutLocation = location
			v.AutoClosed = autoClosed
			r.visits[i] = v
			return v, nil
		}
	}
	return attendance.OutletVisitRecord{}, pgx.ErrNoRows
}

func (r memVisitRepo) ListByUser(ctx context.Context, userID string, filter attendance.VisitFilter) ([]attendance.OutletVisitRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []attendance.OutletVisitRecord
	for _, v := range r.visits {
		if v.UserID == userID && (filter.OutletID == nil || v.OutletID == *filter.OutletID) {
			all = append(all, v)
		}
	}
	return all, int64(len(all)), nil
}

// memLocker serialises per user with one mutex per user id.
type memLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	calls int
}

func newMemLocker() *memLocker {
	return &memLocker{locks: map[string]*sync.Mutex{}}
}

func (l *memLocker) WithUserLock(ctx context.Context, userID string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	l.calls++
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn(ctx)
}

func (l *memLocker) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

type fakeOutlets map[string]outlet.Outlet

func (f fakeOutlets) GetByID(ctx context.Context, id string) (outlet.Outlet, error) {
	o, ok := f[id]
	if !ok {
		return outlet.Outlet{}, pgx.ErrNoRows
	}
	return o, nil
}

type publishedEvent struct {
	userID string
	event  string
	data   interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(userID string, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{userID: userID, event: eventType, data: data})
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.event)
	}
	return names
}
