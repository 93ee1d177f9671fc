package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tableflip.dev/dayplan/pkg/ai"
	"tableflip.dev/dayplan/pkg/cache"
	"tableflip.dev/dayplan/pkg/gateway"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeline"
)

type call struct {
	Method string
	ID     string
	Patch  task.Patch
}

type memoryGateway struct {
	mu      sync.Mutex
	counter int
	tasks   []task.Task
	calls   []call
	fail    error
	// emptyCreate acknowledges creates without returning the record.
	emptyCreate bool
}

func newMemoryGateway(tasks ...task.Task) *memoryGateway {
	return &memoryGateway{tasks: task.Clone(tasks)}
}

func (m *memoryGateway) record(c call) {
	m.calls = append(m.calls, c)
}

func (m *memoryGateway) GetAll(context.Context) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(call{Method: "GET"})
	if m.fail != nil {
		return nil, m.fail
	}
	return task.Clone(m.tasks), nil
}

func (m *memoryGateway) Create(_ context.Context, d task.Draft) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(call{Method: "POST"})
	if m.fail != nil {
		return nil, m.fail
	}
	m.counter++
	t := d.WithID(fmt.Sprintf("srv-%d", m.counter))
	m.tasks = append(m.tasks, t)
	if m.emptyCreate {
		return &task.Task{}, nil
	}
	return &t, nil
}

func (m *memoryGateway) Update(_ context.Context, id string, p task.Patch) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(call{Method: "PUT", ID: id, Patch: p})
	if m.fail != nil {
		return nil, m.fail
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i] = p.Apply(m.tasks[i])
			t := m.tasks[i]
			return &t, nil
		}
	}
	return &task.Task{}, nil
}

func (m *memoryGateway) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(call{Method: "DELETE", ID: id})
	if m.fail != nil {
		return m.fail
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryGateway) callsFor(method string) []call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []call
	for _, c := range m.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

type fakeAssistant struct {
	parsed     ai.Parsed
	suggestion string
	image      string
	parsedWith string
}

func (f *fakeAssistant) ParseTask(_ context.Context, input, refDate string) ai.Parsed {
	f.parsedWith = refDate
	if f.parsed.Title == "" {
		return ai.Parsed{Title: input}
	}
	return f.parsed
}

func (f *fakeAssistant) Suggest(context.Context, []task.Task) string {
	return f.suggestion
}

func (f *fakeAssistant) JournalImage(context.Context, []task.Task, string) string {
	return f.image
}

type memoryDays struct {
	days map[string]store.Day
}

func (m *memoryDays) Day(date string) (store.Day, bool) {
	d, ok := m.days[date]
	return d, ok
}

func (m *memoryDays) SaveDay(date string, d store.Day) error {
	if m.days == nil {
		m.days = make(map[string]store.Day)
	}
	m.days[date] = d
	return nil
}

func clockAt(year int, month time.Month, day, hour, min int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, hour, min, 0, 0, time.Local)
	}
}

func newPlanner(t *testing.T, g gateway.Gateway) (*Planner, *[]Notice) {
	t.Helper()
	var notices []Notice
	p := &Planner{
		Cache:   cache.New(),
		Gateway: g,
		Now:     clockAt(2024, 5, 21, 14, 30),
		Notify:  func(n Notice) { notices = append(notices, n) },
	}
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return p, &notices
}

var seed = []task.Task{
	{ID: "a", Title: "晨跑", StartTime: "07:00", EndTime: "08:00", Category: task.Health, Priority: task.Low, Date: "2024-05-21"},
	{ID: "b", Title: "写周报", StartTime: "10:00", EndTime: "11:00", Category: task.Work, Priority: task.High, Date: "2024-05-21"},
	{ID: "c", Title: "看书", StartTime: "20:00", EndTime: "21:00", Category: task.Study, Priority: task.Medium, Date: "2024-05-22"},
}

func TestToggleConfirms(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, notices := newPlanner(t, g)

	if err := p.Toggle(context.Background(), "a"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got, _ := p.Cache.Get("a")
	if !got.Completed {
		t.Fatalf("expected a to be completed")
	}
	puts := g.callsFor("PUT")
	if len(puts) != 1 || puts[0].ID != "a" {
		t.Fatalf("expected one update for a, got %+v", puts)
	}
	p0 := puts[0].Patch
	if p0.Completed == nil || !*p0.Completed || p0.Title != nil || p0.StartTime != nil {
		t.Fatalf("expected only completed to be sent, got %+v", p0)
	}
	if len(*notices) != 0 {
		t.Fatalf("unexpected notices %v", *notices)
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	p, _ := newPlanner(t, newMemoryGateway(seed...))
	before := p.Cache.Snapshot()
	for i := 0; i < 2; i++ {
		if err := p.Toggle(context.Background(), "b"); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	if after := p.Cache.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("double toggle changed the store:\n%+v\n%+v", before, after)
	}
}

func TestToggleRollsBackOnFailure(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, notices := newPlanner(t, g)
	before := p.Cache.Snapshot()

	g.fail = gateway.ErrTransport
	m := p.BeginToggle("a")
	if m.State() != Applied {
		t.Fatalf("expected applied, got %s", m.State())
	}
	if got, _ := p.Cache.Get("a"); !got.Completed {
		t.Fatalf("expected optimistic completion before settling")
	}
	err := m.Settle(context.Background())
	if !errors.Is(err, gateway.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if m.State() != RolledBack {
		t.Fatalf("expected rolled back, got %s", m.State())
	}
	if after := p.Cache.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("rollback did not restore the store:\n%+v\n%+v", before, after)
	}
	if len(*notices) != 1 || (*notices)[0] != NoticeSyncFailed {
		t.Fatalf("expected sync notice, got %v", *notices)
	}
	if err := m.Settle(context.Background()); err != nil {
		t.Fatalf("second settle should be a no-op, got %v", err)
	}
}

func TestBusinessFailureRollsBackToo(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, notices := newPlanner(t, g)
	before := p.Cache.Snapshot()
	g.fail = gateway.ErrBusiness
	if err := p.Toggle(context.Background(), "b"); err == nil {
		t.Fatalf("expected error")
	}
	if !reflect.DeepEqual(before, p.Cache.Snapshot()) {
		t.Fatalf("expected rollback on business failure")
	}
	if len(*notices) != 1 {
		t.Fatalf("expected one notice, got %v", *notices)
	}
}

func TestAbsentIDIsNoop(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, notices := newPlanner(t, g)
	if m := p.BeginToggle("zzz"); m != nil {
		t.Fatalf("expected nil mutation for unknown id")
	}
	if err := p.Toggle(context.Background(), "zzz"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if err := p.Delete(context.Background(), "zzz"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if len(g.callsFor("PUT"))+len(g.callsFor("DELETE")) != 0 || len(*notices) != 0 {
		t.Fatalf("expected no gateway calls or notices")
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, _ := newPlanner(t, g)

	if !p.RequestDelete("b") {
		t.Fatalf("expected request to open the dialog")
	}
	if id, open := p.PendingDelete(); !open || id != "b" {
		t.Fatalf("expected pending delete for b, got %q %v", id, open)
	}
	if err := p.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, ok := p.Cache.Get("b"); ok {
		t.Fatalf("expected b to be removed")
	}
	if _, open := p.PendingDelete(); open {
		t.Fatalf("expected dialog to close")
	}
	dels := g.callsFor("DELETE")
	if len(dels) != 1 || dels[0].ID != "b" {
		t.Fatalf("expected exactly one DELETE for b, got %+v", dels)
	}

	if err := p.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("confirm without pending: %v", err)
	}
	if len(g.callsFor("DELETE")) != 1 {
		t.Fatalf("confirm with nothing pending must not call the gateway")
	}
}

func TestCancelDelete(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, _ := newPlanner(t, g)
	if p.RequestDelete("missing") {
		t.Fatalf("expected request for unknown id to be refused")
	}
	p.RequestDelete("a")
	p.CancelDelete()
	if _, open := p.PendingDelete(); open {
		t.Fatalf("expected dialog to close")
	}
	if _, ok := p.Cache.Get("a"); !ok || len(g.callsFor("DELETE")) != 0 {
		t.Fatalf("cancel must not delete")
	}
}

func TestFailedDeleteRestoresAndClosesDialog(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, notices := newPlanner(t, g)
	before := p.Cache.Snapshot()
	g.fail = gateway.ErrStatus

	p.RequestDelete("a")
	if err := p.ConfirmDelete(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if !reflect.DeepEqual(before, p.Cache.Snapshot()) {
		t.Fatalf("expected the task to come back")
	}
	if _, open := p.PendingDelete(); open {
		t.Fatalf("expected dialog to close after failure")
	}
	if len(*notices) != 1 || (*notices)[0] != NoticeDeleteFailed {
		t.Fatalf("expected delete notice, got %v", *notices)
	}
}

func TestEditRollsBack(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, _ := newPlanner(t, g)
	title := "写月报"
	if err := p.Edit(context.Background(), "b", task.Patch{Title: &title}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got, _ := p.Cache.Get("b"); got.Title != title {
		t.Fatalf("expected edited title, got %q", got.Title)
	}

	g.fail = gateway.ErrTransport
	other := "放弃"
	if err := p.Edit(context.Background(), "b", task.Patch{Title: &other}); err == nil {
		t.Fatalf("expected error")
	}
	if got, _ := p.Cache.Get("b"); got.Title != title {
		t.Fatalf("expected rollback to %q, got %q", title, got.Title)
	}
	if m := p.BeginEdit("b", task.Patch{}); m != nil {
		t.Fatalf("empty patch should not start a mutation")
	}
}

func TestQuickAddWithParser(t *testing.T) {
	g := newMemoryGateway()
	p, _ := newPlanner(t, g)
	if err := p.SelectDate("2024-05-21"); err != nil {
		t.Fatalf("select: %v", err)
	}
	work, medium := task.Work, task.Medium
	asst := &fakeAssistant{parsed: ai.Parsed{Title: "会议", StartTime: "09:00", EndTime: "10:00", Category: &work, Priority: &medium}}
	p.Assistant = asst

	created, err := p.QuickAdd(context.Background(), "会议 9点到10点")
	if err != nil {
		t.Fatalf("quick add: %v", err)
	}
	want := task.Task{ID: "srv-1", Title: "会议", StartTime: "09:00", EndTime: "10:00", Category: task.Work, Priority: task.Medium, Date: "2024-05-21"}
	if *created != want {
		t.Fatalf("unexpected created task %+v", created)
	}
	if asst.parsedWith != "2024-05-21" {
		t.Fatalf("expected parse relative to selected date, got %q", asst.parsedWith)
	}
	visible := p.Visible()
	if len(visible) != 1 || visible[0] != want {
		t.Fatalf("unexpected store %+v", visible)
	}

	b, ok := timeline.DefaultAxis().Band(visible[0])
	if !ok || b.Top != 240 || b.Height != 80 {
		t.Fatalf("unexpected band %+v", b)
	}
}

func TestQuickAddDefaults(t *testing.T) {
	p, _ := newPlanner(t, newMemoryGateway())

	// Today at 14:30: next whole hour.
	created, err := p.QuickAdd(context.Background(), "  散步  ")
	if err != nil {
		t.Fatalf("quick add: %v", err)
	}
	if created.Title != "散步" || created.StartTime != "15:00" || created.EndTime != "16:00" ||
		created.Category != task.Life || created.Priority != task.Medium || created.Completed || created.Date != "2024-05-21" {
		t.Fatalf("unexpected defaults %+v", created)
	}

	// Another day: 09:00.
	p.ShiftDate(1)
	created, err = p.QuickAdd(context.Background(), "买菜")
	if err != nil {
		t.Fatalf("quick add: %v", err)
	}
	if created.StartTime != "09:00" || created.EndTime != "10:00" || created.Date != "2024-05-22" {
		t.Fatalf("unexpected other-day defaults %+v", created)
	}

	// Late evening wraps.
	p.Today()
	p.Now = clockAt(2024, 5, 21, 23, 10)
	created, err = p.QuickAdd(context.Background(), "睡觉")
	if err != nil {
		t.Fatalf("quick add: %v", err)
	}
	if created.StartTime != "00:00" || created.EndTime != "01:00" {
		t.Fatalf("expected wrap past midnight, got %+v", created)
	}
}

func TestQuickAddCrossDay(t *testing.T) {
	p, _ := newPlanner(t, newMemoryGateway())
	p.Assistant = &fakeAssistant{parsed: ai.Parsed{Title: "牙医", Date: "2024-05-23", StartTime: "15:00"}}
	created, err := p.QuickAdd(context.Background(), "后天下午三点看牙医")
	if err != nil {
		t.Fatalf("quick add: %v", err)
	}
	// End keeps its default since the parser did not supply one.
	if created.Date != "2024-05-23" || created.StartTime != "15:00" || created.EndTime != "16:00" {
		t.Fatalf("unexpected cross-day task %+v", created)
	}
	if len(p.Visible()) != 0 {
		t.Fatalf("cross-day task should not show on the selected date")
	}
	if p.Cache.Len() != 1 {
		t.Fatalf("expected the task to be cached")
	}
}

func TestQuickAddFailureLeavesStore(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, _ := newPlanner(t, g)
	before := p.Cache.Snapshot()

	if _, err := p.QuickAdd(context.Background(), "   "); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	g.fail = gateway.ErrBusiness
	if _, err := p.QuickAdd(context.Background(), "x"); !errors.Is(err, gateway.ErrBusiness) {
		t.Fatalf("expected business error, got %v", err)
	}
	if !reflect.DeepEqual(before, p.Cache.Snapshot()) {
		t.Fatalf("failed create must leave the store unchanged")
	}
}

func TestQuickAddEmptyAckReloads(t *testing.T) {
	g := newMemoryGateway()
	g.emptyCreate = true
	p, _ := newPlanner(t, g)
	if _, err := p.QuickAdd(context.Background(), "喝水"); err != nil {
		t.Fatalf("quick add: %v", err)
	}
	visible := p.Visible()
	if len(visible) != 1 || visible[0].ID != "srv-1" {
		t.Fatalf("expected reloaded task with server id, got %+v", visible)
	}
}

func TestQuickAddNullRecordLeavesStore(t *testing.T) {
	var gets int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			atomic.AddInt32(&gets, 1)
			_, _ = io.WriteString(w, `{"code":200,"data":[{"id":"x","title":"other","startTime":"09:00","endTime":"10:00","category":"工作","priority":2,"date":"2024-05-21"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"code":200,"data":null}`)
	}))
	defer srv.Close()

	p, notices := newPlanner(t, gateway.NewClient(srv.URL))
	before := p.Cache.Snapshot()

	created, err := p.QuickAdd(context.Background(), "会议")
	if !errors.Is(err, gateway.ErrMalformed) || created != nil {
		t.Fatalf("expected malformed create, got %+v %v", created, err)
	}
	if n := atomic.LoadInt32(&gets); n != 1 {
		t.Fatalf("expected no reload after a null record, got %d fetches", n)
	}
	if !reflect.DeepEqual(before, p.Cache.Snapshot()) {
		t.Fatalf("null record must leave the store unchanged")
	}

	mut := p.BeginToggle("x")
	if err := mut.Settle(context.Background()); !errors.Is(err, gateway.ErrMalformed) {
		t.Fatalf("expected malformed update, got %v", err)
	}
	if !reflect.DeepEqual(before, p.Cache.Snapshot()) || len(*notices) != 1 {
		t.Fatalf("null update must roll back with a notice, got %+v %v", p.Cache.Snapshot(), *notices)
	}
}

func TestLoadFailureKeepsCache(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, _ := newPlanner(t, g)
	g.fail = gateway.ErrTransport
	if err := p.Load(context.Background()); !errors.Is(err, gateway.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if p.Cache.Len() != 3 {
		t.Fatalf("expected cache to keep its tasks")
	}
}

func TestDateSelection(t *testing.T) {
	p, _ := newPlanner(t, newMemoryGateway(seed...))
	if got := p.Selected(); got != "2024-05-21" {
		t.Fatalf("expected today, got %s", got)
	}
	if len(p.Visible()) != 2 {
		t.Fatalf("expected two tasks today")
	}
	if got := p.ShiftDate(1); got != "2024-05-22" {
		t.Fatalf("unexpected shift %s", got)
	}
	if v := p.Visible(); len(v) != 1 || v[0].ID != "c" {
		t.Fatalf("unexpected visible %+v", v)
	}
	if p.IsToday() {
		t.Fatalf("expected not today")
	}
	if err := p.SelectDate("tomorrow"); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if got := p.Today(); got != "2024-05-21" || !p.IsToday() {
		t.Fatalf("expected jump to today, got %s", got)
	}
}

func TestSuggest(t *testing.T) {
	p, _ := newPlanner(t, newMemoryGateway(seed...))
	if got := p.Suggest(context.Background()); got != SuggestNoKey {
		t.Fatalf("expected configure prompt, got %q", got)
	}
	p.Assistant = &fakeAssistant{suggestion: "记得喝水"}
	if got := p.Suggest(context.Background()); got != "记得喝水" {
		t.Fatalf("unexpected suggestion %q", got)
	}
	_ = p.SelectDate("2024-06-01")
	if got := p.Suggest(context.Background()); got != SuggestEmptyDay {
		t.Fatalf("expected empty-day prompt, got %q", got)
	}
}

func TestJournalEligible(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, _ := newPlanner(t, g)
	if p.JournalEligible() {
		t.Fatalf("afternoon should not be eligible")
	}
	p.Now = clockAt(2024, 5, 21, 19, 0)
	if p.JournalEligible() {
		t.Fatalf("nothing completed yet")
	}
	if err := p.Toggle(context.Background(), "a"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !p.JournalEligible() {
		t.Fatalf("expected eligible in the evening with a completed task")
	}
	p.ShiftDate(-1)
	if p.JournalEligible() {
		t.Fatalf("only today is eligible")
	}
}

func TestJournal(t *testing.T) {
	p, _ := newPlanner(t, newMemoryGateway(seed...))
	if _, err := p.Journal(context.Background(), task.Happy, "x"); !errors.Is(err, ErrNoJournal) {
		t.Fatalf("expected ErrNoJournal, got %v", err)
	}
	days := &memoryDays{}
	p.Days = days
	p.Assistant = &fakeAssistant{image: "data:image/png;base64,QUJD"}

	day, err := p.Journal(context.Background(), task.Happy, "很充实")
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	want := store.Day{Reflection: "很充实", Mood: task.Happy, Image: "data:image/png;base64,QUJD"}
	if day != want || days.days["2024-05-21"] != want {
		t.Fatalf("unexpected journal %+v", day)
	}

	// No image this time keeps the earlier one.
	p.Assistant = &fakeAssistant{}
	day, err = p.Journal(context.Background(), task.Neutral, "")
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if day.Image != want.Image || day.Reflection != "很充实" || day.Mood != task.Neutral {
		t.Fatalf("unexpected update %+v", day)
	}
	if got, ok := p.Day(); !ok || got != day {
		t.Fatalf("unexpected saved day %+v %v", got, ok)
	}
}

type memoryBackup struct {
	saved []task.Task
	n     int
}

func (m *memoryBackup) SaveBackup(tasks []task.Task) error {
	m.n++
	m.saved = tasks
	return nil
}

func (m *memoryBackup) LoadBackup() ([]task.Task, bool) {
	return m.saved, m.saved != nil
}

func TestConfirmedChangesRefreshBackup(t *testing.T) {
	g := newMemoryGateway(seed...)
	p, _ := newPlanner(t, g)
	b := &memoryBackup{}
	p.Backup = b

	if err := p.Toggle(context.Background(), "a"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if b.n != 1 || !b.saved[0].Completed {
		t.Fatalf("expected backup after confirm, got %d %+v", b.n, b.saved)
	}
	g.fail = gateway.ErrTransport
	_ = p.Toggle(context.Background(), "a")
	if b.n != 1 {
		t.Fatalf("rolled back changes must not touch the backup")
	}
}
