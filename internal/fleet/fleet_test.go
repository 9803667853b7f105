package fleet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_status/internal/cache"
	"fleet_status/internal/models"
	"fleet_status/internal/sheets"
)

// mockSource serves canned export bodies and counts fetches.
type mockSource struct {
	mu     sync.Mutex
	bodies map[sheets.Export]string
	errs   map[sheets.Export]error
	calls  map[sheets.Export]int
}

func newMockSource() *mockSource {
	return &mockSource{
		bodies: map[sheets.Export]string{},
		errs:   map[sheets.Export]error{},
		calls:  map[sheets.Export]int{},
	}
}

func (m *mockSource) Fetch(ctx context.Context, export sheets.Export) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[export]++
	if err := m.errs[export]; err != nil {
		return nil, err
	}
	body, ok := m.bodies[export]
	if !ok {
		return nil, fmt.Errorf("no body for %s", export)
	}
	return []byte(body), nil
}

func (m *mockSource) count(export sheets.Export) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[export]
}

// mockStatusStore is an in-memory StatusStore.
type mockStatusStore struct {
	inserted map[string][]models.AircraftRecord
	past     map[string][]models.AircraftRecord
}

func (m *mockStatusStore) InsertBatch(ctx context.Context, records []models.AircraftRecord) error {
	if m.inserted == nil {
		m.inserted = map[string][]models.AircraftRecord{}
	}
	for _, rec := range records {
		m.inserted[rec.AsOf] = append(m.inserted[rec.AsOf], rec)
	}
	return nil
}

func (m *mockStatusStore) OnOrAfter(ctx context.Context, date string) (string, []models.AircraftRecord, error) {
	best := ""
	for d := range m.past {
		if d >= date && (best == "" || d < best) {
			best = d
		}
	}
	return best, m.past[best], nil
}

func (m *mockStatusStore) Inactive(ctx context.Context, tail string) ([]models.AircraftRecord, error) {
	var out []models.AircraftRecord
	for _, recs := range m.inserted {
		for _, rec := range recs {
			if rec.Status == models.Inactive && (tail == "" || rec.TailNumber == tail) {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

// statusBlob builds the nested status JSON for one date.
func statusBlob(hours2208 string, status2208, remark2208 string) string {
	return fmt.Sprintf(`{"ข้อมูลSheet1":[{"เครื่องบิน":"2208","แบบเครื่องบิน":"CN-235","สถานะ":%q,"ชั่วโมง":%q,"หมายเหตุ":%q}],"ข้อมูลSheet2":[]}`,
		status2208, hours2208, remark2208)
}

func gvizBody(rows ...[2]string) string {
	var parts []string
	for _, r := range rows {
		parts = append(parts, fmt.Sprintf(`{"c":[{"v":%q},{"v":%q}]}`, r[0], r[1]))
	}
	return `/*O_o*/ google.visualization.Query.setResponse({"table":{"rows":[` + strings.Join(parts, ",") + `]}});`
}

func newTestService(src sheets.Source, store StatusStore) *Service {
	svc := NewService(src, cache.NewSnapshots(cache.NewMemory(64, time.Hour), time.Hour), store, Options{})
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func standardSource() *mockSource {
	src := newMockSource()
	src.bodies[sheets.StatusExport] = gvizBody(
		[2]string{"2024-03-13", statusBlob("1000:00", "ใช้งานได้", "")},
		[2]string{"2024-03-14", statusBlob("1002:00", "ไม่ใช้งาน", "รอชิ้นส่วน")},
		[2]string{"2024-03-15", statusBlob("1004:30", "ใช้งานได้", "")},
	)
	src.bodies[sheets.DetailsExport] = "model,s/n\n"
	src.bodies[sheets.EnginesExport] = "model,s/n\n"
	src.bodies[sheets.PropellersExport] = "model,s/n\n"
	return src
}

func TestServiceLoad(t *testing.T) {
	src := standardSource()
	svc := newTestService(src, nil)

	res, err := svc.Load(context.Background(), "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", res.Date)
	assert.True(t, res.Exact)
	assert.Equal(t, "2024-03-14", res.Previous)
	require.Len(t, res.Aircraft, 1)
	assert.Equal(t, "2208", res.Aircraft[0].TailNumber)
	assert.Equal(t, 1, res.Summary.Total)
	assert.Equal(t, []int{2024, 2025, 2026, 2027, 2028}, res.Horizon)
	assert.Len(t, res.Months, 12)
	assert.NotNil(t, res.Components)
	assert.NotNil(t, res.Projections)

	// Served from cache the second time
	_, err = svc.Load(context.Background(), "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 1, src.count(sheets.StatusExport))
	assert.Equal(t, 1, src.count(sheets.DetailsExport))
}

func TestServiceLoad_FallsBackToLatest(t *testing.T) {
	svc := newTestService(standardSource(), nil)

	res, err := svc.Load(context.Background(), "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", res.Date)
	assert.False(t, res.Exact)

	res, err = svc.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", res.Date)
	assert.True(t, res.Exact)
}

func TestServiceLoad_TransportFailure(t *testing.T) {
	src := standardSource()
	src.errs[sheets.StatusExport] = errors.New("connection refused")
	svc := newTestService(src, nil)

	res, err := svc.Load(context.Background(), "2024-03-15")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Aircraft)
	assert.NotNil(t, res.Aircraft)
	assert.NotNil(t, res.Projections)
}

func TestServiceLoad_NoRows(t *testing.T) {
	src := standardSource()
	src.bodies[sheets.StatusExport] = `setResponse({"table":{"rows":[]}});`
	svc := newTestService(src, nil)

	_, err := svc.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestServiceLoad_LedgerFailureKeepsAircraft(t *testing.T) {
	src := standardSource()
	src.errs[sheets.DetailsExport] = errors.New("timeout")
	svc := newTestService(src, nil)

	res, err := svc.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, res.Aircraft, 1)
	assert.Empty(t, res.Components)
}

func TestServiceLoad_LookbackFromStore(t *testing.T) {
	store := &mockStatusStore{past: map[string][]models.AircraftRecord{
		"2023-03-16": {{TailNumber: "2208", AsOf: "2023-03-16", FlightHours: models.HoursPtr(640.5)}},
	}}
	svc := newTestService(standardSource(), store)

	res, err := svc.Load(context.Background(), "2024-03-15")
	require.NoError(t, err)
	// 1004.5 - 640.5 over 365 days
	assert.InDelta(t, 364.0/365.0, res.Rates.Year["2208"], 1e-9)
}

func TestServicePersistAndHistory(t *testing.T) {
	store := &mockStatusStore{}
	svc := newTestService(standardSource(), store)

	n, err := svc.Persist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, store.inserted, 3)

	ranges, err := svc.History(context.Background(), "2208")
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, "2024-03-14", ranges[0].Start)
	assert.Equal(t, "2024-03-14", ranges[0].End)
	assert.Equal(t, "รอชิ้นส่วน", ranges[0].Remark)
}

func TestServiceHistory_FromTable(t *testing.T) {
	svc := newTestService(standardSource(), nil)

	ranges, err := svc.History(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, "2208", ranges[0].Tail)

	ranges, err = svc.History(context.Background(), "1912")
	require.NoError(t, err)
	assert.Empty(t, ranges)
	assert.NotNil(t, ranges)
}

func TestServiceInvalidate(t *testing.T) {
	src := standardSource()
	svc := newTestService(src, nil)

	_, err := svc.Load(context.Background(), "")
	require.NoError(t, err)
	svc.Invalidate(context.Background())
	_, err = svc.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, src.count(sheets.StatusExport))
}

// gatedLoader blocks each date until released.
type gatedLoader struct {
	gates map[string]chan struct{}
}

func (g *gatedLoader) Load(ctx context.Context, date string) (*Result, error) {
	<-g.gates[date]
	res := Empty(date)
	res.Date = date
	return res, nil
}

func TestSelector_LastRequestWins(t *testing.T) {
	loader := &gatedLoader{gates: map[string]chan struct{}{
		"slow": make(chan struct{}),
		"fast": make(chan struct{}),
	}}
	sel := NewSelector(loader)
	assert.Nil(t, sel.Current())

	slowDone := make(chan bool)
	go func() {
		_, published, err := sel.Select(context.Background(), "slow")
		assert.NoError(t, err)
		slowDone <- published
	}()
	// Let the slow request take its sequence number first
	require.Eventually(t, func() bool { return sel.seq.Load() == 1 }, time.Second, time.Millisecond)

	fastDone := make(chan bool)
	go func() {
		_, published, err := sel.Select(context.Background(), "fast")
		assert.NoError(t, err)
		fastDone <- published
	}()
	require.Eventually(t, func() bool { return sel.seq.Load() == 2 }, time.Second, time.Millisecond)

	close(loader.gates["fast"])
	assert.True(t, <-fastDone)
	close(loader.gates["slow"])
	assert.False(t, <-slowDone)

	cur := sel.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "fast", cur.Date)

	// Current hands out copies
	cur.Date = "changed"
	assert.Equal(t, "fast", sel.Current().Date)
}

type failingLoader struct{}

func (failingLoader) Load(ctx context.Context, date string) (*Result, error) {
	return Empty(date), errors.New("boom")
}

func TestSelector_ErrorDoesNotPublish(t *testing.T) {
	sel := NewSelector(failingLoader{})
	res, published, err := sel.Select(context.Background(), "2024-03-15")
	require.Error(t, err)
	assert.False(t, published)
	assert.NotNil(t, res)
	assert.Nil(t, sel.Current())
}
