package warehouse

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver counts lifecycle calls so tests can observe authentication
// round-trips.
type fakeDriver struct {
	mu       sync.Mutex
	closed   bool
	queryErr error
}

func (d *fakeDriver) Connect(ctx context.Context) error { return nil }

func (d *fakeDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *fakeDriver) Ping(ctx context.Context) error { return nil }

func (d *fakeDriver) Query(ctx context.Context, sql string, args ...any) (*ResultTable, error) {
	if d.queryErr != nil {
		return nil, d.queryErr
	}
	return &ResultTable{}, nil
}

func (d *fakeDriver) Name() string { return "fake" }

// countingOpener tracks how many sessions were opened.
type countingOpener struct {
	mu    sync.Mutex
	opens int
	fail  error
}

func (o *countingOpener) open(ctx context.Context) (Driver, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opens++
	if o.fail != nil {
		return nil, o.fail
	}
	return &fakeDriver{}, nil
}

func TestManagerMemoizesHandle(t *testing.T) {
	opener := &countingOpener{}
	m := NewManager(opener.open)

	first, err := m.Get(context.Background())
	require.NoError(t, err)

	second, err := m.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second, "second Get must return the first handle")
	assert.Equal(t, 1, opener.opens, "no re-authentication on the second call")
}

func TestManagerConcurrentFirstAccess(t *testing.T) {
	opener := &countingOpener{}
	m := NewManager(opener.open)

	const callers = 16
	handles := make([]Driver, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			drv, err := m.Get(context.Background())
			assert.NoError(t, err)
			handles[i] = drv
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, opener.opens, "exactly one authentication round-trip")
	for i := 1; i < callers; i++ {
		assert.Same(t, handles[0], handles[i], "all callers converge on one handle")
	}
}

func TestManagerFailedOpenLeavesSlotEmpty(t *testing.T) {
	opener := &countingOpener{fail: errors.New("endpoint unreachable")}
	m := NewManager(opener.open)

	_, err := m.Get(context.Background())
	require.Error(t, err)

	// The failure must not be memoized.
	opener.mu.Lock()
	opener.fail = nil
	opener.mu.Unlock()

	drv, err := m.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, drv)
	assert.Equal(t, 2, opener.opens)
}

func TestManagerInvalidateReopens(t *testing.T) {
	opener := &countingOpener{}
	m := NewManager(opener.open)

	first, err := m.Get(context.Background())
	require.NoError(t, err)

	m.Invalidate()
	assert.True(t, first.(*fakeDriver).closed, "invalidate closes the old handle")

	second, err := m.Get(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, opener.opens)
}

func TestManagerClose(t *testing.T) {
	opener := &countingOpener{}
	m := NewManager(opener.open)

	drv, err := m.Get(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.True(t, drv.(*fakeDriver).closed)

	// Close with an empty slot is a no-op.
	require.NoError(t, m.Close())
}
