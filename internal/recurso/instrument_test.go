package recurso

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"recursoweb/internal/resolve"
)

type stubService struct {
	findErr error
}

func (s stubService) Find(_ context.Context, id int64) (Response, error) {
	if s.findErr != nil {
		return Response{}, s.findErr
	}
	return resolve.Found(&Recurso{ID: id}), nil
}

func (stubService) Query(_ context.Context, page int, size int) (Page, error) {
	return newPage(nil, page, size, 0), nil
}

type lookupCall struct {
	backend   string
	operation string
	elapsed   time.Duration
	err       error
}

type recordingObserver struct {
	calls []lookupCall
}

func (o *recordingObserver) ObserveLookup(backend string, operation string, elapsed time.Duration, err error) {
	o.calls = append(o.calls, lookupCall{backend: backend, operation: operation, elapsed: elapsed, err: err})
}

func TestInstrumentRecordsCalls(t *testing.T) {
	boom := errors.New("boom")
	observer := &recordingObserver{}
	svc := Instrument(stubService{findErr: boom}, "rest", observer)

	clock := time.Unix(0, 0)
	svc.(*instrumented).now = func() time.Time {
		clock = clock.Add(5 * time.Millisecond)
		return clock
	}

	_, err := svc.Find(context.Background(), 7)
	require.ErrorIs(t, err, boom)
	_, err = svc.Query(context.Background(), 1, 10)
	require.NoError(t, err)

	require.Len(t, observer.calls, 2)
	assert.Equal(t, lookupCall{backend: "rest", operation: "find", elapsed: 5 * time.Millisecond, err: boom}, observer.calls[0])
	assert.Equal(t, "query", observer.calls[1].operation)
	assert.NoError(t, observer.calls[1].err)
}

func TestInstrumentWithoutObserver(t *testing.T) {
	svc := stubService{}
	assert.Equal(t, Service(svc), Instrument(svc, "rest", nil))
}
