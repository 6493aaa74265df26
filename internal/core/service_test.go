package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRows records the last query and returns canned rows.
type fakeRows struct {
	rows    [][]any
	err     error
	lastSQL string
	args    []any
}

func (f *fakeRows) QueryRows(_ context.Context, sql string, args ...any) ([][]any, error) {
	f.lastSQL = sql
	f.args = args
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestService_List_Facts(t *testing.T) {
	src := &fakeRows{rows: [][]any{
		{int32(0), int32(2020), 15.2, 0.1},
		{int32(0), int32(2021), 15.4, 0.2},
	}}
	svc := NewService(src)

	recs, err := svc.List(context.Background(), testTemperatures, Filter{Country: int64Ptr(0), OrderBy: "year"}, NewLocator("http://h/"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, []any{int64(0)}, src.args)

	country, _ := recs[0].Get("country")
	require.Equal(t, "http://h/countries/0", country)
	year, _ := recs[1].Get("year")
	require.Equal(t, int32(2021), year)
}

func TestService_List_EmptyIsNotNil(t *testing.T) {
	svc := NewService(&fakeRows{rows: [][]any{}})

	recs, err := svc.List(context.Background(), testTemperatures, Filter{}, NewLocator("http://h/"))
	require.NoError(t, err)
	require.NotNil(t, recs)
	require.Empty(t, recs)
}

func TestService_List_Countries(t *testing.T) {
	svc := NewService(&fakeRows{rows: [][]any{{int32(0), "USA"}, {int32(1), "Kenya"}}})

	recs, err := svc.List(context.Background(), testCountries, Filter{OrderBy: "id"}, NewLocator("http://h/"))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	name, _ := recs[1].Get("name")
	require.Equal(t, "Kenya", name)
	forests, _ := recs[1].Get("forests")
	require.Equal(t, "http://h/forests?country=1", forests)
}

func TestService_List_StoreFailure(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connection refused")
	svc := NewService(&fakeRows{err: cause})

	_, err := svc.List(context.Background(), testTemperatures, Filter{}, NewLocator("http://h/"))

	var su *StoreUnavailableError
	require.ErrorAs(t, err, &su)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "temperatures", su.Op)
	require.Equal(t, "STORE001", MapError(err).Code)
}

func TestService_List_InvalidOrderSkipsStore(t *testing.T) {
	src := &fakeRows{}
	svc := NewService(src)

	_, err := svc.List(context.Background(), testTemperatures, Filter{OrderBy: "name"}, NewLocator("http://h/"))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Empty(t, src.lastSQL)
}

func TestService_Country(t *testing.T) {
	src := &fakeRows{rows: [][]any{{int32(3), "Chile"}}}
	svc := NewService(src)

	rec, err := svc.Country(context.Background(), testCountries, 3, NewLocator("http://h/"))
	require.NoError(t, err)
	require.Equal(t, []any{int64(3)}, src.args)

	url, _ := rec.Get("url")
	require.Equal(t, "http://h/countries/3", url)
}

func TestService_Country_NotFound(t *testing.T) {
	svc := NewService(&fakeRows{rows: [][]any{}})

	_, err := svc.Country(context.Background(), testCountries, 99, NewLocator("http://h/"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_Country_WrongResource(t *testing.T) {
	svc := NewService(&fakeRows{})

	_, err := svc.Country(context.Background(), testTemperatures, 1, NewLocator("http://h/"))
	require.Error(t, err)
}
