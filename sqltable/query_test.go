package sqltable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/domonda/go-regrid"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		create table company (id integer, name text, revenue real, logo blob);
		insert into company values (1, 'Company 1', 1.5, x'6869'), (2, 'Company 2', null, null);
	`)
	require.NoError(t, err)
	return db
}

func TestQuery(t *testing.T) {
	db := openTestDB(t)

	columns, rows, err := Query(context.Background(), db, nil, `select id, name, revenue, logo from company order by id`)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "revenue", "logo"}, columns)
	require.Equal(t, regrid.StringRows{
		{"1", "Company 1", "1.5", "hi"},
		{"2", "Company 2", "", ""},
	}, rows)

	columns, rows, err = Query(context.Background(), db, nil, `select name from company where id > ?`, 5)
	require.NoError(t, err)
	require.Equal(t, []string{"name"}, columns)
	require.Empty(t, rows)

	_, _, err = Query(context.Background(), db, nil, `select * from missing`)
	require.Error(t, err)
}

func TestQuery_Formatter(t *testing.T) {
	db := openTestDB(t)
	formatter := new(regrid.TypeFormatters).WithKind(reflect.Float64, regrid.FormatterFunc(func(v reflect.Value) (string, error) {
		return fmt.Sprintf("%.2f", v.Float()), nil
	}))
	_, rows, err := Query(context.Background(), db, formatter, `select revenue from company where id = 1`)
	require.NoError(t, err)
	require.Equal(t, regrid.StringRows{{"1.50"}}, rows)
}

type fakeRows struct {
	columns []string
	values  [][]any
	next    int
	err     error
	closed  bool
}

func (r *fakeRows) Columns() ([]string, error) { return r.columns, nil }
func (r *fakeRows) Err() error                 { return r.err }

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

func (r *fakeRows) Next() bool {
	if r.next >= len(r.values) {
		return false
	}
	r.next++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	for i, v := range r.values[r.next-1] {
		*dest[i].(*any) = v
	}
	return nil
}

func TestScanRows(t *testing.T) {
	rows := &fakeRows{
		columns: []string{"a", "b"},
		values:  [][]any{{int64(1), nil}, {[]byte("x"), true}},
	}
	columns, result, err := ScanRows(context.Background(), rows, nil)
	require.NoError(t, err)
	require.True(t, rows.closed)
	require.Equal(t, []string{"a", "b"}, columns)
	require.Equal(t, regrid.StringRows{{"1", ""}, {"x", "true"}}, result)

	failing := &fakeRows{columns: []string{"a"}, err: errors.New("broken")}
	_, _, err = ScanRows(context.Background(), failing, nil)
	require.EqualError(t, err, "broken")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = ScanRows(ctx, &fakeRows{columns: []string{"a"}, values: [][]any{{1}}}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
