package sqltable

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/domonda/go-regrid"
)

// Query executes query on db and returns the column names
// and the rows of the result formatted with formatter.
func Query(ctx context.Context, db *sql.DB, formatter regrid.Formatter, query string, args ...any) ([]string, regrid.StringRows, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("can't query %q: %w", query, err)
	}
	columns, result, err := ScanRows(ctx, rows, formatter)
	if err != nil {
		return nil, nil, err
	}
	regrid.Logger.Debug("queried rows", zap.String("query", query), zap.Int("rows", len(result)))
	return columns, result, nil
}

// ScanRows reads all rows and closes them.
// NULL values become empty strings,
// []byte values are used as string.
func ScanRows(ctx context.Context, rows Rows, formatter regrid.Formatter) (columns []string, result regrid.StringRows, err error) {
	defer rows.Close()

	columns, err = rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	values := make([]any, len(columns))
	scanners := make([]any, len(columns))
	for i := range scanners {
		scanners[i] = &values[i]
	}
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		clear(values)
		if err = rows.Scan(scanners...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(columns))
		for i, value := range values {
			row[i] = formatValue(formatter, value)
		}
		result = append(result, row)
	}
	return columns, result, rows.Err()
}

func formatValue(formatter regrid.Formatter, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	}
	return regrid.FormatValue(formatter, reflect.ValueOf(value))
}
