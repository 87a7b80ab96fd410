package models

import (
	"fmt"
	"strings"
)

// DataFetchError - ошибка транспорта при получении исходного CSV (таймаут, не-2xx, отказ соединения).
// Внутри конвейера не ретраится.
type DataFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DataFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("data fetch failed: %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("data fetch failed: %s: %v", e.URL, e.Err)
}

func (e *DataFetchError) Unwrap() error {
	return e.Err
}

// DataParseError - структура CSV непригодна (например, нет обязательных колонок).
// Цикл загрузки считается неудачным целиком.
type DataParseError struct {
	Reason         string
	MissingColumns []string
	Err            error
}

func (e *DataParseError) Error() string {
	msg := "data parse failed: " + e.Reason
	if len(e.MissingColumns) > 0 {
		msg += " (missing columns: " + strings.Join(e.MissingColumns, ", ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataParseError) Unwrap() error {
	return e.Err
}
