package catalog

import (
	"errors"
	"fmt"
)

// ErrMissingColumn 來源缺少必要欄位
var ErrMissingColumn = errors.New("missing required column")

// LoadError 資料來源無法讀取或欄位不完整；整份目錄都不可用
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Source, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(source, reason string, err error) *LoadError {
	return &LoadError{Source: source, Reason: reason, Err: err}
}

// IsLoadError 檢查錯誤鏈中是否有 LoadError
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
