package service

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnavailable 目录未加载或加载失败
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrProductNotFound 目录中不存在对应商品
	ErrProductNotFound = errors.New("product not found")
	// ErrCatalogSourceInvalid 目录来源配置无效
	ErrCatalogSourceInvalid = errors.New("catalog source invalid")
)

// 目录加载阶段
const (
	CatalogStageFetch    = "fetch"
	CatalogStageDecode   = "decode"
	CatalogStageValidate = "validate"
)

// CatalogLoadError 目录加载失败（调用方应视目录整体不可用）
type CatalogLoadError struct {
	Stage string
	Err   error
}

func (e *CatalogLoadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("catalog load failed at %s: %v", e.Stage, e.Err)
}

func (e *CatalogLoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is 所有加载失败都视为目录不可用
func (e *CatalogLoadError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}
