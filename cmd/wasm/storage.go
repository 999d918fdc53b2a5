//go:build js && wasm

package main

import (
	"context"
	"errors"
	"syscall/js"

	"github.com/dujiao-next/storefront/internal/repository"
)

// localStorageRepository 浏览器 localStorage 键值存储
type localStorageRepository struct {
	storage js.Value
}

func newLocalStorageRepository() (repository.KVRepository, error) {
	storage := js.Global().Get("localStorage")
	if storage.IsUndefined() || storage.IsNull() {
		return nil, errors.New("localStorage unavailable")
	}
	return &localStorageRepository{storage: storage}, nil
}

func (r *localStorageRepository) Get(_ context.Context, key string) (value string, err error) {
	defer recoverJSError(&err)
	v := r.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", repository.ErrKeyNotFound
	}
	return v.String(), nil
}

func (r *localStorageRepository) Set(_ context.Context, key, value string) (err error) {
	defer recoverJSError(&err)
	r.storage.Call("setItem", key, value)
	return nil
}

func (r *localStorageRepository) Delete(_ context.Context, key string) (err error) {
	defer recoverJSError(&err)
	r.storage.Call("removeItem", key)
	return nil
}

// recoverJSError 配额超限等 JS 异常转为错误
func recoverJSError(err *error) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = jsErr
			return
		}
		panic(r)
	}
}
