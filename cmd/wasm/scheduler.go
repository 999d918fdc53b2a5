//go:build js && wasm

package main

import (
	"syscall/js"
	"time"
)

// timeoutScheduler 基于 setTimeout 的一次性回调，回调在浏览器事件循环中执行
type timeoutScheduler struct{}

func (timeoutScheduler) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	js.Global().Call("setTimeout", cb, d.Milliseconds())
}
