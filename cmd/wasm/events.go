//go:build js && wasm

package main

import (
	"context"
	"errors"
	"syscall/js"

	"github.com/dujiao-next/storefront/internal/bridge"
	"github.com/dujiao-next/storefront/internal/render"
	"github.com/dujiao-next/storefront/internal/session"

	"go.uber.org/zap"
)

// eventWiring 页面事件委托到交互桥
type eventWiring struct {
	sess        *session.Session
	root        js.Value
	formSel     string
	cartLinkSel string
	log         *zap.SugaredLogger
	handlers    []js.Func
}

func newEventWiring(sess *session.Session, root js.Value, doc *domDocument, log *zap.SugaredLogger) *eventWiring {
	return &eventWiring{
		sess:        sess,
		root:        root,
		formSel:     doc.selectors[render.SlotAddToCartForm].Container,
		cartLinkSel: doc.selectors[render.SlotCartOpenLink].Container,
		log:         log,
	}
}

// attach 注册一次委托监听；由会话在购物车就绪后调用
func (w *eventWiring) attach(*bridge.Bridge) {
	if len(w.handlers) > 0 {
		return
	}
	w.listen("click", w.onClick)
	w.listen("change", w.onChange)
	w.listen("submit", w.onSubmit)
	w.log.Infow("bridge_attached", "form_selector", w.formSel)
}

func (w *eventWiring) listen(event string, fn func(event js.Value)) {
	handler := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	w.handlers = append(w.handlers, handler)
	w.root.Call("addEventListener", event, handler)
}

func (w *eventWiring) onClick(event js.Value) {
	target := event.Get("target")
	// 打开购物车前按内存状态重绘，不拦截默认的展开行为
	if w.cartLinkSel != "" && closest(target, w.cartLinkSel).Truthy() {
		w.report("cart_open", w.sess.RefreshCart(context.Background()))
		return
	}
	control := closest(target, "["+bridge.AttrAction+"]")
	if !control.Truthy() {
		return
	}
	cmd, ok := bridge.CommandFromControl(&domContainer{el: control})
	if !ok || cmd.Action == bridge.ActionSubmitAddToCart {
		return
	}
	event.Call("preventDefault")
	w.report("click", w.sess.Dispatch(context.Background(), cmd))
}

func (w *eventWiring) onChange(event js.Value) {
	target := event.Get("target")
	if !target.Truthy() {
		return
	}
	cmd, ok := bridge.QuantityChange(&domContainer{el: target}, target.Get("value").String())
	if !ok {
		return
	}
	w.report("change", w.sess.Dispatch(context.Background(), cmd))
}

func (w *eventWiring) onSubmit(event js.Value) {
	form := event.Get("target")
	if !form.Truthy() || w.formSel == "" || !form.Call("matches", w.formSel).Bool() {
		return
	}
	event.Call("preventDefault")
	quantity, present := "", false
	if input := form.Call("querySelector", bridge.AddToCartQuantityInput); input.Truthy() {
		quantity, present = input.Get("value").String(), true
	}
	sub := bridge.SubmissionFromForm(&domContainer{el: form}, quantity, present)
	w.report("submit", w.sess.Submit(context.Background(), sub))
}

func (w *eventWiring) report(event string, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, bridge.ErrItemRejected), errors.Is(err, bridge.ErrInvalidQuantity):
		w.log.Debugw("bridge_event_ignored", "event", event, "error", err)
	default:
		w.log.Warnw("bridge_event_failed", "event", event, "error", err)
	}
}

func closest(el js.Value, selector string) js.Value {
	if !el.Truthy() || el.Get("closest").IsUndefined() {
		return js.Null()
	}
	return el.Call("closest", selector)
}
