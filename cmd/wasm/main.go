//go:build js && wasm

// Command wasm 在浏览器中运行页面会话：拉取目录、填充插槽并接管购物车交互。
package main

import (
	"context"
	"net/url"
	"strings"
	"syscall/js"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"
	"github.com/dujiao-next/storefront/internal/session"
)

// catalogURLGlobal 页面可通过该全局变量覆盖目录地址
const catalogURLGlobal = "STOREFRONT_CATALOG_URL"

func main() {
	cfg := config.Default()
	logger.Init("debug", cfg.Log.ToLoggerOptions())
	log := logger.Component("wasm")

	global := js.Global()
	document := global.Get("document")
	location, err := url.Parse(global.Get("location").Get("href").String())
	if err != nil {
		log.Errorw("wasm_location_invalid", "error", err)
		return
	}

	catalogURL := location.ResolveReference(&url.URL{Path: cfg.Catalog.Route})
	if override := global.Get(catalogURLGlobal); override.Truthy() {
		if ref, err := url.Parse(strings.TrimSpace(override.String())); err == nil {
			catalogURL = location.ResolveReference(ref)
		}
	}

	var kv repository.KVRepository
	if kv, err = newLocalStorageRepository(); err != nil {
		log.Warnw("wasm_storage_fallback_memory", "error", err)
		kv = repository.NewMemoryKVRepository()
	}

	sess, err := session.New(session.Options{
		Config:        cfg,
		Logger:        log,
		Scheduler:     timeoutScheduler{},
		KVRepo:        kv,
		CatalogSource: service.HTTPSource{URL: catalogURL.String(), Timeout: cfg.Catalog.Timeout()},
		Refresh:       swiperRefresher{},
	})
	if err != nil {
		log.Errorw("wasm_session_init_failed", "error", err)
		return
	}

	ctx := context.Background()
	doc := newDOMDocument(document, cfg.Shell.Selectors)
	if err := sess.Start(ctx); err != nil {
		// 目录不可用：页面保持静态内容
		return
	}
	kind, err := sess.Populate(ctx, doc, location)
	if err != nil {
		log.Warnw("wasm_populate_failed", "page", kind, "error", err)
	}
	sess.AttachBridge(newEventWiring(sess, document, doc, log).attach)

	select {}
}
