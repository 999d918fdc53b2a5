package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dujiao-next/storefront/internal/bridge"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/render"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"go.uber.org/zap"
)

// ErrNotStarted 会话尚未加载目录
var ErrNotStarted = fmt.Errorf("session not started: %w", service.ErrCatalogUnavailable)

// Options 会话依赖；未提供的部分按配置创建
type Options struct {
	Config        *config.Config
	Logger        *zap.SugaredLogger
	Scheduler     render.Scheduler
	KVRepo        repository.KVRepository
	CatalogSource service.CatalogSource
	Refresh       render.WidgetRefresher
}

// Session 页面会话：目录、购物车与交互桥的唯一持有者
type Session struct {
	cfg       *config.Config
	log       *zap.SugaredLogger
	scheduler render.Scheduler
	settle    *render.SettleScheduler
	refresh   render.WidgetRefresher
	source    service.CatalogSource

	catalog  *service.CatalogService
	resolver *service.ProductResolver
	store    *service.CartStore
	cart     *service.CartService
	bridge   *bridge.Bridge

	presenter *render.CartPresenter
	started   bool
}

// New 按 配置 → 日志 → 目录来源 → 目录 → 购物车存储 → 购物车 → 交互桥 的顺序构建会话
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := logger.OrDefault(opts.Logger, "session")

	source := opts.CatalogSource
	if source == nil {
		var err error
		source, err = service.NewCatalogSource(cfg.Catalog)
		if err != nil {
			return nil, err
		}
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = render.NewManualScheduler()
	}
	kv := opts.KVRepo
	if kv == nil {
		kv = repository.NewMemoryKVRepository()
	}

	s := &Session{
		cfg:       cfg,
		log:       log,
		scheduler: scheduler,
		settle:    render.NewSettleScheduler(scheduler, cfg.Render.Debounce),
		refresh:   opts.Refresh,
		source:    source,
	}
	s.catalog = service.NewCatalogService(log.Named("catalog"))
	s.resolver = service.NewProductResolver(s.catalog, cfg.Catalog.DefaultToken, log.Named("resolver"))
	s.store = service.NewCartStore(kv, cfg.Storage.Key, log.Named("cart_store"))
	s.cart = service.NewCartService(s.catalog, s.store, nil, log.Named("cart"))
	s.bridge = bridge.New(s.cart, s, scheduler, bridge.Options{
		OpenCartDelay: cfg.Render.OpenCartDelay(),
		InitDelay:     cfg.Render.BridgeInitDelay(),
		RecheckDelay:  cfg.Render.CartInitRecheck(),
	}, log.Named("bridge"))
	return s, nil
}

// Start 加载目录并初始化购物车；目录失败时会话仍可用，但页面填充被跳过
func (s *Session) Start(ctx context.Context) error {
	if _, err := s.catalog.LoadFrom(ctx, s.source); err != nil {
		s.log.Errorw("session_catalog_unavailable", "error", err)
		return err
	}
	s.cart.Init(ctx)
	s.started = true
	s.log.Infow("session_started", "products", len(s.catalog.Catalog().Products))
	return nil
}

// Started 目录是否已加载
func (s *Session) Started() bool {
	return s.started
}

// Populate 按页面类型填充插槽并挂载购物车视图，返回识别出的页面类型
func (s *Session) Populate(ctx context.Context, doc render.Document, pageURL *url.URL) (string, error) {
	if doc == nil {
		return constants.PageUnknown, errors.New("document is nil")
	}
	path := "/"
	if pageURL != nil {
		path = pageURL.Path
	}
	kind := render.DetectPage(path, doc)

	s.presenter = render.NewCartPresenter(doc, s.log.Named("cart_view"))
	s.cart.SetRenderer(s.presenter)

	if !s.catalog.Loaded() {
		s.log.Warnw("populate_skipped_catalog_unavailable", "page", kind)
		return kind, service.ErrCatalogUnavailable
	}

	var current *models.Product
	if kind == constants.PageProduct {
		product, err := s.resolver.ResolveCurrent(service.PageContextFromURL(pageURL))
		if err != nil {
			return kind, err
		}
		current = product
	}
	refresher := render.NewRefresher(s.settle, s.refresh, s.cfg.Render.RefreshDelay(), s.log.Named("refresher"))
	render.NewPopulator(doc, s.renderOptions(), refresher, s.log.Named("populator")).
		Populate(kind, s.catalog.Catalog(), current)

	if s.cart.Ready() {
		s.cart.Refresh(ctx)
	}
	return kind, nil
}

// AttachBridge 延迟挂载页面交互；attach 由宿主负责绑定事件
func (s *Session) AttachBridge(attach func(b *bridge.Bridge)) {
	if attach == nil {
		return
	}
	s.bridge.InitWhenReady(s.cart.Ready, func() { attach(s.bridge) })
}

// Dispatch 执行交互指令
func (s *Session) Dispatch(ctx context.Context, cmd bridge.Command) error {
	if !s.started {
		return ErrNotStarted
	}
	return s.bridge.Dispatch(ctx, cmd)
}

// Submit 提交加购表单
func (s *Session) Submit(ctx context.Context, sub bridge.Submission) error {
	if !s.started {
		return ErrNotStarted
	}
	return s.bridge.Submit(ctx, sub)
}

// RefreshCart 按内存中的购物车重新渲染列表、合计与角标（打开购物车时调用）
func (s *Session) RefreshCart(ctx context.Context) error {
	if !s.started {
		return ErrNotStarted
	}
	s.cart.Refresh(ctx)
	return nil
}

// OpenCart 展开购物车侧栏（尚未挂载页面时忽略）
func (s *Session) OpenCart() {
	if s.presenter == nil {
		return
	}
	s.presenter.OpenCart()
}

// Cart 购物车服务
func (s *Session) Cart() *service.CartService {
	return s.cart
}

// Catalog 目录服务
func (s *Session) Catalog() *service.CatalogService {
	return s.catalog
}

// Bridge 交互桥
func (s *Session) Bridge() *bridge.Bridge {
	return s.bridge
}

func (s *Session) renderOptions() render.Options {
	c := s.cfg.Catalog
	return render.Options{
		ProductCategory:   c.ProductCategory,
		AccessoryCategory: c.AccessoryCategory,
		MainAccessories:   c.MainAccessories,
		SampleMarker:      c.SampleMarker,
		HeroProductID:     c.HeroProductID,
		SloganProductID:   c.SloganProductID,
		HeroDefault:       c.HeroDefault,
		DetailPage:        c.DetailPage,
	}
}
