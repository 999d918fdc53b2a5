package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/render"

	"go.uber.org/zap"
)

var (
	// ErrMissingIdentity 缺少商品或规格标识
	ErrMissingIdentity = errors.New("missing product or variant id")
	// ErrUnknownAction 未知指令
	ErrUnknownAction = errors.New("unknown cart action")
	// ErrInvalidQuantity 数量输入无法解析
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrItemRejected 目录中不存在该商品
	ErrItemRejected = errors.New("cart rejected item")
)

// Cart 桥接所需的购物车操作
type Cart interface {
	AddItem(ctx context.Context, productID, variantID string, quantity int) bool
	RemoveItem(ctx context.Context, productID, variantID string)
	UpdateQuantity(ctx context.Context, productID, variantID string, quantity int)
	Item(ctx context.Context, productID, variantID string) (models.CartItem, bool)
}

// Opener 展开购物车侧栏
type Opener interface {
	OpenCart()
}

// Options 延迟配置
type Options struct {
	OpenCartDelay time.Duration
	InitDelay     time.Duration
	RecheckDelay  time.Duration
}

func (o Options) withDefaults() Options {
	if o.OpenCartDelay <= 0 {
		o.OpenCartDelay = constants.CartOpenDelay
	}
	if o.InitDelay <= 0 {
		o.InitDelay = constants.BridgeInitDelay
	}
	if o.RecheckDelay <= 0 {
		o.RecheckDelay = constants.CartInitRecheckDelay
	}
	return o
}

type handler func(ctx context.Context, cmd Command) error

// Bridge 将页面交互分发到购物车
type Bridge struct {
	cart      Cart
	opener    Opener
	scheduler render.Scheduler
	opts      Options
	handlers  map[Action]handler
	log       *zap.SugaredLogger
}

// New 创建交互桥
func New(cart Cart, opener Opener, scheduler render.Scheduler, opts Options, log *zap.SugaredLogger) *Bridge {
	b := &Bridge{
		cart:      cart,
		opener:    opener,
		scheduler: scheduler,
		opts:      opts.withDefaults(),
		log:       logger.OrDefault(log, "bridge"),
	}
	b.handlers = map[Action]handler{
		ActionIncrease:        b.increase,
		ActionDecrease:        b.decrease,
		ActionDelete:          b.remove,
		ActionQuantityChanged: b.quantityChanged,
		ActionSubmitAddToCart: b.submit,
	}
	return b
}

// Dispatch 执行一次交互；错误已记录日志，调用方可忽略
func (b *Bridge) Dispatch(ctx context.Context, cmd Command) error {
	h, ok := b.handlers[cmd.Action]
	if !ok {
		b.log.Debugw("bridge_unknown_action", "action", cmd.Action.String())
		return ErrUnknownAction
	}
	if cmd.ProductID == "" || cmd.VariantID == "" {
		b.log.Warnw("bridge_missing_identity", "action", cmd.Action.String(), "product_id", cmd.ProductID, "variant_id", cmd.VariantID)
		return ErrMissingIdentity
	}
	return h(ctx, cmd)
}

// Submit 处理加购表单提交
func (b *Bridge) Submit(ctx context.Context, s Submission) error {
	return b.Dispatch(ctx, s.Command())
}

func (b *Bridge) submit(ctx context.Context, cmd Command) error {
	quantity := ParseQuantity(cmd.Value, cmd.HasValue)
	if !b.cart.AddItem(ctx, cmd.ProductID, cmd.VariantID, quantity) {
		return fmt.Errorf("%w: %s/%s", ErrItemRejected, cmd.ProductID, cmd.VariantID)
	}
	if b.opener != nil && b.scheduler != nil {
		b.scheduler.After(b.opts.OpenCartDelay, b.opener.OpenCart)
	}
	return nil
}

func (b *Bridge) increase(ctx context.Context, cmd Command) error {
	item, ok := b.cart.Item(ctx, cmd.ProductID, cmd.VariantID)
	if !ok {
		return nil
	}
	b.cart.UpdateQuantity(ctx, cmd.ProductID, cmd.VariantID, item.Quantity+1)
	return nil
}

// decrease 数量为 1 时移除而不是减到 0
func (b *Bridge) decrease(ctx context.Context, cmd Command) error {
	item, ok := b.cart.Item(ctx, cmd.ProductID, cmd.VariantID)
	if !ok {
		return nil
	}
	if item.Quantity > 1 {
		b.cart.UpdateQuantity(ctx, cmd.ProductID, cmd.VariantID, item.Quantity-1)
		return nil
	}
	b.cart.RemoveItem(ctx, cmd.ProductID, cmd.VariantID)
	return nil
}

func (b *Bridge) remove(ctx context.Context, cmd Command) error {
	b.cart.RemoveItem(ctx, cmd.ProductID, cmd.VariantID)
	return nil
}

func (b *Bridge) quantityChanged(ctx context.Context, cmd Command) error {
	quantity, ok := ParseLeadingInt(cmd.Value)
	if !ok {
		b.log.Debugw("bridge_quantity_ignored", "product_id", cmd.ProductID, "value", cmd.Value)
		return ErrInvalidQuantity
	}
	b.cart.UpdateQuantity(ctx, cmd.ProductID, cmd.VariantID, quantity)
	return nil
}

// InitWhenReady 延迟后检查购物车是否就绪；未就绪时只再检查一次，仍未就绪则放弃
func (b *Bridge) InitWhenReady(ready func() bool, attach func()) {
	if b.scheduler == nil || ready == nil || attach == nil {
		return
	}
	b.scheduler.After(b.opts.InitDelay, func() {
		if ready() {
			attach()
			return
		}
		b.scheduler.After(b.opts.RecheckDelay, func() {
			if ready() {
				attach()
				return
			}
			b.log.Warnw("bridge_init_gave_up")
		})
	})
}
