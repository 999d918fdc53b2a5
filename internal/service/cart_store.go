package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"go.uber.org/zap"
)

// CartStore 购物车持久化（读取失败返回空车，写入失败仅记录日志）
type CartStore struct {
	repo repository.KVRepository
	key  string
	log  *zap.SugaredLogger
}

// NewCartStore 创建购物车存储
func NewCartStore(repo repository.KVRepository, key string, log *zap.SugaredLogger) *CartStore {
	if strings.TrimSpace(key) == "" {
		key = constants.CartStorageKey
	}
	return &CartStore{repo: repo, key: key, log: logger.OrDefault(log, "cart_store")}
}

// Load 读取购物车，任何故障都退化为空购物车
func (s *CartStore) Load(ctx context.Context) *models.Cart {
	if s.repo == nil {
		return models.NewCart()
	}
	raw, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return models.NewCart()
	}
	if err != nil {
		s.log.Warnw("cart_load_failed", "key", s.key, "error", err)
		return models.NewCart()
	}
	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		s.log.Warnw("cart_decode_failed", "key", s.key, "error", err)
		return models.NewCart()
	}
	return normalizeCart(&cart, s.log)
}

// Save 写入购物车，失败不向调用方传播
func (s *CartStore) Save(ctx context.Context, cart *models.Cart) {
	if s.repo == nil {
		return
	}
	if cart == nil {
		cart = models.NewCart()
	}
	payload, err := json.Marshal(cart.Clone())
	if err != nil {
		s.log.Errorw("cart_encode_failed", "key", s.key, "error", err)
		return
	}
	if err := s.repo.Set(ctx, s.key, string(payload)); err != nil {
		s.log.Errorw("cart_save_failed", "key", s.key, "error", err)
	}
}

// normalizeCart 丢弃无效行并合并重复身份，保证每个身份至多一行且数量 >= 1
func normalizeCart(cart *models.Cart, log *zap.SugaredLogger) *models.Cart {
	out := models.NewCart()
	dropped := 0
	for _, item := range cart.Items {
		if !item.Identity().Valid() || item.Quantity < 1 {
			dropped++
			continue
		}
		if idx := out.IndexOf(item.Identity()); idx >= 0 {
			out.Items[idx].Quantity += item.Quantity
			dropped++
			continue
		}
		out.Items = append(out.Items, item)
	}
	if dropped > 0 && log != nil {
		log.Warnw("cart_normalized", "dropped_or_merged", dropped)
	}
	return out
}
