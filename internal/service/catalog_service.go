package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"

	"go.uber.org/zap"
)

// CatalogService 商品目录（加载后只读，重新加载时整体替换）
type CatalogService struct {
	log *zap.SugaredLogger

	mu    sync.RWMutex
	state *catalogIndex
}

type catalogIndex struct {
	catalog      *models.Catalog
	byIdentity   map[models.Identity]*models.Product
	productToken map[string]*models.Product
	sampleToken  map[string]*models.Product
	productByID  map[string]*models.Product
}

// NewCatalogService 创建目录服务
func NewCatalogService(log *zap.SugaredLogger) *CatalogService {
	return &CatalogService{log: logger.OrDefault(log, "catalog")}
}

// LoadFrom 从来源拉取并加载目录
func (s *CatalogService) LoadFrom(ctx context.Context, source CatalogSource) (*models.Catalog, error) {
	if source == nil {
		return nil, &CatalogLoadError{Stage: CatalogStageFetch, Err: ErrCatalogSourceInvalid}
	}
	raw, err := source.Fetch(ctx)
	if err != nil {
		loadErr := &CatalogLoadError{Stage: CatalogStageFetch, Err: err}
		s.log.Errorw("catalog_load_failed", "stage", loadErr.Stage, "error", err)
		return nil, loadErr
	}
	return s.Load(raw)
}

// Load 解析目录字节；失败时不保留任何部分结果
func (s *CatalogService) Load(raw []byte) (*models.Catalog, error) {
	catalog, err := s.decodeCatalog(raw)
	if err != nil {
		var loadErr *CatalogLoadError
		if errors.As(err, &loadErr) {
			s.log.Errorw("catalog_load_failed", "stage", loadErr.Stage, "error", loadErr.Err)
		}
		return nil, err
	}
	state := s.index(catalog)
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.log.Infow("catalog_loaded",
		"products", len(catalog.Products),
		"samples", len(catalog.Samples),
		"accessories", len(catalog.Accessories),
	)
	return catalog, nil
}

// rawCatalog 逐条解码用的外层结构
type rawCatalog struct {
	Products    []json.RawMessage `json:"products"`
	Samples     []json.RawMessage `json:"samples"`
	Accessories []json.RawMessage `json:"accessories"`
}

// decodeCatalog 外层结构错误整体失败；单条记录格式错误只跳过该条
func (s *CatalogService) decodeCatalog(raw []byte) (*models.Catalog, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &CatalogLoadError{Stage: CatalogStageDecode, Err: errors.New("empty catalog document")}
	}
	var doc rawCatalog
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &CatalogLoadError{Stage: CatalogStageDecode, Err: err}
	}
	catalog := &models.Catalog{
		Products:    s.decodeEntries("products", doc.Products),
		Samples:     s.decodeEntries("samples", doc.Samples),
		Accessories: s.decodeEntries("accessories", doc.Accessories),
	}
	if len(catalog.Products) == 0 {
		return nil, &CatalogLoadError{Stage: CatalogStageValidate, Err: errors.New("products collection is empty")}
	}
	catalog.Tag()
	return catalog, nil
}

func (s *CatalogService) decodeEntries(collection string, entries []json.RawMessage) []models.Product {
	if entries == nil {
		return nil
	}
	out := make([]models.Product, 0, len(entries))
	for i, entry := range entries {
		trimmed := bytes.TrimSpace(entry)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			s.log.Warnw("catalog_entry_skipped", "collection", collection, "index", i, "reason", "not an object")
			continue
		}
		var p models.Product
		if err := json.Unmarshal(trimmed, &p); err != nil {
			s.log.Warnw("catalog_entry_skipped", "collection", collection, "index", i, "error", err)
			continue
		}
		if fields := p.CoercedFields(); len(fields) > 0 {
			s.log.Warnw("catalog_field_coerced", "collection", collection, "index", i, "id", p.ID, "fields", fields)
		}
		out = append(out, p)
	}
	return out
}

// index 建立查找表，重复键保留首个记录
func (s *CatalogService) index(catalog *models.Catalog) *catalogIndex {
	idx := &catalogIndex{
		catalog:      catalog,
		byIdentity:   make(map[models.Identity]*models.Product),
		productToken: make(map[string]*models.Product),
		sampleToken:  make(map[string]*models.Product),
		productByID:  make(map[string]*models.Product),
	}

	addIdentity := func(p *models.Product) {
		id := p.Identity()
		if !id.Valid() {
			return
		}
		if existing, ok := idx.byIdentity[id]; ok {
			s.log.Warnw("catalog_duplicate_identity",
				"product_id", id.ProductID,
				"variant_id", id.VariantID,
				"kept", existing.ID,
				"ignored", p.ID,
			)
			return
		}
		idx.byIdentity[id] = p
	}
	addTokens := func(table map[string]*models.Product, p *models.Product) {
		for _, token := range []string{p.Slug, p.Handle, p.ID} {
			if token == "" {
				continue
			}
			if existing, ok := table[token]; ok {
				if existing != p {
					s.log.Debugw("catalog_duplicate_token", "token", token, "kept", existing.ID, "ignored", p.ID)
				}
				continue
			}
			table[token] = p
		}
	}

	for i := range catalog.Products {
		p := &catalog.Products[i]
		addIdentity(p)
		addTokens(idx.productToken, p)
		if _, ok := idx.productByID[p.ID]; !ok && p.ID != "" {
			idx.productByID[p.ID] = p
		}
	}
	for i := range catalog.Accessories {
		addIdentity(&catalog.Accessories[i])
	}
	for i := range catalog.Samples {
		addTokens(idx.sampleToken, &catalog.Samples[i])
	}
	return idx
}

func (s *CatalogService) current() *catalogIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loaded 目录是否可用
func (s *CatalogService) Loaded() bool {
	return s.current() != nil
}

// Catalog 当前目录，未加载时为 nil
func (s *CatalogService) Catalog() *models.Catalog {
	if idx := s.current(); idx != nil {
		return idx.catalog
	}
	return nil
}

// FindByIdentity 按身份查找，先商品后配件，首个匹配优先
func (s *CatalogService) FindByIdentity(productID, variantID string) (*models.Product, bool) {
	idx := s.current()
	if idx == nil {
		return nil, false
	}
	p, ok := idx.byIdentity[models.Identity{ProductID: productID, VariantID: variantID}]
	return p, ok
}

// FindBySlugOrID 按 slug / handle / id 查找，先商品后样品
func (s *CatalogService) FindBySlugOrID(token string) (*models.Product, bool) {
	idx := s.current()
	if idx == nil || token == "" {
		return nil, false
	}
	if p, ok := idx.productToken[token]; ok {
		return p, true
	}
	if p, ok := idx.sampleToken[token]; ok {
		return p, true
	}
	return nil, false
}

// ProductByID 按 ID 查找主商品
func (s *CatalogService) ProductByID(id string) (*models.Product, bool) {
	idx := s.current()
	if idx == nil || id == "" {
		return nil, false
	}
	p, ok := idx.productByID[id]
	return p, ok
}
