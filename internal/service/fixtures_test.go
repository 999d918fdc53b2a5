package service

import (
	"testing"

	"github.com/dujiao-next/storefront/internal/models"

	"go.uber.org/zap"
)

const testCatalogJSON = `{
  "products": [
    {"id": "brush", "slug": "brush", "productId": "p-brush", "variantId": "v1", "name": "Brush",
     "price": "€220.00", "priceValue": 220, "currency": "EUR",
     "dimensions": "240 x 60 x 2.3 cm (1.44m²)", "mainImage": "https://cdn.example.com/brush.webp",
     "category": "AKUROCK Akustikpaneele", "sorting": 1, "special_field_text": "Stone meets sound."},
    {"id": "yami", "slug": "yami", "handle": "yami-panel", "productId": "p-yami", "variantId": "v1", "name": "Yami",
     "price": "€240.00", "category": "AKUROCK Akustikpaneele", "sorting": 2,
     "special_field_slogan": "Modern and calm."},
    {"id": "gaia", "slug": "gaia", "productId": "p-gaia", "variantId": "v1", "name": "Gaia",
     "price": "€199.50", "currency": "EUR", "size": "120 x 60 x 2 cm",
     "images": [{"url": "https://cdn.example.com/gaia-2.webp", "sort_order": 2}, {"url": "https://cdn.example.com/gaia-1.webp", "sort_order": 1}],
     "category": "AKUROCK Akustikpaneele"}
  ],
  "samples": [
    {"id": "brush-sample", "slug": "brush-sample", "productId": "p-brush-sample", "variantId": "s1",
     "name": "Brush Sample", "price": "€9.00", "parent_product_id": "brush"},
    {"id": "orphan-sample", "slug": "orphan-sample", "name": "Orphan Sample", "parent_product_id": "missing"}
  ],
  "accessories": [
    {"id": "wandkleber", "slug": "wandkleber", "productId": "p-glue", "variantId": "a1", "name": "Wandkleber",
     "price": "€15.00", "priceValue": 15, "category": "AKUROCK Zubehör", "sorting": 3},
    {"id": "brush-dup", "productId": "p-brush", "variantId": "v1", "name": "Shadowed Accessory"}
  ]
}`

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	svc := NewCatalogService(zap.NewNop().Sugar())
	if _, err := svc.Load([]byte(testCatalogJSON)); err != nil {
		t.Fatalf("load catalog failed: %v", err)
	}
	return svc
}

type recordingRenderer struct {
	events []string
	carts  int
	badges []int
}

func (r *recordingRenderer) RenderCart(_ *models.Cart) {
	r.events = append(r.events, "cart")
	r.carts++
}

func (r *recordingRenderer) RenderBadge(count int) {
	r.events = append(r.events, "badge")
	r.badges = append(r.badges, count)
}
