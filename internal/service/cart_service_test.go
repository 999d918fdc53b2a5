package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"go.uber.org/zap"
)

type failingKVRepository struct{}

func (failingKVRepository) Get(context.Context, string) (string, error) {
	return "", errors.New("storage offline")
}

func (failingKVRepository) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func (failingKVRepository) Delete(context.Context, string) error {
	return errors.New("storage offline")
}

func newTestCartService(t *testing.T, repo repository.KVRepository) (*CartService, *recordingRenderer) {
	t.Helper()
	renderer := &recordingRenderer{}
	store := NewCartStore(repo, "", zap.NewNop().Sugar())
	svc := NewCartService(newTestCatalog(t), store, renderer, zap.NewNop().Sugar())
	svc.Init(context.Background())
	return svc, renderer
}

func TestAddItemMergesSameIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, repository.NewMemoryKVRepository())
	if !svc.AddItem(ctx, "p-brush", "v1", 1) {
		t.Fatalf("first add should succeed")
	}
	if !svc.AddItem(ctx, "p-brush", "v1", 2) {
		t.Fatalf("second add should succeed")
	}
	snapshot := svc.Snapshot(ctx)
	if snapshot.Len() != 1 || snapshot.Items[0].Quantity != 3 {
		t.Fatalf("expected one line with quantity 3, got %+v", snapshot.Items)
	}
	if got := svc.Total(ctx); got != 660 {
		t.Fatalf("total want 660 got %v", got)
	}
	if got := svc.Count(ctx); got != 3 {
		t.Fatalf("count want 3 got %d", got)
	}
}

func TestAddItemRejectsUnknownIdentity(t *testing.T) {
	ctx := context.Background()
	svc, renderer := newTestCartService(t, repository.NewMemoryKVRepository())
	before := renderer.carts
	if svc.AddItem(ctx, "ghost", "v9", 1) {
		t.Fatalf("unknown identity should be rejected")
	}
	if svc.AddItem(ctx, "p-brush", "v1", 0) {
		t.Fatalf("non-positive quantity should be rejected")
	}
	if svc.Snapshot(ctx).Len() != 0 {
		t.Fatalf("rejected add must not mutate cart")
	}
	if renderer.carts != before {
		t.Fatalf("rejected add must not re-render")
	}
}

func TestAddItemCapturesSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, repository.NewMemoryKVRepository())
	svc.AddItem(ctx, "p-brush", "v1", 1)
	svc.AddItem(ctx, "p-gaia", "v1", 1)
	svc.AddItem(ctx, "p-glue", "a1", 1)
	items := svc.Snapshot(ctx).Items

	brush := items[0]
	if brush.ProductSlug != "brush" || brush.Price != 220 || brush.PriceDisplay != "€220.00" {
		t.Fatalf("unexpected brush snapshot: %+v", brush)
	}
	if brush.Dimensions != "240 x 60 x 2.3 cm" {
		t.Fatalf("decimal measurement should be kept when it is the only text, got %q", brush.Dimensions)
	}
	if brush.Image != "https://cdn.example.com/brush.webp" {
		t.Fatalf("main image expected, got %q", brush.Image)
	}

	gaia := items[1]
	if gaia.Price != 199.5 {
		t.Fatalf("price should be parsed from display text, got %v", gaia.Price)
	}
	if gaia.Image != "https://cdn.example.com/gaia-2.webp" {
		t.Fatalf("first image url expected, got %q", gaia.Image)
	}
	if gaia.Dimensions != "120" {
		t.Fatalf("size fallback should be shortened, got %q", gaia.Dimensions)
	}

	glue := items[2]
	if glue.Currency != "EUR" || glue.ProductSlug != "wandkleber" {
		t.Fatalf("unexpected accessory snapshot: %+v", glue)
	}
}

func TestShortDimensions(t *testing.T) {
	cases := map[string]string{
		"240 x 60 x 2.3 cm (1.44m²)":         "240 x 60 x 2.3 cm",
		"Panel 240 x 60.5 x 2.3 cm":          "Panel 240",
		"Panel 120 x 60 x 2 cm (0.72m²)":     "Panel 120",
		"50 pcs.":                            "50 pcs.",
		"(only area)":                        "",
		"":                                   "",
		"Brush 240 x 60.5 x 2.3 cm trailing": "Brush 240 trailing",
	}
	for in, want := range cases {
		if got := ShortDimensions(in); got != want {
			t.Fatalf("ShortDimensions(%q) = %q want %q", in, got, want)
		}
	}
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	ctx := context.Background()
	for _, q := range []int{0, -1} {
		svc, _ := newTestCartService(t, repository.NewMemoryKVRepository())
		svc.AddItem(ctx, "p-brush", "v1", 3)
		svc.UpdateQuantity(ctx, "p-brush", "v1", q)
		if svc.Snapshot(ctx).Len() != 0 {
			t.Fatalf("quantity %d should remove the item", q)
		}
	}
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, repository.NewMemoryKVRepository())
	svc.AddItem(ctx, "p-brush", "v1", 3)
	svc.UpdateQuantity(ctx, "p-brush", "v1", 5)
	if item, ok := svc.Item(ctx, "p-brush", "v1"); !ok || item.Quantity != 5 {
		t.Fatalf("quantity should be overwritten to 5, got %+v", item)
	}
	svc.UpdateQuantity(ctx, "ghost", "v9", 4)
	if svc.Snapshot(ctx).Len() != 1 {
		t.Fatalf("updating an absent identity must not add lines")
	}
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, repository.NewMemoryKVRepository())
	svc.AddItem(ctx, "p-brush", "v1", 2)
	before := svc.Snapshot(ctx)
	svc.RemoveItem(ctx, "ghost", "v9")
	after := svc.Snapshot(ctx)
	if after.Len() != before.Len() || after.Items[0] != before.Items[0] {
		t.Fatalf("removing an absent identity changed the cart")
	}
}

func TestMutationOrderPersistThenRender(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryKVRepository()
	svc, renderer := newTestCartService(t, repo)
	renderer.events = nil
	svc.AddItem(ctx, "p-brush", "v1", 2)
	if strings.Join(renderer.events, ",") != "cart,badge" {
		t.Fatalf("render order want cart,badge got %v", renderer.events)
	}
	if renderer.badges[len(renderer.badges)-1] != 2 {
		t.Fatalf("badge should show 2, got %v", renderer.badges)
	}
	raw, err := repo.Get(ctx, "stonearts-cart")
	if err != nil || !strings.Contains(raw, `"quantity":2`) {
		t.Fatalf("cart should be persisted before render, got %q err=%v", raw, err)
	}
}

func TestCartSurvivesReload(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryKVRepository()
	svc, _ := newTestCartService(t, repo)
	svc.AddItem(ctx, "p-brush", "v1", 2)
	svc.AddItem(ctx, "p-glue", "a1", 1)

	reloaded, _ := newTestCartService(t, repo)
	want := svc.Snapshot(ctx)
	got := reloaded.Snapshot(ctx)
	if got.Len() != want.Len() {
		t.Fatalf("reloaded cart length mismatch")
	}
	for i := range want.Items {
		if got.Items[i] != want.Items[i] {
			t.Fatalf("item %d mismatch: %+v vs %+v", i, got.Items[i], want.Items[i])
		}
	}
}

func TestStorageFaultsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, failingKVRepository{})
	if !svc.AddItem(ctx, "p-brush", "v1", 1) {
		t.Fatalf("add should succeed even when persistence fails")
	}
	if svc.Count(ctx) != 1 {
		t.Fatalf("in-memory cart should remain authoritative")
	}
}

func TestCartInvariantsUnderRandomOperations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, repository.NewMemoryKVRepository())
	identities := []models.Identity{
		{ProductID: "p-brush", VariantID: "v1"},
		{ProductID: "p-gaia", VariantID: "v1"},
		{ProductID: "p-glue", VariantID: "a1"},
		{ProductID: "ghost", VariantID: "v9"},
	}
	rng := rand.New(rand.NewSource(42))
	for step := 0; step < 500; step++ {
		id := identities[rng.Intn(len(identities))]
		switch rng.Intn(3) {
		case 0:
			svc.AddItem(ctx, id.ProductID, id.VariantID, rng.Intn(4)+1)
		case 1:
			svc.RemoveItem(ctx, id.ProductID, id.VariantID)
		default:
			svc.UpdateQuantity(ctx, id.ProductID, id.VariantID, rng.Intn(6)-2)
		}

		snapshot := svc.Snapshot(ctx)
		seen := make(map[models.Identity]bool)
		expected := CartTotal(snapshot)
		for _, item := range snapshot.Items {
			if seen[item.Identity()] {
				t.Fatalf("step %d: duplicate identity %+v", step, item.Identity())
			}
			seen[item.Identity()] = true
			if item.Quantity < 1 {
				t.Fatalf("step %d: quantity below one %+v", step, item)
			}
		}
		if svc.Total(ctx) != expected.Float64() {
			t.Fatalf("step %d: total mismatch", step)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	svc, _ := newTestCartService(t, repository.NewMemoryKVRepository())
	if got := svc.FormatPrice(660, "EUR"); got != "€660.00 EUR" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := svc.FormatPrice(12.5, ""); got != "€12.50 EUR" {
		t.Fatalf("unexpected default currency format %q", got)
	}
}
