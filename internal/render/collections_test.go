package render

import (
	"testing"

	"github.com/dujiao-next/storefront/internal/models"
)

func sortingPtr(v int) *int { return &v }

func ids(items []models.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSortBySortingIsStable(t *testing.T) {
	items := []models.Product{
		{ID: "a"},
		{ID: "b", Sorting: sortingPtr(2)},
		{ID: "c"},
		{ID: "d", Sorting: sortingPtr(1)},
		{ID: "e", Sorting: sortingPtr(0)},
		{ID: "f", Sorting: sortingPtr(2)},
	}
	got := ids(SortBySorting(items))
	if !equalIDs(got, "d", "b", "f", "a", "c", "e") {
		t.Fatalf("unexpected order %v", got)
	}
	if items[0].ID != "a" {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestFilterMainProducts(t *testing.T) {
	products := []models.Product{
		{ID: "brush", Category: "AKUROCK Akustikpaneele"},
		{ID: "brush-sample", Category: "AKUROCK Akustikpaneele"},
		{ID: "felt", Category: "AKUROCK Zubehör"},
		{ID: "tagged", Category: "AKUROCK Akustikpaneele", Kind: models.KindSample},
	}
	got := ids(FilterMainProducts(products, "AKUROCK Akustikpaneele", ""))
	if !equalIDs(got, "brush") {
		t.Fatalf("unexpected selection %v", got)
	}
}

func TestHomeProductsTakesFirstFourSorted(t *testing.T) {
	var products []models.Product
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6"} {
		products = append(products, models.Product{ID: id, Category: "AKUROCK Akustikpaneele", Sorting: sortingPtr(6 - i)})
	}
	products = append(products, models.Product{ID: "other", Category: "misc", Sorting: sortingPtr(0)})
	got := ids(HomeProducts(products, "AKUROCK Akustikpaneele", 4))
	if !equalIDs(got, "p6", "p5", "p4", "p3") {
		t.Fatalf("unexpected home products %v", got)
	}
}

func TestMainAccessoriesAllowList(t *testing.T) {
	accessories := []models.Product{
		{ID: "kartuschenpresse", Sorting: sortingPtr(1)},
		{ID: "wandkleber", Sorting: sortingPtr(3)},
		{ID: "schrauben-weiss", Sorting: sortingPtr(2)},
		{ID: "nano-versiegelung"},
		{ID: "wandschrauben-schwarz"},
	}
	got := ids(MainAccessories(accessories, []string{"schrauben-weiss", "wandschrauben-schwarz", "wandkleber"}))
	if !equalIDs(got, "schrauben-weiss", "wandkleber", "wandschrauben-schwarz") {
		t.Fatalf("unexpected main accessories %v", got)
	}
}

func TestPageAccessoriesFiltersByCategoryOnly(t *testing.T) {
	accessories := []models.Product{
		{ID: "nano-versiegelung", Category: "AKUROCK Zubehör", Sorting: sortingPtr(5)},
		{ID: "brush-sample", Category: "AKUROCK Muster"},
		{ID: "kartuschenpresse", Category: "AKUROCK Zubehör", Sorting: sortingPtr(1)},
	}
	got := ids(PageAccessories(accessories, "AKUROCK Zubehör"))
	if !equalIDs(got, "kartuschenpresse", "nano-versiegelung") {
		t.Fatalf("unexpected accessories %v", got)
	}
}

func TestOrderGallery(t *testing.T) {
	p := &models.Product{
		Name:      "Brush",
		MainImage: "main.webp",
		Images: []models.ProductImage{
			{URL: "b.webp", SortOrder: 2, Type: "installation"},
			{URL: "", SortOrder: 0, Type: "broken"},
			{URL: "a.webp", SortOrder: 1, Type: "panel"},
		},
	}
	got := OrderGallery(p)
	if len(got) != 3 {
		t.Fatalf("expected synthetic main + 2 images, got %+v", got)
	}
	if !got[0].Synthetic || got[0].URL != "main.webp" || got[0].Alt != "Brush" {
		t.Fatalf("main image should be prepended: %+v", got[0])
	}
	if got[1].URL != "a.webp" || got[1].Alt != "Brush - panel" || got[2].URL != "b.webp" {
		t.Fatalf("images should follow sort_order: %+v", got)
	}

	p.Images = append(p.Images, models.ProductImage{URL: "main.webp", SortOrder: 9})
	got = OrderGallery(p)
	if got[0].Synthetic || len(got) != 3 {
		t.Fatalf("main image already present must not be duplicated: %+v", got)
	}
}

func TestFindProductLinkIgnoresCase(t *testing.T) {
	products := []models.Product{{ID: "yami", Name: "Yami"}, {ID: "brush", Name: "Brush"}}
	if p := FindProductLink(products, "YAMI"); p == nil || p.ID != "yami" {
		t.Fatalf("expected yami, got %+v", p)
	}
	if p := FindProductLink(products, "brush"); p == nil || p.ID != "brush" {
		t.Fatalf("expected brush, got %+v", p)
	}
	if FindProductLink(products, "nothing") != nil {
		t.Fatalf("unknown link should not resolve")
	}
}
