package models

import (
	"encoding/json"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestMergeSampleOverlaysWithoutMutatingParent(t *testing.T) {
	parent := &Product{
		ID:          "brush",
		Slug:        "brush",
		Name:        "Brush",
		Price:       "€220.00",
		Description: "Stone panel",
		MainImage:   "https://cdn.example.com/brush.webp",
		Images:      []ProductImage{{URL: "https://cdn.example.com/a.webp", SortOrder: 1}},
		Sorting:     intPtr(1),
	}
	sample := &Product{
		ID:              "brush-sample",
		Slug:            "brush-sample",
		Name:            "Brush Sample",
		Price:           "€9.00",
		ParentProductID: "brush",
	}

	merged := MergeSample(parent, sample)
	if merged.Name != "Brush Sample" || merged.Price != "€9.00" {
		t.Fatalf("sample fields should win, got name=%s price=%s", merged.Name, merged.Price)
	}
	if merged.Description != "Stone panel" || merged.MainImage != parent.MainImage {
		t.Fatalf("parent fields should be kept when sample lacks them")
	}
	if merged.Kind != KindSample {
		t.Fatalf("merged record should be tagged as sample, got %s", merged.Kind)
	}

	merged.Images[0].URL = "changed"
	*merged.Sorting = 42
	if parent.Images[0].URL != "https://cdn.example.com/a.webp" {
		t.Fatalf("parent images mutated through merged copy")
	}
	if *parent.Sorting != 1 {
		t.Fatalf("parent sorting mutated through merged copy")
	}
	if parent.Name != "Brush" || parent.Slug != "brush" {
		t.Fatalf("parent record mutated: %+v", parent)
	}
}

func TestSortKeyDefaultsToSentinel(t *testing.T) {
	cases := []struct {
		sorting *int
		want    int
	}{
		{sorting: nil, want: 999},
		{sorting: intPtr(0), want: 999},
		{sorting: intPtr(3), want: 3},
	}
	for _, tc := range cases {
		p := Product{Sorting: tc.sorting}
		if got := p.SortKey(); got != tc.want {
			t.Fatalf("SortKey() = %d, want %d", got, tc.want)
		}
	}
}

func TestParsePriceText(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "€220.00", want: "220.00", ok: true},
		{in: "€12.5 EUR", want: "12.50", ok: true},
		{in: "1.2.3", want: "1.20", ok: true},
		{in: "EUR", ok: false},
		{in: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := ParsePriceText(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParsePriceText(%q) ok=%v want %v", tc.in, ok, tc.ok)
		}
		if ok && got.String() != tc.want {
			t.Fatalf("ParsePriceText(%q) = %s want %s", tc.in, got.String(), tc.want)
		}
	}
}

func TestMoneyUnmarshalAcceptsNumberAndString(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 19.9, "b": "€4.50", "c": null}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.A.String() != "19.90" || payload.B.String() != "4.50" || !payload.C.IsZero() {
		t.Fatalf("unexpected values: %s %s %s", payload.A, payload.B, payload.C)
	}
	if got := payload.A.Display(""); got != "€19.90 EUR" {
		t.Fatalf("display want €19.90 EUR got %s", got)
	}
}

func TestCartCloneIsIndependent(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ProductID: "p", VariantID: "v", Quantity: 1}}}
	clone := cart.Clone()
	clone.Items[0].Quantity = 5
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("clone should not share items")
	}
	if cart.IndexOf(Identity{ProductID: "p", VariantID: "v"}) != 0 {
		t.Fatalf("expected identity at index 0")
	}
	if cart.IndexOf(Identity{ProductID: "p", VariantID: "x"}) != -1 {
		t.Fatalf("expected missing identity")
	}
}

func TestMoneyUnmarshalIsLenient(t *testing.T) {
	var payload struct {
		Empty  Money `json:"empty"`
		Text   Money `json:"text"`
		Flag   Money `json:"flag"`
		Nested Money `json:"nested"`
	}
	raw := `{"empty": "", "text": "auf Anfrage", "flag": true, "nested": {"v": 1}}`
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unparseable amounts should not fail decoding: %v", err)
	}
	if !payload.Empty.IsZero() || !payload.Text.IsZero() || !payload.Flag.IsZero() || !payload.Nested.IsZero() {
		t.Fatalf("unparseable amounts should be zero: %s %s %s %s", payload.Empty, payload.Text, payload.Flag, payload.Nested)
	}
}

func TestProductDecodeToleratesLooseFields(t *testing.T) {
	cases := []struct {
		raw     string
		sortKey int
		price   string
		coerced []string
	}{
		{raw: `{"id": "a", "sorting": "2", "priceValue": "12.5"}`, sortKey: 2, price: "12.50"},
		{raw: `{"id": "b", "sorting": 1.5}`, sortKey: 1, price: "0.00"},
		{raw: `{"id": "c", "sorting": "first", "priceValue": ""}`, sortKey: 999, price: "0.00", coerced: []string{"priceValue", "sorting"}},
		{raw: `{"id": "d", "sorting": null, "priceValue": null}`, sortKey: 999, price: "0.00"},
		{raw: `{"id": "e", "sorting": [3]}`, sortKey: 999, price: "0.00", coerced: []string{"sorting"}},
	}
	for _, tc := range cases {
		var p Product
		if err := json.Unmarshal([]byte(tc.raw), &p); err != nil {
			t.Fatalf("%s: decode failed: %v", tc.raw, err)
		}
		if p.SortKey() != tc.sortKey {
			t.Fatalf("%s: sort key want %d got %d", tc.raw, tc.sortKey, p.SortKey())
		}
		if p.PriceValue.String() != tc.price {
			t.Fatalf("%s: price want %s got %s", tc.raw, tc.price, p.PriceValue.String())
		}
		got := p.CoercedFields()
		if len(got) != len(tc.coerced) {
			t.Fatalf("%s: coerced want %v got %v", tc.raw, tc.coerced, got)
		}
		for i := range got {
			if got[i] != tc.coerced[i] {
				t.Fatalf("%s: coerced want %v got %v", tc.raw, tc.coerced, got)
			}
		}
	}

	var img ProductImage
	if err := json.Unmarshal([]byte(`{"url": "a.webp", "sort_order": "3"}`), &img); err != nil || img.SortOrder != 3 {
		t.Fatalf("image sort order should accept numeric strings, got %+v err=%v", img, err)
	}
}

func TestMergeSampleHonoursExplicitEmptyFields(t *testing.T) {
	var parent, sample Product
	if err := json.Unmarshal([]byte(`{"id": "brush", "name": "Brush", "description": "Stone panel", "dimensions": "240 x 60 cm", "sorting": 1}`), &parent); err != nil {
		t.Fatalf("decode parent: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"id": "brush-sample", "name": "Brush Sample", "description": "", "sorting": null}`), &sample); err != nil {
		t.Fatalf("decode sample: %v", err)
	}

	merged := MergeSample(&parent, &sample)
	if merged.Description != "" {
		t.Fatalf("explicit empty description should win, got %q", merged.Description)
	}
	if merged.Sorting != nil {
		t.Fatalf("explicit null sorting should win, got %v", *merged.Sorting)
	}
	if merged.Dimensions != "240 x 60 cm" {
		t.Fatalf("absent sample field should keep parent value, got %q", merged.Dimensions)
	}
	if merged.Name != "Brush Sample" || merged.ID != "brush-sample" {
		t.Fatalf("sample fields should win: %+v", merged)
	}
	if parent.Description != "Stone panel" || parent.Sorting == nil {
		t.Fatalf("parent mutated by merge")
	}
}
