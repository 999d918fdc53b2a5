package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	var (
		outPath   string
		resetCart bool
	)
	flag.StringVar(&outPath, "out", "", "目录输出文件（缺省为 catalog.path）")
	flag.BoolVar(&resetCart, "reset-cart", false, "清空 storage 中保存的购物车")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if strings.TrimSpace(outPath) == "" {
		outPath = cfg.Catalog.Path
	}
	catalog := sampleCatalog(cfg.Catalog)
	payload, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		stdLog.Fatalf("Failed to encode catalog: %v", err)
	}

	// 写入前用同一套规则校验，保证产物可被页面加载
	if _, err := service.NewCatalogService(logger.Component("seed")).Load(payload); err != nil {
		stdLog.Fatalf("Seed catalog failed validation: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		stdLog.Fatalf("Failed to create catalog dir: %v", err)
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		stdLog.Fatalf("Failed to write catalog: %v", err)
	}
	logger.Infow("seed_catalog_written",
		"path", outPath,
		"products", len(catalog.Products),
		"samples", len(catalog.Samples),
		"accessories", len(catalog.Accessories),
	)

	if !resetCart {
		return
	}
	kv, closer, err := provider.NewKVRepository(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to open storage: %v", err)
	}
	defer func() { _ = closer() }()
	if err := kv.Delete(context.Background(), cfg.Storage.Key); err != nil {
		stdLog.Fatalf("Failed to reset cart: %v", err)
	}
	logger.Infow("seed_cart_reset", "driver", cfg.Storage.Driver, "key", cfg.Storage.Key)
}

func price(amount string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(amount))
}

func sorting(v int) *int {
	return &v
}

func panel(id, name, amount string, order int, color string) models.Product {
	money := price(amount)
	return models.Product{
		ID:         id,
		Slug:       id,
		ProductID:  "p-" + id,
		VariantID:  "v-" + id,
		Name:       name,
		Price:      constants.CurrencySymbol + money.StringFixed(2),
		PriceValue: money,
		Currency:   constants.DefaultCurrency,
		Dimensions: "240 x 60 x 2.3 cm (1.44m²)",
		MainImage:  "/images/" + id + "-main.webp",
		Images: []models.ProductImage{
			{URL: "/images/" + id + "-panel.webp", SortOrder: 1, Type: "panel"},
			{URL: "/images/" + id + "-installation.webp", SortOrder: 2, Type: "installation"},
		},
		Category: constants.CategoryMainProducts,
		Sorting:  sorting(order),
		Color:    color,
	}
}

func accessory(id, name, amount string, order int) models.Product {
	money := price(amount)
	return models.Product{
		ID:          id,
		Slug:        id,
		ProductID:   "p-" + id,
		VariantID:   "v-" + id,
		Name:        name,
		Price:       constants.CurrencySymbol + money.StringFixed(2),
		PriceValue:  money,
		Currency:    constants.DefaultCurrency,
		MainImage:   "/images/" + id + ".webp",
		Category:    constants.CategoryAccessories,
		Sorting:     sorting(order),
		Description: name,
	}
}

func sampleCatalog(cfg config.CatalogConfig) *models.Catalog {
	brush := panel("brush", "Brush", "220", 1, "#d8d2c8")
	brush.SpecialFieldText = cfg.HeroDefault
	yami := panel("yami", "Yami", "240", 2, "#2f2f2f")
	yami.SpecialFieldSlogan = "Quiet rooms, warm stone."
	gaia := panel("gaia", "Gaia", "199.50", 3, "#8c7a64")

	sample := models.Product{
		ID:              "brush" + cfg.SampleMarker,
		Slug:            "brush" + cfg.SampleMarker,
		ProductID:       "p-brush-sample",
		VariantID:       "v-brush-sample",
		Name:            "Brush Sample",
		Price:           constants.CurrencySymbol + "9.00",
		PriceValue:      price("9"),
		ParentProductID: "brush",
	}

	return &models.Catalog{
		Products: []models.Product{brush, yami, gaia},
		Samples:  []models.Product{sample},
		Accessories: []models.Product{
			accessory("schrauben-weiss", "Schrauben weiß", "12", 1),
			accessory("wandschrauben-schwarz", "Schrauben schwarz", "12", 2),
			accessory("wandkleber", "Wandkleber", "15.50", 3),
		},
	}
}
