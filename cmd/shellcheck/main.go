package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dujiao-next/storefront/internal/bridge"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/render"
	"github.com/dujiao-next/storefront/internal/session"
	"github.com/dujiao-next/storefront/internal/shell"
)

// addSpecs 多次出现的 -add 参数
type addSpecs []bridge.Submission

func (a *addSpecs) String() string {
	parts := make([]string, 0, len(*a))
	for _, s := range *a {
		parts = append(parts, s.ProductID+":"+s.VariantID+":"+s.QuantityRaw)
	}
	return strings.Join(parts, ",")
}

func (a *addSpecs) Set(raw string) error {
	sub, err := parseAddSpec(raw)
	if err != nil {
		return err
	}
	*a = append(*a, sub)
	return nil
}

// parseAddSpec 解析 productId:variantId[:quantity]
func parseAddSpec(raw string) (bridge.Submission, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return bridge.Submission{}, fmt.Errorf("add spec %q: want productId:variantId[:quantity]", raw)
	}
	sub := bridge.Submission{
		ProductID: strings.TrimSpace(parts[0]),
		VariantID: strings.TrimSpace(parts[1]),
	}
	if sub.ProductID == "" || sub.VariantID == "" {
		return bridge.Submission{}, fmt.Errorf("add spec %q: empty identity", raw)
	}
	if len(parts) == 3 {
		sub.QuantityRaw = strings.TrimSpace(parts[2])
		sub.HasQuantity = true
	}
	return sub, nil
}

func main() {
	var (
		shellPath string
		pageURL   string
		populate  bool
		outPath   string
		adds      addSpecs
	)
	flag.StringVar(&shellPath, "shell", "", "页面外壳 HTML 文件")
	flag.StringVar(&pageURL, "url", "", "页面地址（缺省为 /<文件名>），例如 /detail_product.html?product=yami")
	flag.BoolVar(&populate, "populate", false, "加载目录并输出填充后的页面")
	flag.StringVar(&outPath, "out", "", "填充结果输出文件（缺省为标准输出）")
	flag.Var(&adds, "add", "填充后加入购物车 productId:variantId[:quantity]，可重复")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if strings.TrimSpace(shellPath) == "" {
		stdLog.Fatalf("缺少 -shell 参数")
	}
	u, err := resolvePageURL(pageURL, shellPath)
	if err != nil {
		stdLog.Fatalf("页面地址无效: %v", err)
	}

	doc, err := shell.ParseFile(shellPath, cfg.Shell.Selectors)
	if err != nil {
		stdLog.Fatalf("解析页面失败: %v", err)
	}
	kind, findings := shell.Lint(doc, u.Path, true)
	fmt.Fprintf(os.Stderr, "page=%s kind=%s\n", u.Path, kind)
	for _, f := range findings {
		if f.Slot == "" {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", f.Severity, f.Message)
			continue
		}
		fmt.Fprintf(os.Stderr, "  [%s] %s: %s (count=%d)\n", f.Severity, f.Slot, f.Message, f.Count)
	}
	if shell.HasErrors(findings) && !populate {
		os.Exit(1)
	}
	if !populate {
		return
	}

	if err := run(context.Background(), cfg, doc, u, adds, outPath); err != nil {
		stdLog.Fatalf("填充失败: %v", err)
	}
}

func resolvePageURL(raw, shellPath string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "/" + filepath.Base(shellPath)
	}
	return url.Parse(raw)
}

func run(ctx context.Context, cfg *config.Config, doc *shell.Document, u *url.URL, adds addSpecs, outPath string) error {
	container, err := provider.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := container.Close(); cerr != nil {
			logger.Warnw("shellcheck_close_failed", "error", cerr)
		}
	}()

	scheduler := render.NewManualScheduler()
	sess, err := session.New(session.Options{
		Config:        cfg,
		Logger:        logger.Component("shellcheck"),
		Scheduler:     scheduler,
		KVRepo:        container.KVRepo,
		CatalogSource: container.CatalogSource,
	})
	if err != nil {
		return err
	}
	if err := sess.Start(ctx); err != nil {
		return err
	}
	if _, err := sess.Populate(ctx, doc, u); err != nil {
		return err
	}
	for _, sub := range adds {
		if err := sess.Submit(ctx, sub); err != nil {
			if errors.Is(err, bridge.ErrItemRejected) {
				logger.Warnw("shellcheck_add_rejected", "product_id", sub.ProductID, "variant_id", sub.VariantID)
				continue
			}
			return err
		}
	}
	scheduler.Flush()

	markup, err := doc.HTML()
	if err != nil {
		return err
	}
	if strings.TrimSpace(outPath) == "" {
		_, err = fmt.Fprintln(os.Stdout, markup)
		return err
	}
	return os.WriteFile(outPath, []byte(markup), 0o644)
}
