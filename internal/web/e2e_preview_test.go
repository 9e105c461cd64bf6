//go:build e2e

package web

import (
	"context"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
)

func TestPreviewはブラウザでXSSを防止する(t *testing.T) {
	t.Parallel()

	if !hasBrowser() {
		t.Skip("Chrome/Chromiumが見つからないためスキップします")
	}

	_, mux := newTestServer(t, map[string]map[string]any{
		"TODO": {"foreground": "#ff0000"},
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// chromedp navigation can take some time in CI environments.
	ctx, cancel = context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	var text, lineHTML string
	var nodeCount int
	var ready bool
	err := chromedp.Run(ctx,
		chromedp.Navigate(srv.URL),
		chromedp.WaitVisible(`#src`, chromedp.ByID),
		chromedp.SetValue(`#src`, `// TODO <img src=x onerror=alert(1)> & <script>alert(2)</script>`, chromedp.ByID),
		chromedp.Evaluate(`window.taglightRefresh()`, nil),
		chromedp.WaitVisible(`#out pre.taglight .line`, chromedp.ByQuery),
		chromedp.Poll(`document.querySelector('#out .code').textContent.includes('onerror')`, &ready),
		chromedp.Text(`#out .code`, &text, chromedp.ByQuery),
		chromedp.InnerHTML(`#out .code`, &lineHTML, chromedp.ByQuery),
		chromedp.Evaluate(`document.querySelectorAll('#out img, #out script').length`, &nodeCount),
	)
	if err != nil {
		t.Fatalf("chromedpの操作に失敗しました: %v", err)
	}

	if !strings.Contains(text, "<img src=x onerror=alert(1)> & <script>") {
		t.Fatalf("プレビューのテキストが期待値と異なります: %q", text)
	}
	if !strings.Contains(lineHTML, "&lt;img") || !strings.Contains(lineHTML, "#ff0000") {
		t.Fatalf("プレビューがエスケープまたは着色されていません: %q", lineHTML)
	}
	if nodeCount != 0 {
		t.Fatalf("危険なノードが挿入されています: %d", nodeCount)
	}
}

func hasBrowser() bool {
	candidates := []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"}
	for _, name := range candidates {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
