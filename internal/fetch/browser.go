package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders a page in headless Chrome and returns its HTML.
// Used as the final fallback for sites that require JavaScript; disabled
// unless BROWSER_FALLBACK is set.
type BrowserFetcher struct {
	allocatorPool *sync.Pool
	timeout       time.Duration
}

func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.UserAgent(userAgent),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}
	return &BrowserFetcher{
		allocatorPool: pool,
		timeout:       timeout,
	}
}

func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	allocCtx := b.allocatorPool.Get().(context.Context)
	defer b.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, b.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}
