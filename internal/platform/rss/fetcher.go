// Package rss はRSS・Atom・JSONフィードを取得して解析します。
package rss

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"market_gateway/internal/feature/news/usecase"
)

// DefaultConcurrency は同時に取得するフィード数の上限です。
const DefaultConcurrency = 8

// StatusError はフィードのホストが2xx以外で応答したことを表します。
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rss: %s answered %d", e.URL, e.Code)
}

// StatusCode はフィードのホストが返したHTTPステータスを返します。
func (e *StatusError) StatusCode() int { return e.Code }

// Fetcher は共有のhttp.Clientでフィードを取得するFeedFetcher実装です。
type Fetcher struct {
	client      *http.Client
	userAgent   string
	concurrency int
}

// FetcherがFeedFetcherを実装していることをコンパイル時に検証します。
var _ usecase.FeedFetcher = (*Fetcher)(nil)

// NewFetcher はFetcherの新しいインスタンスを生成します。clientにはタイムアウトを設定してください。
// concurrencyが0以下の場合はDefaultConcurrencyを使います。
func NewFetcher(client *http.Client, userAgent string, concurrency int) *Fetcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Fetcher{client: client, userAgent: userAgent, concurrency: concurrency}
}

// Fetch はフィードを1件取得して解析します。
func (f *Fetcher) Fetch(ctx context.Context, link string) (*gofeed.Feed, error) {
	// gofeed.Parserは解析状態を持つため取得ごとに生成する
	p := gofeed.NewParser()
	p.Client = f.client
	if f.userAgent != "" {
		p.UserAgent = f.userAgent
	}

	feed, err := p.ParseURLWithContext(link, ctx)
	if err != nil {
		var he gofeed.HTTPError
		if errors.As(err, &he) {
			return nil, &StatusError{URL: link, Code: he.StatusCode}
		}
		return nil, fmt.Errorf("rss: fetch %s: %w", link, err)
	}
	return feed, nil
}

// FetchAll は全リンクを並行して取得します。最初の失敗で残りの取得をキャンセルし、そのエラーを返します。
// 結果はlinksと同じ順序です。
func (f *Fetcher) FetchAll(ctx context.Context, links []string) ([]*gofeed.Feed, error) {
	out := make([]*gofeed.Feed, len(links))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, link := range links {
		g.Go(func() error {
			feed, err := f.Fetch(ctx, link)
			if err != nil {
				return err
			}
			out[i] = feed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
