// Package usecase はRSS集約エンドポイントのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"

	"market_gateway/internal/feature/news/domain/entity"
	"market_gateway/internal/shared/apperr"
)

// MsgFeedsFailed は集約に失敗した場合にクライアントへ返すメッセージです。
const MsgFeedsFailed = "failed to fetch rss feeds"

// FeedFetcher は複数のフィードをまとめて取得します。1件でも失敗すれば全体が失敗します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FeedFetcher interface {
	FetchAll(ctx context.Context, links []string) ([]*entity.Feed, error)
}

// ShuffleFunc はrand.Shuffleと同じシグネチャの関数です。
type ShuffleFunc func(n int, swap func(i, j int))

// NewsUsecase はRSSフィードの集約ユースケースを定義します。
type NewsUsecase struct {
	fetcher FeedFetcher
	shuffle ShuffleFunc
}

// NewNewsUsecase はNewsUsecaseの新しいインスタンスを生成します。shuffleがnilの場合はrand.Shuffleを使います。
func NewNewsUsecase(fetcher FeedFetcher, shuffle ShuffleFunc) *NewsUsecase {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	return &NewsUsecase{fetcher: fetcher, shuffle: shuffle}
}

// Aggregate は全リンクを取得し、フィードをランダムな順序で返します。
func (u *NewsUsecase) Aggregate(ctx context.Context, links []string) ([]*entity.Feed, error) {
	if len(links) == 0 {
		return nil, apperr.Validation("links must contain at least one url")
	}
	if len(links) > entity.MaxLinks {
		return nil, apperr.Validation(fmt.Sprintf("links must contain at most %d urls", entity.MaxLinks))
	}

	feeds, err := u.fetcher.FetchAll(ctx, links)
	if err != nil {
		return nil, apperr.Upstream(MsgFeedsFailed, err)
	}
	u.shuffle(len(feeds), func(i, j int) { feeds[i], feeds[j] = feeds[j], feeds[i] })
	return feeds, nil
}
