package feature

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/eventrec/core"
)

// ProfileFetcher 读取用户兴趣画像。
type ProfileFetcher struct {
	Store    core.DocumentStore
	Degrader *Degrader
}

// Fetch 返回用户画像；用户 ID 为空、文档不存在、读取失败或画像为空时返回 nil。
func (f *ProfileFetcher) Fetch(ctx context.Context, userID string) *core.InterestProfile {
	if f == nil || f.Store == nil || userID == "" {
		return nil
	}
	return FetchOrDefault(ctx, f.Degrader, "profile", zerolog.WarnLevel, (*core.InterestProfile)(nil),
		func(ctx context.Context) (*core.InterestProfile, error) {
			doc, err := f.Store.Get(ctx, core.CollectionUserInterests, userID)
			if err != nil {
				return nil, err
			}
			if doc.ID == "" {
				doc.ID = userID
			}
			return core.ProfileFromDocument(doc), nil
		})
}
