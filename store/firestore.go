package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rushteam/eventrec/core"
)

// FirestoreStore 是 Cloud Firestore 实现的文档存储。
// 时间戳字段以 time.Time 返回，由 core.ParseDate / serialize 处理。
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore 创建 Firestore 客户端。凭据按 Google 默认凭据链解析；
// 设置 FIRESTORE_EMULATOR_HOST 时连接模拟器。
func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client %s: %w", projectID, err)
	}
	return &FirestoreStore{client: client}, nil
}

func (f *FirestoreStore) Name() string { return "firestore" }

func (f *FirestoreStore) Query(ctx context.Context, collection string, q core.Query) ([]core.Document, error) {
	query := f.client.Collection(collection).Query
	if q.Field != "" {
		query = query.Where(q.Field, "==", q.Value)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore query %s: %w", collection, err)
	}
	out := make([]core.Document, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		out = append(out, core.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return out, nil
}

func (f *FirestoreStore) Get(ctx context.Context, collection, id string) (core.Document, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return core.Document{}, core.ErrStoreNotFound
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	if !snap.Exists() {
		return core.Document{}, core.ErrStoreNotFound
	}
	return core.Document{ID: id, Data: snap.Data()}, nil
}

func (f *FirestoreStore) Put(ctx context.Context, collection string, doc core.Document) error {
	if _, err := f.client.Collection(collection).Doc(doc.ID).Set(ctx, doc.Data); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", collection, doc.ID, err)
	}
	return nil
}

func (f *FirestoreStore) Close() error {
	return f.client.Close()
}

var (
	_ core.DocumentStore  = (*FirestoreStore)(nil)
	_ core.DocumentWriter = (*FirestoreStore)(nil)
)
