package store

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/eventrec/core"
)

// LoadFixtures 从 YAML 文件导入文档。文件结构：
//
//	events:
//	  e1:
//	    status: active
//	    category: music
//	    date: 2030-01-01T20:00:00Z
//	userInterestProfiles:
//	  u1:
//	    topCategories: {music: 3}
//
// 集合与文档按 key 排序写入，保证导入顺序稳定。返回写入的文档数。
func LoadFixtures(ctx context.Context, w core.DocumentWriter, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read fixtures: %w", err)
	}
	return ImportFixtures(ctx, w, raw)
}

// ImportFixtures 同 LoadFixtures，输入为 YAML 内容。
func ImportFixtures(ctx context.Context, w core.DocumentWriter, raw []byte) (int, error) {
	var fixtures map[string]map[string]map[string]any
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return 0, fmt.Errorf("parse fixtures: %w", err)
	}

	n := 0
	for _, collection := range sortedKeys(fixtures) {
		docs := fixtures[collection]
		for _, id := range sortedKeys(docs) {
			doc := core.Document{ID: id, Data: docs[id]}
			if err := w.Put(ctx, collection, doc); err != nil {
				return n, fmt.Errorf("import %s/%s: %w", collection, id, err)
			}
			n++
		}
	}
	return n, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
