package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

const photoIndexName = "album_photos"

// PhotoDocument 是写入 Elasticsearch 的照片文档
type PhotoDocument struct {
	PhotoID   uint64 `json:"photo_id"`
	BabyID    uint64 `json:"baby_id"`
	Caption   string `json:"caption"`
	PhotoDate string `json:"photo_date"` // YYYY-MM-DD
}

// PhotoIndex 提供照片描述的全文索引和搜索
type PhotoIndex interface {
	IndexPhoto(ctx context.Context, doc PhotoDocument) error
	RemovePhoto(ctx context.Context, photoID uint64) error
	// SearchCaptions 在指定宝宝的照片描述中做全文搜索，返回照片ID列表
	SearchCaptions(ctx context.Context, babyID uint64, query string, limit int) ([]uint64, error)
}

type photoIndex struct {
	es *elasticsearch.Client
}

var _ PhotoIndex = (*photoIndex)(nil)

// NewPhotoIndex 创建基于 Elasticsearch 的 PhotoIndex
func NewPhotoIndex(es *elasticsearch.Client) PhotoIndex {
	return &photoIndex{es: es}
}

func (p *photoIndex) IndexPhoto(ctx context.Context, doc PhotoDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("序列化照片文档失败: %w", err)
	}

	res, err := p.es.Index(
		photoIndexName,
		bytes.NewReader(body),
		p.es.Index.WithDocumentID(strconv.FormatUint(doc.PhotoID, 10)),
		p.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("写入照片索引失败: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("写入照片索引失败: %s", res.Status())
	}
	return nil
}

func (p *photoIndex) RemovePhoto(ctx context.Context, photoID uint64) error {
	res, err := p.es.Delete(
		photoIndexName,
		strconv.FormatUint(photoID, 10),
		p.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("删除照片索引失败: %w", err)
	}
	defer res.Body.Close()

	// 404 说明文档本来就不存在（例如没有描述的照片从未入索引），不视为错误
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("删除照片索引失败: %s", res.Status())
	}
	return nil
}

func (p *photoIndex) SearchCaptions(ctx context.Context, babyID uint64, query string, limit int) ([]uint64, error) {
	searchBody := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"match": map[string]any{
						"caption": query,
					},
				},
				"filter": map[string]any{
					"term": map[string]any{
						"baby_id": babyID,
					},
				},
			},
		},
		"size": limit,
	}

	body, err := json.Marshal(searchBody)
	if err != nil {
		return nil, fmt.Errorf("构造搜索请求失败: %w", err)
	}

	res, err := p.es.Search(
		p.es.Search.WithContext(ctx),
		p.es.Search.WithIndex(photoIndexName),
		p.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("搜索照片失败: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("搜索照片失败: %s", res.Status())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source PhotoDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("解析搜索结果失败: %w", err)
	}

	ids := make([]uint64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.PhotoID)
	}
	logger.Debug("照片描述搜索完成", zap.Uint64("babyID", babyID), zap.Int("hits", len(ids)))
	return ids, nil
}
