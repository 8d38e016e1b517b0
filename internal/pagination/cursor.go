package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// 排序方式
type Sort string

const (
	SortHot Sort = "hot"
	SortNew Sort = "new"
	SortTop Sort = "top"
)

// ParseSort 解析排序参数，空串默认 new
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case SortHot, SortNew, SortTop:
		return Sort(s), nil
	case "":
		return SortNew, nil
	default:
		return "", ErrBadSort
	}
}

const (
	MinPageSize     = 1
	MaxPageSize     = 50
	DefaultPageSize = 20
)

// ClampPageSize 把页大小收敛到 [1, 50]，0 取默认值
func ClampPageSize(n int) int {
	if n == 0 {
		return DefaultPageSize
	}
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

var (
	ErrBadCursor = errors.New("malformed cursor")
	ErrBadSort   = errors.New("unknown sort")
)

// Cursor 键集游标：时间 + id 兜底去重；分数序（top/hot）额外带 score，
// 否则同分行会被跳过或重复。对调用方完全不透明。
type Cursor struct {
	Time  time.Time `json:"t"`
	ID    string    `json:"id"`
	Score *int64    `json:"s,omitempty"`
	Rank  *float64  `json:"r,omitempty"`
}

// Encode 序列化为 URL 安全的不透明字符串
func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode 还原游标；空串返回 nil（首页）
func Decode(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrBadCursor
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, ErrBadCursor
	}
	if c.ID == "" || c.Time.IsZero() {
		return nil, ErrBadCursor
	}
	return &c, nil
}

// Page 一页结果。NextCursor 为空当且仅当 HasMore 为 false。
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// Build 按 limit+1 超查的惯例截断出一页
func Build[T any](items []T, limit int, cursorOf func(T) Cursor) Page[T] {
	if len(items) <= limit {
		return Page[T]{Items: items}
	}
	items = items[:limit]
	return Page[T]{
		Items:      items,
		NextCursor: cursorOf(items[len(items)-1]).Encode(),
		HasMore:    true,
	}
}
