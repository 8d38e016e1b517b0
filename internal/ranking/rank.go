package ranking

import (
	"math"
	"time"
)

// 热度衰减常数：约 12.5 小时热度降一个数量级
const decaySeconds = 45000.0

// Hot 计算热度排序值：票数取对数（保号、|score| 下限 1），随帖龄线性衰减。
// score 单调递增、age 单调递减；age 为 NaN 或负数时按 0 处理。
func Hot(score int64, age time.Duration) float64 {
	ageSeconds := age.Seconds()
	if math.IsNaN(ageSeconds) || ageSeconds < 0 {
		ageSeconds = 0
	}

	sign := 0.0
	switch {
	case score > 0:
		sign = 1
	case score < 0:
		sign = -1
	}

	magnitude := math.Abs(float64(score))
	if magnitude < 1 {
		magnitude = 1
	}

	return sign*math.Log10(magnitude) - ageSeconds/decaySeconds
}

// HotEpoch 以纪元为基准的热度键：sign*log10(|score|) + created/45000。
// 与 Hot 在任意固定 now 下排序一致，但不随查询时刻漂移，
// 适合落库做键集分页的排序列。
func HotEpoch(score int64, createdAt time.Time) float64 {
	sign := 0.0
	switch {
	case score > 0:
		sign = 1
	case score < 0:
		sign = -1
	}
	magnitude := math.Abs(float64(score))
	if magnitude < 1 {
		magnitude = 1
	}
	return sign*math.Log10(magnitude) + float64(createdAt.Unix())/decaySeconds
}

// Ranked 参与热度排序的最小字段集
type Ranked struct {
	ID        string
	Score     int64
	CreatedAt time.Time
}

// HotAt 以 now 为基准计算条目的热度值
func HotAt(r Ranked, now time.Time) float64 {
	return Hot(r.Score, now.Sub(r.CreatedAt))
}

// Less 热度排序比较器：rank 降序；浮点相等时退回
// created_at 降序、id 降序，保证全序可复现（分页依赖）。
func Less(a, b Ranked, now time.Time) bool {
	ra, rb := HotAt(a, now), HotAt(b, now)
	if ra != rb {
		return ra > rb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
