package ranking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHotMonotonicInScore(t *testing.T) {
	age := 2 * time.Hour
	prev := math.Inf(-1)
	for _, score := range []int64{-100, -10, -1, 0, 1, 5, 10, 100, 10000} {
		r := Hot(score, age)
		require.GreaterOrEqual(t, r, prev, "score=%d", score)
		prev = r
	}
}

func TestHotMonotonicDecreasingInAge(t *testing.T) {
	for _, score := range []int64{-5, 0, 1, 42} {
		prev := math.Inf(1)
		for _, age := range []time.Duration{0, time.Minute, time.Hour, 24 * time.Hour, 30 * 24 * time.Hour} {
			r := Hot(score, age)
			require.LessOrEqual(t, r, prev, "score=%d age=%v", score, age)
			prev = r
		}
	}
}

func TestHotClampsLowScores(t *testing.T) {
	// |score| < 1 时对数项取 0，不得出现 NaN/Inf
	for _, score := range []int64{-1, 0, 1} {
		r := Hot(score, time.Hour)
		require.False(t, math.IsNaN(r))
		require.False(t, math.IsInf(r, 0))
	}
	// 截断后 -1/0/1 的对数项同为 0，三者并列
	require.Equal(t, Hot(0, time.Hour), Hot(1, time.Hour))
	require.Equal(t, Hot(-1, time.Hour), Hot(0, time.Hour))
	// 越过截断区后恢复严格序
	require.Greater(t, Hot(2, time.Hour), Hot(1, time.Hour))
	require.Less(t, Hot(-2, time.Hour), Hot(-1, time.Hour))
}

func TestHotNegativeAgeTreatedAsZero(t *testing.T) {
	require.Equal(t, Hot(7, 0), Hot(7, -time.Hour))
}

func TestHotEpochOrderConsistentWithHot(t *testing.T) {
	// 任意固定 now 下，HotEpoch 序与 Hot 序一致
	now := time.Now()
	type post struct {
		score   int64
		created time.Time
	}
	posts := []post{
		{score: 100, created: now.Add(-24 * time.Hour)},
		{score: 3, created: now.Add(-10 * time.Minute)},
		{score: 0, created: now.Add(-time.Minute)},
		{score: -20, created: now.Add(-2 * time.Hour)},
		{score: 50, created: now.Add(-6 * time.Hour)},
	}
	for i := range posts {
		for j := range posts {
			if i == j {
				continue
			}
			a, b := posts[i], posts[j]
			byAge := Hot(a.score, now.Sub(a.created)) > Hot(b.score, now.Sub(b.created))
			byEpoch := HotEpoch(a.score, a.created) > HotEpoch(b.score, b.created)
			require.Equal(t, byAge, byEpoch, "i=%d j=%d", i, j)
		}
	}
}

func TestLessDeterministicTieBreak(t *testing.T) {
	now := time.Now()
	created := now.Add(-time.Hour)
	a := Ranked{ID: "b", Score: 5, CreatedAt: created}
	b := Ranked{ID: "a", Score: 5, CreatedAt: created}
	// 同分同时刻退回 id 降序
	require.True(t, Less(a, b, now))
	require.False(t, Less(b, a, now))

	// 同分不同时刻退回时间降序
	newer := Ranked{ID: "a", Score: 5, CreatedAt: created.Add(time.Second)}
	require.True(t, Less(newer, a, now))
}
