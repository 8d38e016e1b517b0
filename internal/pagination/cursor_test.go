package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	score := int64(42)
	rank := 3.14
	cases := []Cursor{
		{Time: time.Unix(1700000000, 123456789).UTC(), ID: "abc"},
		{Time: time.Unix(1700000000, 0).UTC(), ID: "abc", Score: &score},
		{Time: time.Unix(1700000000, 0).UTC(), ID: "abc", Rank: &rank},
	}
	for _, c := range cases {
		got, err := Decode(c.Encode())
		require.NoError(t, err)
		require.NotNil(t, got)
		require.True(t, c.Time.Equal(got.Time))
		require.Equal(t, c.ID, got.ID)
		if c.Score != nil {
			require.NotNil(t, got.Score)
			require.Equal(t, *c.Score, *got.Score)
		}
		if c.Rank != nil {
			require.NotNil(t, got.Rank)
			require.InDelta(t, *c.Rank, *got.Rank, 1e-12)
		}
	}
}

func TestDecodeEmptyIsFirstPage(t *testing.T) {
	c, err := Decode("")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestDecodeMalformed(t *testing.T) {
	for _, s := range []string{"!!!", "bm90anNvbg", "e30"} { // 乱码 / base64(notjson) / base64({})
		_, err := Decode(s)
		require.ErrorIs(t, err, ErrBadCursor, "input=%q", s)
	}
}

func TestParseSort(t *testing.T) {
	for in, want := range map[string]Sort{"": SortNew, "new": SortNew, "hot": SortHot, "top": SortTop} {
		got, err := ParseSort(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseSort("best")
	require.Error(t, err)
}

func TestClampPageSize(t *testing.T) {
	require.Equal(t, DefaultPageSize, ClampPageSize(0))
	require.Equal(t, MinPageSize, ClampPageSize(-3))
	require.Equal(t, MaxPageSize, ClampPageSize(500))
	require.Equal(t, 7, ClampPageSize(7))
}

func TestBuild(t *testing.T) {
	cursorOf := func(n int) Cursor {
		return Cursor{Time: time.Unix(int64(n), 0), ID: "x"}
	}

	// 不满一页：无 next
	page := Build([]int{1, 2}, 5, cursorOf)
	require.Len(t, page.Items, 2)
	require.False(t, page.HasMore)
	require.Empty(t, page.NextCursor)

	// 恰好 limit+1：截断并给 next
	page = Build([]int{1, 2, 3, 4, 5, 6}, 5, cursorOf)
	require.Len(t, page.Items, 5)
	require.True(t, page.HasMore)
	require.NotEmpty(t, page.NextCursor)
}
