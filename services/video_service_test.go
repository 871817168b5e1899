package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"techlib/errs"
	"techlib/models"
)

func newVideoService(db *gorm.DB, durations DurationFetcher) *VideoService {
	return NewVideoService(db, NewFacetService(db), durations, newTestLogger())
}

// fakeDurationFetcher 测试用的时长查询桩
type fakeDurationFetcher struct {
	duration string
	err      error
}

func (f *fakeDurationFetcher) Fetch(ctx context.Context, videoURL string) (string, error) {
	return f.duration, f.err
}

func TestList_Pagination(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	for i := 1; i <= 45; i++ {
		mustCreateVideo(t, db, fmt.Sprintf("video %02d", i))
	}

	page, err := svc.List(VideoListParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, page.Videos, 20)
	assert.EqualValues(t, 45, page.Total)

	page, err = svc.List(VideoListParams{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, page.Videos, 5)
	assert.EqualValues(t, 45, page.Total)

	// 超出最后一页：空列表 + 真实总数，不报错
	page, err = svc.List(VideoListParams{Page: 4, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, page.Videos)
	assert.EqualValues(t, 45, page.Total)

	// 非法分页参数回退到默认值
	page, err = svc.List(VideoListParams{Page: -1, Limit: 0})
	require.NoError(t, err)
	assert.Len(t, page.Videos, 20)
}

func TestList_NewestFirstStableOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	first := mustCreateVideo(t, db, "oldest")
	second := mustCreateVideo(t, db, "middle")
	third := mustCreateVideo(t, db, "newest")

	page, err := svc.List(VideoListParams{})
	require.NoError(t, err)
	require.Len(t, page.Videos, 3)

	// 时间戳相同也有确定顺序：id 大的在前
	assert.Equal(t, third.ID, page.Videos[0].ID)
	assert.Equal(t, second.ID, page.Videos[1].ID)
	assert.Equal(t, first.ID, page.Videos[2].ID)
}

func TestList_SearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	mustCreateVideo(t, db, "Kimura from Side Control")
	mustCreateVideo(t, db, "Armbar Details")

	page, err := svc.List(VideoListParams{Search: "kimura"})
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, "Kimura from Side Control", page.Videos[0].Title)

	page, err = svc.List(VideoListParams{Search: "SIDE"})
	require.NoError(t, err)
	assert.Len(t, page.Videos, 1)

	page, err = svc.List(VideoListParams{Search: "berimbolo"})
	require.NoError(t, err)
	assert.Empty(t, page.Videos)
	assert.EqualValues(t, 0, page.Total)
}

func TestList_TagFilterComposesWithSearch(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	v1 := mustCreateVideo(t, db, "guard passing concepts")
	v2 := mustCreateVideo(t, db, "guard retention drills")
	v3 := mustCreateVideo(t, db, "mount attacks")

	guard := mustCreateTag(t, db, "guard")
	drills := mustCreateTag(t, db, "drills")
	mustLink(t, db, v1.ID, guard.ID)
	mustLink(t, db, v2.ID, guard.ID)
	mustLink(t, db, v2.ID, drills.ID)
	mustLink(t, db, v3.ID, drills.ID)

	// 只按标签过滤
	page, err := svc.List(VideoListParams{TagIDs: []uint{guard.ID}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	// 标签交集
	page, err = svc.List(VideoListParams{TagIDs: []uint{guard.ID, drills.ID}})
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, v2.ID, page.Videos[0].ID)

	// 标签 + 搜索叠加
	page, err = svc.List(VideoListParams{TagIDs: []uint{guard.ID}, Search: "passing"})
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, v1.ID, page.Videos[0].ID)

	// 没有视频带齐所有标签：空页
	orphan := mustCreateTag(t, db, "orphan")
	page, err = svc.List(VideoListParams{TagIDs: []uint{guard.ID, orphan.ID}})
	require.NoError(t, err)
	assert.Empty(t, page.Videos)
	assert.EqualValues(t, 0, page.Total)
}

func TestList_HydratesTagsSorted(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	video := mustCreateVideo(t, db, "omoplata chains")
	for _, name := range []string{"omoplata", "guard", "lapel"} {
		tag := mustCreateTag(t, db, name)
		mustLink(t, db, video.ID, tag.ID)
	}

	page, err := svc.List(VideoListParams{})
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)

	names := make([]string, 0, 3)
	for _, tag := range page.Videos[0].Tags {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"guard", "lapel", "omoplata"}, names)
}

func TestCreate_ValidatesAndSyncsTags(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	_, err := svc.Create("  ", "https://example.com/v", nil)
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Create("title", "  ", nil)
	assert.ErrorIs(t, err, errs.ErrValidation)

	video, err := svc.Create("Triangle Setups", "https://youtu.be/abc123", []string{"Triangle", "guard"})
	require.NoError(t, err)
	assert.False(t, video.CreatedAt.IsZero())
	assert.Equal(t, []string{"guard", "triangle"}, videoTagNames(t, db, video.ID))
}

func TestCreate_DurationEnrichment(t *testing.T) {
	db := newTestDB(t)

	svc := newVideoService(db, &fakeDurationFetcher{duration: "12:34"})
	video, err := svc.Create("with duration", "https://youtu.be/abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "12:34", video.Duration)

	// 外部接口挂了不影响创建，时长留空
	svc = newVideoService(db, &fakeDurationFetcher{err: errors.New("接口超时")})
	video, err = svc.Create("without duration", "https://youtu.be/def", nil)
	require.NoError(t, err)
	assert.Empty(t, video.Duration)
}

func TestUpdate_ReplacesTagSet(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	video, err := svc.Create("old title", "https://youtu.be/x", []string{"a", "b"})
	require.NoError(t, err)

	updated, err := svc.Update(video.ID, "new title", "https://youtu.be/y", []string{"b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "https://youtu.be/y", updated.URL)
	assert.Equal(t, []string{"b", "c"}, videoTagNames(t, db, video.ID))

	_, err = svc.Update(99999, "t", "u", nil)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDelete_CascadesLinks(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	video, err := svc.Create("doomed", "https://youtu.be/z", []string{"a", "b"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(video.ID))

	assert.EqualValues(t, 0, linkCount(t, db, "video_id = ?", video.ID))

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 2, tagCount)

	assert.ErrorIs(t, svc.Delete(video.ID), errs.ErrNotFound)
}

func TestGet(t *testing.T) {
	db := newTestDB(t)
	svc := newVideoService(db, nil)

	video, err := svc.Create("lookup", "https://youtu.be/q", []string{"guard"})
	require.NoError(t, err)

	got, err := svc.Get(video.ID)
	require.NoError(t, err)
	assert.Equal(t, "lookup", got.Title)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "guard", got.Tags[0].Name)

	_, err = svc.Get(99999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
