package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techlib/errs"
	"techlib/models"
)

func TestCreateCategory_AppendsDisplayOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, newTestLogger())

	first, err := svc.CreateCategory("位置")
	require.NoError(t, err)
	assert.Equal(t, 1, first.DisplayOrder)

	second, err := svc.CreateCategory("降服技")
	require.NoError(t, err)
	assert.Equal(t, 2, second.DisplayOrder)

	_, err = svc.CreateCategory("位置")
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = svc.CreateCategory("  ")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestRenameCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, newTestLogger())

	category, err := svc.CreateCategory("位置")
	require.NoError(t, err)
	_, err = svc.CreateCategory("扫技")
	require.NoError(t, err)

	renamed, err := svc.RenameCategory(category.ID, "基本位置")
	require.NoError(t, err)
	assert.Equal(t, "基本位置", renamed.Name)

	_, err = svc.RenameCategory(category.ID, "扫技")
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = svc.RenameCategory(category.ID, "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.RenameCategory(99999, "新名字")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMoveCategory_SwapsWithNeighbor(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, newTestLogger())

	a, err := svc.CreateCategory("a")
	require.NoError(t, err)
	b, err := svc.CreateCategory("b")
	require.NoError(t, err)
	c, err := svc.CreateCategory("c")
	require.NoError(t, err)

	// b 上移：和 a 交换排序值
	require.NoError(t, svc.MoveCategory(b.ID, "up"))
	assert.Equal(t, []string{"b", "a", "c"}, categoryOrder(t, svc))

	// 已经在最上面，再上移是空操作
	require.NoError(t, svc.MoveCategory(b.ID, "up"))
	assert.Equal(t, []string{"b", "a", "c"}, categoryOrder(t, svc))

	// c 下移也是空操作
	require.NoError(t, svc.MoveCategory(c.ID, "down"))
	assert.Equal(t, []string{"b", "a", "c"}, categoryOrder(t, svc))

	require.NoError(t, svc.MoveCategory(a.ID, "down"))
	assert.Equal(t, []string{"b", "c", "a"}, categoryOrder(t, svc))

	assert.ErrorIs(t, svc.MoveCategory(a.ID, "sideways"), errs.ErrValidation)
	assert.ErrorIs(t, svc.MoveCategory(99999, "up"), errs.ErrNotFound)
}

func TestMoveCategory_NoRowVanishesOnDuplicateOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, newTestLogger())

	// 人为制造重复排序值（相当于并发交换的中间态）
	require.NoError(t, db.Create(&models.TagCategory{Name: "x", DisplayOrder: 1}).Error)
	require.NoError(t, db.Create(&models.TagCategory{Name: "y", DisplayOrder: 1}).Error)
	require.NoError(t, db.Create(&models.TagCategory{Name: "z", DisplayOrder: 2}).Error)

	// 次级排序键是 id，列表照样三行都在
	assert.Equal(t, []string{"x", "y", "z"}, categoryOrder(t, svc))

	// 重复排序值下移动也不会让行消失
	require.NoError(t, svc.MoveCategory(2, "up"))
	names := categoryOrder(t, svc)
	assert.Len(t, names, 3)
	assert.ElementsMatch(t, []string{"x", "y", "z"}, names)
}

func TestDeleteCategory_MemberTagsBecomeUncategorized(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, newTestLogger())

	category, err := svc.CreateCategory("降服技")
	require.NoError(t, err)

	t1 := mustCreateTag(t, db, "armbar")
	t2 := mustCreateTag(t, db, "kimura")
	require.NoError(t, db.Model(&models.Tag{}).
		Where("id IN ?", []uint{t1.ID, t2.ID}).
		Update("category_id", category.ID).Error)

	require.NoError(t, svc.DeleteCategory(category.ID))

	// 标签还在，分类引用被清空
	var tags []models.Tag
	require.NoError(t, db.Order("name ASC").Find(&tags).Error)
	require.Len(t, tags, 2)
	for _, tag := range tags {
		assert.Nil(t, tag.CategoryID)
	}

	assert.ErrorIs(t, svc.DeleteCategory(category.ID), errs.ErrNotFound)
}

func TestListCategories_MembersSortedByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, newTestLogger())

	category, err := svc.CreateCategory("位置")
	require.NoError(t, err)
	empty, err := svc.CreateCategory("其他")
	require.NoError(t, err)

	mount := mustCreateTag(t, db, "mount")
	guard := mustCreateTag(t, db, "guard")
	require.NoError(t, db.Model(&models.Tag{}).
		Where("id IN ?", []uint{mount.ID, guard.ID}).
		Update("category_id", category.ID).Error)

	list, err := svc.ListCategories()
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "位置", list[0].Name)
	require.Len(t, list[0].Tags, 2)
	assert.Equal(t, "guard", list[0].Tags[0].Name)
	assert.Equal(t, "mount", list[0].Tags[1].Name)

	assert.Equal(t, empty.ID, list[1].ID)
	assert.Empty(t, list[1].Tags)
}

// categoryOrder 按展示顺序取分类名
func categoryOrder(t *testing.T, svc *CategoryService) []string {
	t.Helper()
	list, err := svc.ListCategories()
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, category := range list {
		names = append(names, category.Name)
	}
	return names
}
