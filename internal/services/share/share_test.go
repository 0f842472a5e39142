package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeShareLinkRepo 用内存切片模拟分享链接仓库
type fakeShareLinkRepo struct {
	links  []*models.ShareLink
	nextID uint64
	err    error // 非nil时所有操作返回该错误
}

func newFakeShareLinkRepo() *fakeShareLinkRepo {
	return &fakeShareLinkRepo{nextID: 1}
}

func (f *fakeShareLinkRepo) Replace(_ context.Context, link *models.ShareLink) error {
	if f.err != nil {
		return f.err
	}
	for _, l := range f.links {
		if l.BabyID == link.BabyID && l.IsActive {
			l.IsActive = false
		}
	}
	link.ID = f.nextID
	f.nextID++
	f.links = append(f.links, link)
	return nil
}

func (f *fakeShareLinkRepo) DeactivateAllByBabyID(_ context.Context, babyID uint64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, l := range f.links {
		if l.BabyID == babyID && l.IsActive {
			l.IsActive = false
			count++
		}
	}
	return count, nil
}

func (f *fakeShareLinkRepo) FindActiveByToken(_ context.Context, token string) (*models.ShareLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, l := range f.links {
		if l.Token == token && l.IsActive {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeShareLinkRepo) FindActiveByBabyID(_ context.Context, babyID uint64) (*models.ShareLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, l := range f.links {
		if l.BabyID == babyID && l.IsActive {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeShareLinkRepo) Update(_ context.Context, link *models.ShareLink) error {
	return f.err
}

// fakeBabyRepo 只实现分享服务用到的查询
type fakeBabyRepo struct {
	babies map[uint64]*models.Baby
}

func newFakeBabyRepo(babies ...*models.Baby) *fakeBabyRepo {
	m := make(map[uint64]*models.Baby)
	for _, b := range babies {
		m[b.ID] = b
	}
	return &fakeBabyRepo{babies: m}
}

func (f *fakeBabyRepo) Create(baby *models.Baby) error { return nil }
func (f *fakeBabyRepo) FindByID(id uint64) (*models.Baby, error) {
	return f.babies[id], nil
}
func (f *fakeBabyRepo) FindAllByCreator(userID uint64) ([]models.Baby, error) { return nil, nil }
func (f *fakeBabyRepo) Update(baby *models.Baby) error                        { return nil }

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestService() (ShareService, *fakeShareLinkRepo) {
	repo := newFakeShareLinkRepo()
	babyRepo := newFakeBabyRepo(&models.Baby{ID: 1, Name: "小宝", CreatedBy: 10})
	return NewShareService(repo, babyRepo), repo
}

func TestIssueShareLink(t *testing.T) {
	ctx := context.Background()

	t.Run("生成的token是唯一的UUID", func(t *testing.T) {
		svc, _ := newTestService()

		first, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)
		second, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)

		assert.Len(t, first.Token, 36)
		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("重新生成后旧链接失效", func(t *testing.T) {
		svc, repo := newTestService()

		first, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)
		second, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)

		// 旧token不再可用
		result := svc.Validate(ctx, first.Token, nil)
		assert.Equal(t, StatusDenied, result.Status)
		assert.Equal(t, DenyInvalidOrExpired, result.Reason)

		// 新token可用，且数据库里只有一条活跃记录
		result = svc.Validate(ctx, second.Token, nil)
		assert.Equal(t, StatusGranted, result.Status)

		active := 0
		for _, l := range repo.links {
			if l.IsActive {
				active++
			}
		}
		assert.Equal(t, 1, active)
	})

	t.Run("密码只保存哈希", func(t *testing.T) {
		svc, repo := newTestService()

		link, err := svc.IssueShareLink(ctx, 10, 1, strPtr("sunshine"), nil)
		require.NoError(t, err)
		require.NotNil(t, link.PasswordHash)
		assert.NotContains(t, *link.PasswordHash, "sunshine")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*repo.links[0].PasswordHash), []byte("sunshine")))
	})

	t.Run("非创建者不能生成链接", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.IssueShareLink(ctx, 99, 1, nil, nil)
		assert.ErrorIs(t, err, xerr.ErrPermissionDenied)
	})

	t.Run("宝宝档案不存在", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.IssueShareLink(ctx, 10, 42, nil, nil)
		assert.ErrorIs(t, err, xerr.ErrBabyNotFound)
	})

	t.Run("设置有效期", func(t *testing.T) {
		svc, _ := newTestService()

		link, err := svc.IssueShareLink(ctx, 10, 1, nil, intPtr(60))
		require.NoError(t, err)
		require.NotNil(t, link.ExpiresAt)
		assert.WithinDuration(t, time.Now().Add(time.Hour), *link.ExpiresAt, 5*time.Second)
	})
}

func TestRevokeShareLinks(t *testing.T) {
	ctx := context.Background()

	t.Run("撤销后校验被拒绝", func(t *testing.T) {
		svc, _ := newTestService()

		link, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)

		count, err := svc.RevokeShareLinks(ctx, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		result := svc.Validate(ctx, link.Token, nil)
		assert.Equal(t, StatusDenied, result.Status)
		assert.Equal(t, DenyInvalidOrExpired, result.Reason)
	})

	t.Run("重复撤销是幂等的", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)

		count, err := svc.RevokeShareLinks(ctx, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = svc.RevokeShareLinks(ctx, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("非创建者不能撤销", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.RevokeShareLinks(ctx, 99, 1)
		assert.ErrorIs(t, err, xerr.ErrPermissionDenied)
	})
}

func TestGetActiveShareLink(t *testing.T) {
	ctx := context.Background()

	t.Run("没有活跃链接时返回nil", func(t *testing.T) {
		svc, _ := newTestService()

		link, err := svc.GetActiveShareLink(ctx, 10, 1)
		require.NoError(t, err)
		assert.Nil(t, link)
	})

	t.Run("返回最新的活跃链接", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)
		second, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)

		link, err := svc.GetActiveShareLink(ctx, 10, 1)
		require.NoError(t, err)
		require.NotNil(t, link)
		assert.Equal(t, second.Token, link.Token)
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("无密码链接不带密码即可通过", func(t *testing.T) {
		svc, _ := newTestService()

		link, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)

		result := svc.Validate(ctx, link.Token, nil)
		assert.Equal(t, StatusGranted, result.Status)
		assert.Equal(t, uint64(1), result.BabyID)
	})

	t.Run("无密码链接忽略提交的密码", func(t *testing.T) {
		svc, _ := newTestService()

		link, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)

		// 访客多填了密码也不影响结果
		result := svc.Validate(ctx, link.Token, strPtr("whatever"))
		assert.Equal(t, StatusGranted, result.Status)
	})

	t.Run("有密码链接的完整流程", func(t *testing.T) {
		svc, _ := newTestService()

		link, err := svc.IssueShareLink(ctx, 10, 1, strPtr("sunshine"), nil)
		require.NoError(t, err)

		// 不带密码：提示需要密码，而不是拒绝
		result := svc.Validate(ctx, link.Token, nil)
		assert.Equal(t, StatusPasswordRequired, result.Status)

		// 密码错误
		result = svc.Validate(ctx, link.Token, strPtr("wrong"))
		assert.Equal(t, StatusDenied, result.Status)
		assert.Equal(t, DenyIncorrectPassword, result.Reason)

		// 密码正确
		result = svc.Validate(ctx, link.Token, strPtr("sunshine"))
		assert.Equal(t, StatusGranted, result.Status)
		assert.Equal(t, uint64(1), result.BabyID)
	})

	t.Run("不存在的token", func(t *testing.T) {
		svc, _ := newTestService()

		result := svc.Validate(ctx, "no-such-token", nil)
		assert.Equal(t, StatusDenied, result.Status)
		assert.Equal(t, DenyInvalidOrExpired, result.Reason)
	})

	t.Run("过期链接即使密码正确也拒绝", func(t *testing.T) {
		svc, repo := newTestService()

		link, err := svc.IssueShareLink(ctx, 10, 1, strPtr("sunshine"), intPtr(60))
		require.NoError(t, err)

		// 把过期时间改到过去
		past := time.Now().Add(-time.Minute)
		repo.links[0].ExpiresAt = &past

		result := svc.Validate(ctx, link.Token, strPtr("sunshine"))
		assert.Equal(t, StatusDenied, result.Status)
		assert.Equal(t, DenyExpired, result.Reason)
	})

	t.Run("过期检查先于密码检查", func(t *testing.T) {
		svc, repo := newTestService()

		link, err := svc.IssueShareLink(ctx, 10, 1, strPtr("sunshine"), intPtr(60))
		require.NoError(t, err)

		past := time.Now().Add(-time.Minute)
		repo.links[0].ExpiresAt = &past

		// 不带密码访问过期链接，返回过期而不是要求输密码
		result := svc.Validate(ctx, link.Token, nil)
		assert.Equal(t, StatusDenied, result.Status)
		assert.Equal(t, DenyExpired, result.Reason)
	})

	t.Run("存储层异常归一为校验失败", func(t *testing.T) {
		repo := newFakeShareLinkRepo()
		repo.err = errors.New("connection refused")
		svc := NewShareService(repo, newFakeBabyRepo())

		result := svc.Validate(ctx, "any-token", nil)
		assert.Equal(t, StatusDenied, result.Status)
		assert.Equal(t, DenyValidationError, result.Reason)
	})
}

// 完整走一遍奶奶收到分享链接的场景
func TestSharedAlbumAccessScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	// 家长生成带密码的链接发给奶奶
	link, err := svc.IssueShareLink(ctx, 10, 1, strPtr("milestone"), nil)
	require.NoError(t, err)

	// 奶奶第一次打开，被提示输入密码
	result := svc.Validate(ctx, link.Token, nil)
	require.Equal(t, StatusPasswordRequired, result.Status)

	// 输入正确密码后进入相册
	result = svc.Validate(ctx, link.Token, strPtr("milestone"))
	require.Equal(t, StatusGranted, result.Status)

	session := NewViewerSession()
	session.Grant(result.BabyID)
	babyID, ok := session.CurrentSubject()
	require.True(t, ok)
	assert.Equal(t, uint64(1), babyID)

	// 家长担心链接扩散，重新生成了一个新链接
	newLink, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
	require.NoError(t, err)

	// 旧链接立刻失效，新链接可用
	assert.Equal(t, StatusDenied, svc.Validate(ctx, link.Token, strPtr("milestone")).Status)
	assert.Equal(t, StatusGranted, svc.Validate(ctx, newLink.Token, nil).Status)
}

func TestHasActiveLink(t *testing.T) {
	ctx := context.Background()

	t.Run("无链接时返回false", func(t *testing.T) {
		svc, _ := newTestService()

		active, err := svc.HasActiveLink(ctx, 1)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("撤销后访客失去访问资格", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.IssueShareLink(ctx, 10, 1, nil, nil)
		require.NoError(t, err)

		active, err := svc.HasActiveLink(ctx, 1)
		require.NoError(t, err)
		assert.True(t, active)

		// 撤销后已持有访客 Token 的人也不能再读取
		_, err = svc.RevokeShareLinks(ctx, 10, 1)
		require.NoError(t, err)

		active, err = svc.HasActiveLink(ctx, 1)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("链接过期视为不活跃", func(t *testing.T) {
		svc, repo := newTestService()

		_, err := svc.IssueShareLink(ctx, 10, 1, nil, intPtr(60))
		require.NoError(t, err)

		past := time.Now().Add(-time.Minute)
		repo.links[0].ExpiresAt = &past

		active, err := svc.HasActiveLink(ctx, 1)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("存储异常返回error", func(t *testing.T) {
		svc, repo := newTestService()
		repo.err = errors.New("db down")

		_, err := svc.HasActiveLink(ctx, 1)
		assert.Error(t, err)
	})
}
