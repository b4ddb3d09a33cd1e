package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type FollowRepo interface {
	Create(dbc dbctx.Context, row *types.Follow) (*types.Follow, error)
	Exists(dbc dbctx.Context, followerID, followeeID uuid.UUID) (bool, error)
	Delete(dbc dbctx.Context, followerID, followeeID uuid.UUID) (int64, error)
	// ListFolloweeIDs pages through the users followerID subscribes to,
	// oldest subscription first.
	ListFolloweeIDs(dbc dbctx.Context, followerID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error)
	// FolloweesAmong returns which of candidateIDs followerID subscribes to.
	FolloweesAmong(dbc dbctx.Context, followerID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type followRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFollowRepo(db *gorm.DB, baseLog *logger.Logger) FollowRepo {
	return &followRepo{db: db, log: baseLog.With("repo", "FollowRepo")}
}

func (r *followRepo) Create(dbc dbctx.Context, row *types.Follow) (*types.Follow, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *followRepo) Exists(dbc dbctx.Context, followerID, followeeID uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if followerID == uuid.Nil || followeeID == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *followRepo) Delete(dbc dbctx.Context, followerID, followeeID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if followerID == uuid.Nil || followeeID == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&types.Follow{})
	return res.RowsAffected, res.Error
}

func (r *followRepo) ListFolloweeIDs(dbc dbctx.Context, followerID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if followerID == uuid.Nil {
		return ids, 0, nil
	}
	var total int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return ids, 0, nil
	}
	q := t.WithContext(dbc.Ctx).
		Model(&types.Follow{}).
		Where("follower_id = ?", followerID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Pluck("followee_id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

func (r *followRepo) FolloweesAmong(dbc dbctx.Context, followerID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := map[uuid.UUID]bool{}
	if followerID == uuid.Nil || len(candidateIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Follow{}).
		Where("follower_id = ? AND followee_id IN ?", followerID, candidateIDs).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
