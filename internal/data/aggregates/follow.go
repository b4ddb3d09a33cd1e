package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

type FollowAggregateDeps struct {
	Base BaseDeps

	Users   repos.UserRepo
	Follows repos.FollowRepo
}

type followAggregate struct {
	deps FollowAggregateDeps
}

func NewFollowAggregate(deps FollowAggregateDeps) domainagg.FollowAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "FollowAggregate")
	return &followAggregate{deps: deps}
}

func (a *followAggregate) Contract() domainagg.Contract {
	return domainagg.FollowAggregateContract
}

func (a *followAggregate) Follow(ctx context.Context, followerID, followeeID uuid.UUID) (*types.Follow, error) {
	const op = "Users.Follow.Follow"
	if followerID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing follower_id", nil)
	}
	// self-follow is rejected whatever the stored state is
	if followerID == followeeID {
		return nil, domainError(domainagg.CodeValidation, op, user.ErrSelfFollowNotAllowed)
	}
	if a.deps.Users == nil || a.deps.Follows == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "follow aggregate repos not configured", nil)
	}

	var out *types.Follow
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireUser(dbc, op, followeeID); err != nil {
			return err
		}
		exists, err := a.deps.Follows.Exists(dbc, followerID, followeeID)
		if err != nil {
			return err
		}
		if exists {
			return domainError(domainagg.CodeConflict, op, user.ErrAlreadyFollowing)
		}
		row, err := a.deps.Follows.Create(dbc, &types.Follow{FollowerID: followerID, FolloweeID: followeeID})
		if err != nil {
			if isUniqueViolation(err) {
				return domainError(domainagg.CodeConflict, op, user.ErrAlreadyFollowing)
			}
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *followAggregate) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	const op = "Users.Follow.Unfollow"
	if followerID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing follower_id", nil)
	}
	if a.deps.Users == nil || a.deps.Follows == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "follow aggregate repos not configured", nil)
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		n, err := a.deps.Follows.Delete(dbc, followerID, followeeID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domainError(domainagg.CodeNotFound, op, user.ErrNotFollowing)
		}
		return nil
	})
}

func (a *followAggregate) requireUser(dbc dbctx.Context, op string, id uuid.UUID) error {
	u, err := a.deps.Users.GetByID(dbc, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domainError(domainagg.CodeNotFound, op, user.ErrUserNotFound)
	}
	return nil
}
