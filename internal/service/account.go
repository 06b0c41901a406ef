package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/storage"
	"github.com/yy933/twitter-api-2020/internal/util"

	"golang.org/x/sync/errgroup"
)

// SignUpInput is the sign-up form.
type SignUpInput struct {
	Account       string `json:"account" validate:"required,max=50"`
	Name          string `json:"name" validate:"required,max=50"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8,max=20"`
	CheckPassword string `json:"checkPassword" validate:"required,eqfield=Password"`
}

// SignUp creates a standard-role account. Field rules and uniqueness are
// checked together and every violation is reported at once. When the only
// violations are duplicates the error kind is AlreadyExists, otherwise
// ValidationFailed.
func (a *Authority) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	in.Account = strings.TrimSpace(in.Account)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	violations := util.ValidateStruct(in)

	var accountTaken, emailTaken bool
	g, gctx := errgroup.WithContext(ctx)
	if in.Account != "" {
		g.Go(func() error {
			var err error
			accountTaken, err = a.store.AccountHandleTaken(gctx, in.Account)
			return err
		})
	}
	if in.Email != "" {
		g.Go(func() error {
			var err error
			emailTaken, err = a.store.EmailTaken(gctx, in.Email)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dups := 0
	if accountTaken {
		violations = append(violations, util.FieldError{Field: "account", Message: "account 已重複註冊！"})
		dups++
	}
	if emailTaken {
		violations = append(violations, util.FieldError{Field: "email", Message: "email 已重複註冊！"})
		dups++
	}
	if len(violations) > 0 {
		kind := KindValidationFailed
		if dups == len(violations) {
			kind = KindAlreadyExists
		}
		return nil, &Error{Kind: kind, Message: violations[0].Message, Fields: violations}
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Account:  in.Account,
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := a.store.CreateAccount(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, storage.ErrConflict) {
			return nil, wrapError(KindAlreadyExists, "account 或 email 已重複註冊！", err)
		}
		return nil, err
	}
	return user, nil
}
