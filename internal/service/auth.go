// File: internal/service/auth.go
package service

import (
	"context"
	"errors"
	"os"
	"strings"

	"members-club/internal/database"
	"members-club/internal/model"
	"members-club/internal/session"
	"members-club/internal/store"
	"members-club/internal/worker"
)

// ErrInvalidCredentials 登入失敗；查無帳號與密碼錯誤共用同一個錯誤，
// 避免洩漏 email 是否存在
var ErrInvalidCredentials = errors.New("invalid credentials")

// 測試可覆寫
var (
	hashPassword   = HashPassword
	checkPassword  = CheckPassword
	createUser     = store.CreateUser
	getUserByEmail = store.GetUserByEmail
)

// Signup 建立帳號並發行會話
// email 重複回 store.ErrDuplicateEmail；失敗不留下任何使用者紀錄
// bcrypt 在 worker pool 上執行以限制同時哈希的請求數
func Signup(ctx context.Context, db database.DB, sessions *session.Manager, wp worker.Pool, name, email, password string) (*model.Session, error) {
	var (
		hash    string
		hashErr error
	)
	wp.Do(func() { hash, hashErr = hashPassword(password) })
	if hashErr != nil {
		return nil, hashErr
	}

	role := model.RoleUser
	if admin := strings.ToLower(os.Getenv("ADMIN_EMAIL")); admin != "" && admin == email {
		role = model.RoleAdmin
	}

	user, err := createUser(ctx, db, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	return sessions.Issue(ctx, user)
}

// Login 驗證憑證並發行會話，role 與 name 以查得的紀錄為快照
func Login(ctx context.Context, db database.DB, sessions *session.Manager, wp worker.Pool, email, password string) (*model.Session, error) {
	user, err := getUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	var ok bool
	wp.Do(func() { ok = checkPassword(user.PasswordHash, password) })
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return sessions.Issue(ctx, user)
}

// Logout 銷毀會話；token 不存在亦視為成功
func Logout(ctx context.Context, sessions *session.Manager, token string) error {
	return sessions.Destroy(ctx, token)
}
