// File: internal/service/password.go
package service

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost bcrypt cost，驗證耗時約百毫秒等級
const hashCost = 12

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// CheckPassword 比對明文密碼與 bcrypt 哈希
// 不符或哈希毀損一律回 false，不回傳錯誤
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
