package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelfood/entity"
	"hotelfood/repository"
	"hotelfood/utils"
)

// AuthService จัดการ business logic ของการ login
type AuthService struct {
	staffRepo *repository.StaffRepository
	carts     *CartService
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.StaffRepository, carts *CartService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		staffRepo: repo,
		carts:     carts,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type Session struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId,omitempty"`
	Username  string `json:"username,omitempty"`
}

// CustomerLogin เปิด session ใหม่ให้ลูกค้า พร้อมตะกร้าว่าง
func (s *AuthService) CustomerLogin(ctx context.Context) (*Session, error) {
	sid := uuid.NewString()
	if err := s.carts.Start(ctx, sid); err != nil {
		return nil, err
	}
	token, err := utils.GenerateToken(0, entity.RoleCustomer, sid, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Role: entity.RoleCustomer, SessionID: sid}, nil
}

// StaffLogin ตรวจสอบ username/password + สร้าง JWT
func (s *AuthService) StaffLogin(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	staff, err := s.staffRepo.FindByUsername(ctx, username)
	if err != nil {
		// same answer for unknown user and wrong password
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// เทียบรหัสผ่าน
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !entity.IsStaffRole(staff.Role) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(staff.ID, staff.Role, "", s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Role: staff.Role, Username: staff.Username}, nil
}

// Logout ล้างตะกร้าของ session (ถ้ามี)
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.carts.Drop(ctx, sessionID)
}
