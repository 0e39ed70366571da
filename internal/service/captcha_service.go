package service

import (
	"strings"
	"sync"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/constants"

	"github.com/mojocn/base64Captcha"
)

// CaptchaChallenge image captcha challenge
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService issues and verifies image captchas for login scenes
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService creates a captcha service
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// RequiredFor reports whether a scene requires a captcha
func (s *CaptchaService) RequiredFor(scene string) bool {
	switch strings.TrimSpace(scene) {
	case constants.CaptchaSceneStaffLogin:
		return s.cfg.Scenes.StaffLogin
	default:
		return false
	}
}

// Generate creates a new image challenge
func (s *CaptchaService) Generate() (*CaptchaChallenge, error) {
	driver := base64Captcha.NewDriverString(
		s.imageHeight(),
		s.imageWidth(),
		s.cfg.Image.NoiseCount,
		s.cfg.Image.ShowLine,
		s.imageLength(),
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks a challenge answer for a scene. Scenes with the captcha
// disabled always pass.
func (s *CaptchaService) Verify(scene, captchaID, answer string) error {
	if !s.RequiredFor(scene) {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	answer = strings.TrimSpace(answer)
	if captchaID == "" || answer == "" {
		return ErrCaptchaInvalid
	}
	if !s.ensureStore().Verify(captchaID, answer, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		maxStore := s.cfg.Image.MaxStore
		if maxStore <= 0 {
			maxStore = base64Captcha.GCLimitNumber
		}
		expire := time.Duration(s.cfg.Image.ExpireSeconds) * time.Second
		if expire <= 0 {
			expire = base64Captcha.Expiration
		}
		s.store = base64Captcha.NewMemoryStore(maxStore, expire)
	}
	return s.store
}

func (s *CaptchaService) imageHeight() int {
	if s.cfg.Image.Height > 0 {
		return s.cfg.Image.Height
	}
	return 80
}

func (s *CaptchaService) imageWidth() int {
	if s.cfg.Image.Width > 0 {
		return s.cfg.Image.Width
	}
	return 240
}

func (s *CaptchaService) imageLength() int {
	if s.cfg.Image.Length > 0 {
		return s.cfg.Image.Length
	}
	return 5
}
