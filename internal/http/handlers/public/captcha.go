package public

import (
	"github.com/nexpetcare/nexpetcare/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha returns a fresh image captcha challenge
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.Generate()
	if err != nil {
		respondError(c, response.CodeInternal, "captcha could not be generated", err)
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
