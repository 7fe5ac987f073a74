package handlers

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"health-bridge-server/internal/config"
	"health-bridge-server/internal/middleware"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/utils"
)

// WorkerAuthHandler handles the worker OTP login flow.
type WorkerAuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewWorkerAuthHandler creates a new WorkerAuthHandler.
func NewWorkerAuthHandler(db *gorm.DB, cfg *config.Config) *WorkerAuthHandler {
	return &WorkerAuthHandler{DB: db, Cfg: cfg}
}

// generateOTP returns a random 6-digit one-time code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}

// otpExpired reports whether the code's validity window has elapsed at now.
func otpExpired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt == nil || now.After(*expiresAt)
}

// RequestOTPRequest represents the request body for requesting a code.
type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// RequestOTP handles issuing a one-time code to a worker's phone. A new
// request overwrites any prior code. There is no SMS gateway wired up; the
// code is logged, and echoed in the response outside production.
func (h *WorkerAuthHandler) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var worker models.Worker
	if err := h.DB.Where("phone = ?", req.Phone).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Worker not found with this phone number")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	otp, err := generateOTP()
	if err != nil {
		utils.InternalServerError(c, "Failed to generate OTP: "+err.Error())
		return
	}
	expiresAt := time.Now().Add(time.Duration(h.Cfg.OTPExpiryMinutes) * time.Minute)

	if err := h.DB.Model(&worker).Updates(map[string]interface{}{
		"otp":            otp,
		"otp_expires_at": expiresAt,
	}).Error; err != nil {
		utils.InternalServerError(c, "Failed to store OTP: "+err.Error())
		return
	}

	log.Printf("OTP for %s: %s", req.Phone, otp)

	data := gin.H{}
	if h.Cfg.Environment != "production" {
		data["otpForTesting"] = otp
	}
	utils.Success(c, "OTP sent successfully", data)
}

// VerifyOTPRequest represents the request body for verifying a code.
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// WorkerAuthResponse represents the response body for a successful OTP login.
type WorkerAuthResponse struct {
	Token  string                 `json:"token"`
	Worker models.WorkerSanitized `json:"worker"`
}

// VerifyOTP handles verifying a one-time code and issuing a worker session
// token. The code is single-use: a successful verification clears the code
// and its expiry in the same update that decides the login.
func (h *WorkerAuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var worker models.Worker
	if err := h.DB.Where("phone = ?", req.Phone).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Worker not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if worker.OTP == "" || worker.OTP != req.OTP {
		utils.Unauthorized(c, "Invalid OTP")
		return
	}

	if otpExpired(worker.OTPExpiresAt, time.Now()) {
		utils.Unauthorized(c, "OTP has expired")
		return
	}

	// Clear the code atomically with the authentication decision; the same
	// code must not verify twice. The guard on the OTP column makes a racing
	// second verification lose.
	res := h.DB.Model(&models.Worker{}).
		Where("id = ? AND otp = ?", worker.ID, req.OTP).
		Updates(map[string]interface{}{"otp": nil, "otp_expires_at": nil})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to clear OTP: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.Unauthorized(c, "Invalid OTP")
		return
	}

	token, err := utils.GenerateWorkerToken(&worker, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", WorkerAuthResponse{
		Token:  token,
		Worker: worker.Sanitize(),
	})
}

// Me handles fetching the currently authenticated worker.
func (h *WorkerAuthHandler) Me(c *gin.Context) {
	workerID, exists := middleware.GetWorkerIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Worker not authenticated")
		return
	}

	var worker models.Worker
	if err := h.DB.First(&worker, "id = ?", workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Worker not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Worker fetched successfully", worker.Sanitize())
}
