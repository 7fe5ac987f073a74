package handlers

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"health-bridge-server/internal/config"
	"health-bridge-server/internal/utils"
)

// allowedAudioTypes is the MIME allow-list for voice-note uploads.
var allowedAudioTypes = map[string]bool{
	"audio/webm": true,
	"audio/mp3":  true,
	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/ogg":  true,
}

// UploadHandler handles voice-note uploads for prescriptions.
type UploadHandler struct {
	Cfg *config.Config
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{Cfg: cfg}
}

// voiceNoteFilename derives a stored filename that keeps only the original
// extension; the public URL is built from this name.
func voiceNoteFilename(originalName string) string {
	return fmt.Sprintf("voice-%d-%d%s", time.Now().UnixNano(), rand.Intn(1e9), filepath.Ext(originalName))
}

// UploadVoiceNote handles a multipart voice-note upload. Doctor-only. Files
// land under <uploadDir>/voice-notes and are served at /uploads/voice-notes.
func (h *UploadHandler) UploadVoiceNote(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		utils.BadRequest(c, "No audio file uploaded")
		return
	}

	if file.Size > h.Cfg.MaxUploadSizeMB*1024*1024 {
		utils.BadRequest(c, fmt.Sprintf("File too large. Limit is %dMB", h.Cfg.MaxUploadSizeMB))
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedAudioTypes[contentType] {
		utils.BadRequest(c, "Invalid file type. Only audio files are allowed.")
		return
	}

	filename := voiceNoteFilename(file.Filename)
	dest := filepath.Join(h.Cfg.UploadDir, "voice-notes", filename)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		utils.InternalServerError(c, "Upload failed: "+err.Error())
		return
	}

	utils.Success(c, "Voice note uploaded successfully", gin.H{
		"url":      "/uploads/voice-notes/" + filename,
		"filename": filename,
	})
}
