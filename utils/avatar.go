package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

func NewGCSClient(ctx context.Context) (*storage.Client, string, error) {
	GCSBucket := os.Getenv("GCS_BUCKET")
	credentialsPath := os.Getenv("CREDENTIALS_FILE_LOCATION")
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	client, err := storage.NewClient(ctx, option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, credentialsPath)))
	if err != nil {
		return nil, "", err
	}
	return client, GCSBucket, nil
}

// UploadAvatarToGCS stores a profile image under avatars/<userID>/ and
// returns its public URL.
func UploadAvatarToGCS(
	ctx context.Context,
	client *storage.Client,
	bucketName string,
	userID string,
	fileHeader *multipart.FileHeader,
) (string, error) {

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".bin"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	timestamp := time.Now().UTC().Unix()
	random := uuid.New().String()

	objectName := fmt.Sprintf(
		"avatars/%s/%d-%s%s",
		userID,
		timestamp,
		random,
		ext,
	)

	obj := client.Bucket(bucketName).Object(objectName)
	writer := obj.NewWriter(ctx)

	ct := fileHeader.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(ext)
		if ct == "" {
			ct = "application/octet-stream"
		}
	}
	writer.ContentType = ct
	writer.CacheControl = "no-cache"

	if _, err := io.Copy(writer, file); err != nil {
		_ = writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName), nil
}

type FileValidator struct {
	allowedExt  map[string]bool
	allowedMime map[string]bool
	maxSize     int64
}

// NewImageValidator builds a validator for avatar uploads. Allowed
// extensions and mime types come from env, falling back to common image
// formats.
func NewImageValidator() *FileValidator {
	extList := os.Getenv("ALLOWED_FILE_EXTENSIONS")
	if extList == "" {
		extList = ".jpg,.jpeg,.png,.webp"
	}
	allowedExt := make(map[string]bool)
	for _, ext := range strings.Split(extList, ",") {
		if ext = strings.TrimSpace(strings.ToLower(ext)); ext != "" {
			allowedExt[ext] = true
		}
	}

	mimeList := os.Getenv("ALLOWED_FILE_MIME_TYPES")
	if mimeList == "" {
		mimeList = "image/jpeg,image/png,image/webp"
	}
	allowedMime := make(map[string]bool)
	for _, m := range strings.Split(mimeList, ",") {
		if m = strings.TrimSpace(strings.ToLower(m)); m != "" {
			allowedMime[m] = true
		}
	}

	sizeMB := 5
	if v := os.Getenv("MAX_UPLOAD_SIZE_MB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			sizeMB = parsed
		}
	}

	return &FileValidator{
		allowedExt:  allowedExt,
		allowedMime: allowedMime,
		maxSize:     int64(sizeMB) << 20,
	}
}

func (v *FileValidator) ValidateFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > v.maxSize {
		return "", fmt.Errorf("file too large (max %d MB)", v.maxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !v.allowedExt[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	if _, err = file.Read(buffer); err != nil {
		return "", fmt.Errorf("failed to read file header")
	}
	if _, err = file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to reset file reader")
	}

	detectedMime := strings.ToLower(http.DetectContentType(buffer))
	if !v.allowedMime[detectedMime] {
		return "", fmt.Errorf("invalid file type")
	}

	return detectedMime, nil
}
