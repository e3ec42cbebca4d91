package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"golang.org/x/image/draw"

	"ileke_server/structs"
)

const (
	maxImageDimension = 1600
	jpegQuality       = 82
)

var (
	cloudinaryHTTPClient *http.Client
	cloudinaryClientOnce sync.Once
)

// MediaService normalizes uploaded images and stores them in Cloudinary
// using signed REST uploads.
type MediaService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *http.Client
}

func NewMediaService(logger *gecho.Logger, cfg *structs.Config) *MediaService {
	cloudinaryClientOnce.Do(func() {
		cloudinaryHTTPClient = &http.Client{Timeout: cfg.Cloudinary.Timeout}
	})

	return &MediaService{
		logger: logger,
		cfg:    cfg,
		client: cloudinaryHTTPClient,
	}
}

// CloudinaryUploadResult is the subset of the upload response we keep.
type CloudinaryUploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	Format    string `json:"format"`
}

// NormalizeImage decodes a JPEG or PNG, downscales it so the longest side is
// at most maxImageDimension, and re-encodes as JPEG. Images already within
// bounds are still re-encoded, which strips metadata.
func (ms *MediaService) NormalizeImage(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty image")
	}

	targetW, targetH := w, h
	if w > maxImageDimension || h > maxImageDimension {
		if w >= h {
			targetW = maxImageDimension
			targetH = h * maxImageDimension / w
		} else {
			targetH = maxImageDimension
			targetW = w * maxImageDimension / h
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	ms.logger.Debug("Image normalized",
		gecho.Field("format", format),
		gecho.Field("original", fmt.Sprintf("%dx%d", w, h)),
		gecho.Field("resized", fmt.Sprintf("%dx%d", targetW, targetH)),
	)

	return buf.Bytes(), nil
}

// Upload pushes normalized image bytes to Cloudinary under the configured
// folder and returns the hosted URL.
func (ms *MediaService) Upload(ctx context.Context, data []byte, filename string) (*CloudinaryUploadResult, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	params := map[string]string{
		"folder":    ms.cfg.Cloudinary.Folder,
		"timestamp": timestamp,
	}
	signature := ms.sign(params)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"api_key":   ms.cfg.Cloudinary.ApiKey,
		"timestamp": timestamp,
		"folder":    ms.cfg.Cloudinary.Folder,
		"signature": signature,
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", ms.cfg.Cloudinary.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := ms.client.Do(req)
	if err != nil {
		ms.logger.Error("Cloudinary upload failed", gecho.Field("error", err))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		ms.logger.Error("Cloudinary upload rejected", gecho.Field("status", resp.StatusCode), gecho.Field("body", string(raw)))
		return nil, fmt.Errorf("cloudinary returned status %d", resp.StatusCode)
	}

	var result CloudinaryUploadResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cloudinary response: %w", err)
	}

	return &result, nil
}

// Destroy removes an asset by public id. Used when admins delete product
// images or reference uploads are discarded.
func (ms *MediaService) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}
	signature := ms.sign(params)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{
		"api_key":   ms.cfg.Cloudinary.ApiKey,
		"public_id": publicID,
		"timestamp": timestamp,
		"signature": signature,
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", ms.cfg.Cloudinary.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := ms.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cloudinary destroy returned status %d", resp.StatusCode)
	}

	return nil
}

// sign builds the Cloudinary request signature: sha1 of the sorted
// key=value pairs joined with '&', with the API secret appended.
func (ms *MediaService) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + ms.cfg.Cloudinary.ApiSecret))
	return hex.EncodeToString(sum[:])
}
