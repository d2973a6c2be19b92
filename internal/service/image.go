package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dishly/backend/config"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

// unsplashSearchResponse is the subset of the search payload we read.
type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// ImageService finds a decorative image for a recipe via Unsplash and
// optionally re-hosts it on S3. A missing access key disables images; a
// failed lookup never fails the caller.
type ImageService struct {
	accessKey string
	s3Config  *config.S3Config
	client    *http.Client
}

// NewImageService creates a new ImageService. s3Config may be nil, in which
// case the Unsplash URL is stored directly.
func NewImageService(accessKey string, s3Config *config.S3Config) *ImageService {
	return &ImageService{
		accessKey: accessKey,
		s3Config:  s3Config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SearchRecipeImage returns an image URL for the given query, or "" when no
// image could be found.
func (s *ImageService) SearchRecipeImage(ctx context.Context, query string) string {
	if s.accessKey == "" {
		return ""
	}

	reqURL := fmt.Sprintf("%s?query=%s&per_page=1&orientation=landscape", unsplashSearchURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[ImageService] Unsplash search failed: %v", err)
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ImageService] Unsplash search returned status %d", resp.StatusCode)
		return ""
	}

	var result unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ""
	}
	if len(result.Results) == 0 {
		return ""
	}

	imageURL := result.Results[0].URLs.Regular
	if s.s3Config == nil {
		return imageURL
	}

	s3URL, err := s.downloadAndUploadToS3(ctx, imageURL)
	if err != nil {
		log.Printf("[ImageService] Failed to upload to S3, returning original URL: %v", err)
		return imageURL
	}
	return s3URL
}

// downloadAndUploadToS3 downloads an image from URL and uploads it to S3
func (s *ImageService) downloadAndUploadToS3(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	fileName := fmt.Sprintf("recipe-images/%s.jpg", uuid.New().String())
	return s.UploadImageToS3(ctx, imageData, fileName)
}

// UploadImageToS3 uploads image data to S3 and returns the public URL
func (s *ImageService) UploadImageToS3(ctx context.Context, imageData []byte, fileName string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Successfully uploaded image to S3: %s", publicURL)

	return publicURL, nil
}
