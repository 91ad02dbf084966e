package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/imaging"
	"github.com/Veraticus/picsort/internal/model"
)

// Classifier turns an image file into a category answer with exactly one
// service call.
type Classifier struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
	imageOpts   imaging.Options
	mode        Mode
}

// ClassifierOptions configures a Classifier.
type ClassifierOptions struct {
	Mode      Mode
	Image     imaging.Options
	RateLimit int
}

// NewClassifier wraps client. A nil logger uses slog.Default.
func NewClassifier(client Client, opts ClassifierOptions, logger *slog.Logger) (*Classifier, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeStructured
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	return &Classifier{
		client:      client,
		logger:      logger,
		rateLimiter: newRateLimiter(opts.RateLimit),
		imageOpts:   opts.Image,
		mode:        mode,
	}, nil
}

// Mode returns the response contract this classifier requests.
func (c *Classifier) Mode() Mode {
	return c.mode
}

// Classify reads, encodes and classifies the image at path. Read failures
// are *common.IOError; unsupported content and request failures are
// *common.ServiceError.
func (c *Classifier) Classify(ctx context.Context, path string, categories *model.CategorySet) (ClassificationResponse, error) {
	name := filepath.Base(path)

	if !imaging.IsSupported(name) {
		return ClassificationResponse{}, common.NewServiceError(name, fmt.Errorf("%w: %s", common.ErrUnsupportedImage, filepath.Ext(name)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ClassificationResponse{}, common.NewIOError("read image", path, err)
	}

	encoded, err := imaging.Encode(data, c.imageOpts)
	if err != nil {
		return ClassificationResponse{}, common.NewServiceError(name, err)
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return ClassificationResponse{}, err
	}

	req := ImageRequest{
		ImageName:    name,
		DataURL:      encoded.DataURL,
		SystemPrompt: SystemPrompt,
		Prompt:       BuildPrompt(categories.Categories(), c.mode),
		Mode:         c.mode,
	}
	if c.mode == ModeStructured {
		req.Choices = categories.Names()
	}

	start := time.Now()
	resp, err := c.client.ClassifyImage(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return ClassificationResponse{}, ctx.Err()
		}
		return ClassificationResponse{}, common.NewServiceError(name, err)
	}

	c.logger.Debug("image classified",
		"image", name,
		"mime", encoded.MIMEType,
		"bytes", encoded.Size,
		"resized", encoded.Resized,
		"category", resp.Category,
		"duration_ms", time.Since(start).Milliseconds())

	return resp, nil
}
