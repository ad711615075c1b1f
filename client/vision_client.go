package client

import (
	"context"
	"errors"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/Aashish23092/ocr-text-extraction/logger"
)

// ErrVisionResponse is returned when the Vision API answers with an error status.
var ErrVisionResponse = errors.New("vision API error")

// ImageAnnotator is the subset of the Vision client used for text detection.
type ImageAnnotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// VisionClient detects text with Google Cloud Vision. It is created once and
// shared by all requests.
type VisionClient struct {
	annotator ImageAnnotator
}

// NewVisionClient creates a client authenticated with an API key. The key is not
// checked until the first request; without a key the client is unauthenticated
// and every call is rejected by the API.
func NewVisionClient(ctx context.Context, apiKey string) (*VisionClient, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if apiKey == "" {
		log := logger.WithComponent("vision")
		log.Warn().Msg("GOOGLE_API_KEY is not set, text detection requests will fail")
		opts = []option.ClientOption{option.WithoutAuthentication()}
	}

	annotator, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionClient{annotator: annotator}, nil
}

// NewVisionClientWithAnnotator wraps an existing annotator.
func NewVisionClientWithAnnotator(annotator ImageAnnotator) *VisionClient {
	return &VisionClient{annotator: annotator}
}

// Detect runs TEXT_DETECTION on one image. The first annotation returned by the
// API is the whole-image transcription, the rest are the detected regions.
// A region scored exactly 0 is reported without a confidence value.
func (v *VisionClient) Detect(ctx context.Context, image []byte) (*dto.Detection, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.annotator.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API call failed: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return nil, fmt.Errorf("%w: no response for image", ErrVisionResponse)
	}

	imageResp := resp.GetResponses()[0]
	if msg := imageResp.GetError().GetMessage(); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrVisionResponse, msg)
	}

	texts := imageResp.GetTextAnnotations()
	if len(texts) == 0 {
		return &dto.Detection{}, nil
	}

	annotations := make([]dto.TextAnnotation, 0, len(texts)-1)
	for _, t := range texts[1:] {
		annotation := dto.TextAnnotation{Description: t.GetDescription()}
		// proto3 has no presence for scalars, zero means the API did not score the region
		if c := t.GetConfidence(); c > 0 {
			annotation.Confidence = dto.Confidence(float64(c))
		}
		annotations = append(annotations, annotation)
	}

	return &dto.Detection{
		Text:        texts[0].GetDescription(),
		Annotations: annotations,
	}, nil
}

// Close closes the underlying Vision client.
func (v *VisionClient) Close() error {
	if v.annotator != nil {
		return v.annotator.Close()
	}
	return nil
}
