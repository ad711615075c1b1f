// Package tesseract detects text locally with the Tesseract engine. It needs
// libtesseract at build and run time, so it lives apart from the Vision client.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/Aashish23092/ocr-text-extraction/logger"
)

type Client struct {
	dataPath string
	language string
}

func NewClient(dataPath, language string) *Client {
	return &Client{
		dataPath: dataPath,
		language: language,
	}
}

// Detect extracts the page text and reports every recognized word as an
// annotation. Tesseract scores words in [0,100]; they are scaled to [0,1].
func (tc *Client) Detect(ctx context.Context, image []byte) (*dto.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return &dto.Detection{}, nil
	}

	// Text is what callers need, a failed box pass only loses the scores
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		log := logger.FromContext(ctx, "tesseract")
		log.Warn().Err(err).Msg("Failed to read word boxes, reporting text without confidences")
		return &dto.Detection{Text: text}, nil
	}

	annotations := make([]dto.TextAnnotation, 0, len(boxes))
	for _, box := range boxes {
		annotations = append(annotations, dto.TextAnnotation{
			Description: box.Word,
			Confidence:  dto.Confidence(box.Confidence / 100),
		})
	}

	return &dto.Detection{Text: text, Annotations: annotations}, nil
}
