package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"FreshTrack/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// labelPrompt instructs the model to answer with exactly the two-key JSON
// object the extraction result is decoded from.
const labelPrompt = `Analyze the food product label image provided.
Extract the product name and the expiration date.
If the text on the label is not in English, translate the product name into English. Use the most common English name for the product.
Format the expiration date strictly as YYYY-MM-DD. If you find a date like "DD.MM.YYYY" or "MM/DD/YY", convert it to YYYY-MM-DD. If only month and year are present (e.g., "DEC 2024"), represent it as the last day of that month (e.g., "2024-12-31"). If the exact day cannot be determined but month and year are clear, use the last day of the month.
Return the result ONLY as a valid JSON object containing two keys:
1. "product_name": A string with the product name in English. If the name cannot be determined, use the string "Unknown Product".
2. "expiration_date": A string with the date in YYYY-MM-DD format, or null if the expiration date cannot be found or reliably parsed.

Example of expected JSON output:
{"product_name": "Sour Cream", "expiration_date": "2024-12-31"}

Another example if date is not found:
{"product_name": "Milk", "expiration_date": null}

Strictly adhere to this JSON format in your response. Do not add any text before or after the JSON object.`

type (
	// Client turns a label photo into an ExtractionResult through the
	// remote vision model. One outbound call per Extract, no retries.
	Client interface {
		Extract(ctx context.Context, image []byte, mimeType string) (domain.ExtractionResult, error)
	}

	geminiClient struct {
		httpClient *http.Client
		baseURL    string
		apiKey     string
		model      string
	}

	geminiRequest struct {
		Contents []geminiContent `json:"contents"`
	}

	geminiContent struct {
		Parts []geminiPart `json:"parts"`
	}

	geminiPart struct {
		Text       string            `json:"text,omitempty"`
		InlineData *geminiInlineData `json:"inlineData,omitempty"`
	}

	geminiInlineData struct {
		MimeType string `json:"mimeType"`
		Data     string `json:"data"`
	}

	geminiResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		PromptFeedback *struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}

	productPayload struct {
		ProductName    string  `json:"product_name"`
		ExpirationDate *string `json:"expiration_date"`
	}
)

func NewClient(apiKey, model string) Client {
	return &geminiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

func (c *geminiClient) Extract(ctx context.Context, image []byte, mimeType string) (domain.ExtractionResult, error) {
	if len(image) == 0 {
		return domain.ExtractionResult{}, domain.ErrInvalidImage
	}

	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: labelPrompt},
					{InlineData: &geminiInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(image),
					}},
				},
			},
		},
	}

	requestJSON, err := json.Marshal(payload)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.ExtractionResult{}, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope geminiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	if envelope.PromptFeedback != nil && envelope.PromptFeedback.BlockReason != "" {
		return domain.ExtractionResult{}, &BlockedError{Reason: envelope.PromptFeedback.BlockReason}
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return domain.ExtractionResult{}, domain.ErrEmptyResponse
	}

	rawText := envelope.Candidates[0].Content.Parts[0].Text
	cleanedText := Sanitize(rawText)

	var product productPayload
	if err := json.Unmarshal([]byte(cleanedText), &product); err != nil {
		return domain.ExtractionResult{}, &ResultError{
			RawText:       rawText,
			SanitizedText: cleanedText,
			Cause:         err,
		}
	}

	if product.ProductName == "" {
		product.ProductName = "Unknown Product"
	}

	return domain.ExtractionResult{
		ProductName:    product.ProductName,
		ExpirationDate: product.ExpirationDate,
	}, nil
}
