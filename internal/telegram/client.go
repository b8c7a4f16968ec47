package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/pkg/clients"
	"go.uber.org/zap"
)

// Client is the outbound half of the notification gateway: plain Bot API
// method calls over HTTP.
type Client struct {
	baseURL string
	client  clients.HTTPClientI
}

func NewClient(apiURL, token string, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL: fmt.Sprintf("%s/bot%s", apiURL, token),
		client:  client,
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any) error {
	statusCode, respBody, err := c.client.PostJSON(ctx, c.baseURL+"/"+method, payload)
	if err != nil {
		return fmt.Errorf("telegram %s request failed: %w", method, err)
	}

	var resp apiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("telegram %s: can't parse response: %w", method, err)
	}
	if statusCode != http.StatusOK || !resp.OK {
		return fmt.Errorf("telegram %s: status %d: %s", method, statusCode, resp.Description)
	}
	return nil
}

// SendText delivers a text message, optionally with a keyboard.
func (c *Client) SendText(ctx context.Context, chatID int64, text string, keyboard any) error {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if keyboard != nil {
		payload["reply_markup"] = keyboard
	}
	if err := c.call(ctx, "sendMessage", payload); err != nil {
		zap.L().Error("can't send message", zap.Int64("chatID", chatID), zap.Error(err))
		return err
	}
	return nil
}

// SendImage delivers a photo by file id with an optional caption.
func (c *Client) SendImage(ctx context.Context, chatID int64, fileID, caption string, keyboard any) error {
	payload := map[string]any{
		"chat_id": chatID,
		"photo":   fileID,
	}
	if caption != "" {
		payload["caption"] = caption
	}
	if keyboard != nil {
		payload["reply_markup"] = keyboard
	}
	if err := c.call(ctx, "sendPhoto", payload); err != nil {
		zap.L().Error("can't send photo", zap.Int64("chatID", chatID), zap.Error(err))
		return err
	}
	return nil
}

// AnswerCallback acknowledges a button press so the client stops spinning.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]any{
		"callback_query_id": callbackID,
	})
}
