package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"riseabove/backend/app/dto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

// Client talks to the JSON endpoints with a bearer token.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/token", dto.LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return err
	}
	c.Token = resp.AccessToken
	return nil
}

func (c *Client) Skills(ctx context.Context) ([]dto.SkillItem, error) {
	var resp dto.SkillListResponse
	if err := c.do(ctx, http.MethodGet, "/api/skills", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

func (c *Client) AddSkill(ctx context.Context, name string) (dto.SkillItem, error) {
	var resp dto.SkillResponse
	err := c.do(ctx, http.MethodPost, "/add_skill", dto.SkillNameRequest{Skillname: name}, &resp)
	return resp.Skill, err
}

func (c *Client) SaveXP(ctx context.Context, skills []dto.SkillItem) error {
	return c.do(ctx, http.MethodPost, "/save_xp", dto.SaveXPRequest{Skills: skills}, nil)
}

func (c *Client) DeleteSkill(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/delete_skill", dto.SkillNameRequest{Skillname: name}, nil)
}
