package b2

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"gemtrove/internal/config"
	"gemtrove/internal/domain"
	"gemtrove/internal/port"
)

const apiVersion = "b2api/v2"

// session holds the credential state established by a successful authorize.
// It is written only while c.mu is held and never mutated afterwards.
type session struct {
	accountID   string
	token       string
	apiURL      string
	downloadURL string
}

type b2Client struct {
	cfg  *config.B2Config
	http *http.Client

	mu          sync.Mutex
	sess        *session
	initialized bool
}

// NewClient creates an ObjectStore backed by the B2-native REST protocol.
// Credential and bucket configuration is verified up front so a missing
// field fails before any network access.
func NewClient(cfg *config.B2Config) (port.ObjectStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &b2Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// apiError is the wire shape of a B2 error response.
type apiError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *b2Client) Authorize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.AuthEndpoint+"/"+apiVersion+"/b2_authorize_account", nil)
	if err != nil {
		return fmt.Errorf("authorize failed: %w", err)
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.AppKey)

	var out struct {
		AccountID          string `json:"accountId"`
		AuthorizationToken string `json:"authorizationToken"`
		APIURL             string `json:"apiUrl"`
		DownloadURL        string `json:"downloadUrl"`
	}
	if err := c.do(req, &out); err != nil {
		return fmt.Errorf("authorize failed: %w", err)
	}

	c.sess = &session{
		accountID:   out.AccountID,
		token:       out.AuthorizationToken,
		apiURL:      out.APIURL,
		downloadURL: out.DownloadURL,
	}
	c.initialized = true
	return nil
}

func (c *b2Client) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// currentSession returns the cached session, authorizing lazily on first use.
func (c *b2Client) currentSession(ctx context.Context) (*session, error) {
	c.mu.Lock()
	if c.initialized {
		sess := c.sess
		c.mu.Unlock()
		return sess, nil
	}
	c.mu.Unlock()

	if err := c.Authorize(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess, nil
}

func (c *b2Client) GetUploadSlot(ctx context.Context, bucketID string) (*port.UploadSlot, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	var out struct {
		UploadURL          string `json:"uploadUrl"`
		AuthorizationToken string `json:"authorizationToken"`
	}
	err = c.call(ctx, sess, "b2_get_upload_url", map[string]any{"bucketId": bucketID}, &out)
	if err != nil {
		return nil, fmt.Errorf("get upload slot failed: %w", err)
	}
	return &port.UploadSlot{UploadURL: out.UploadURL, Token: out.AuthorizationToken}, nil
}

func (c *b2Client) Upload(ctx context.Context, input port.UploadFileInput) (*port.StoredFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		input.Slot.UploadURL, bytes.NewReader(input.Data))
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	sum := sha1.Sum(input.Data)
	req.Header.Set("Authorization", input.Slot.Token)
	req.Header.Set("X-Bz-File-Name", url.PathEscape(input.FileName))
	req.Header.Set("Content-Type", input.ContentType)
	req.Header.Set("X-Bz-Content-Sha1", hex.EncodeToString(sum[:]))
	req.ContentLength = int64(len(input.Data))
	for k, v := range input.Metadata {
		req.Header.Set("X-Bz-Info-"+k, url.PathEscape(v))
	}

	var out struct {
		FileID   string `json:"fileId"`
		FileName string `json:"fileName"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	return &port.StoredFile{FileID: out.FileID, FileName: out.FileName}, nil
}

func (c *b2Client) ListFiles(ctx context.Context, bucketID, prefix string, maxCount int) ([]port.StoredFile, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	var out struct {
		Files []struct {
			FileID   string `json:"fileId"`
			FileName string `json:"fileName"`
		} `json:"files"`
	}
	body := map[string]any{
		"bucketId":     bucketID,
		"prefix":       prefix,
		"maxFileCount": maxCount,
	}
	if err := c.call(ctx, sess, "b2_list_file_names", body, &out); err != nil {
		return nil, fmt.Errorf("list files failed: %w", err)
	}

	files := make([]port.StoredFile, 0, len(out.Files))
	for _, f := range out.Files {
		files = append(files, port.StoredFile{FileID: f.FileID, FileName: f.FileName})
	}
	return files, nil
}

func (c *b2Client) DeleteFileVersion(ctx context.Context, fileID, fileName string) error {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}

	body := map[string]any{"fileId": fileID, "fileName": fileName}
	if err := c.call(ctx, sess, "b2_delete_file_version", body, nil); err != nil {
		return fmt.Errorf("delete file version failed: %w", err)
	}
	return nil
}

func (c *b2Client) ListBuckets(ctx context.Context) error {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}

	body := map[string]any{"accountId": sess.accountID}
	if err := c.call(ctx, sess, "b2_list_buckets", body, nil); err != nil {
		return fmt.Errorf("list buckets failed: %w", err)
	}
	return nil
}

func (c *b2Client) DownloadByName(ctx context.Context, fileName string) (*domain.StoredImage, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/file/%s/%s", sess.downloadURL, c.cfg.BucketName, url.PathEscape(fileName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	req.Header.Set("Authorization", sess.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("download failed: %w", decodeError(resp))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download read: %w", err)
	}
	return &domain.StoredImage{
		Data:          data,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: int64(len(data)),
		ETag:          resp.Header.Get("X-Bz-Content-Sha1"),
	}, nil
}

// call issues one authorized JSON API request against the session's API URL.
func (c *b2Client) call(ctx context.Context, sess *session, op string, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		sess.apiURL+"/"+apiVersion+"/"+op, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", sess.token)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes a request and decodes the JSON response into out, translating
// non-2xx responses into errors carrying the remote code and message.
func (c *b2Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Code == "" {
		return fmt.Errorf("%w: status %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s (%s)", domain.ErrStoreUnavailable, apiErr.Message, apiErr.Code)
}
