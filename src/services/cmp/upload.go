package cmp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// uploadDescriptor is the presigned-upload target CMP hands out in step 1.
type uploadDescriptor struct {
	URL              string            `json:"url"`
	Key              string            `json:"key"`
	UploadMetaFields map[string]string `json:"uploadMetaFields"`
}

type attachmentRef struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// AttachFile runs the 3-step attachment protocol against a work request:
// fetch a presigned descriptor, multipart-POST the bytes to it, then
// register the uploaded object on the work request.
func (c *Client) AttachFile(ctx context.Context, workRequestID, fileName string, data []byte) error {
	// step 1: presigned-upload descriptor
	var desc uploadDescriptor
	path := fmt.Sprintf("/v3/work-requests/%s/upload-url?name=%s", workRequestID, url.QueryEscape(fileName))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &desc); err != nil {
		return err
	}

	// step 2: upload the bytes to the presigned URL
	if err := postPresigned(ctx, desc, fileName, data); err != nil {
		return err
	}

	// step 3: register the uploaded object on the work request
	ref := attachmentRef{Key: desc.Key, Name: fileName}
	return c.doJSON(ctx, http.MethodPost, "/v3/work-requests/"+workRequestID+"/attachments", ref, nil)
}

// postPresigned sends the multipart body to the object store. The meta
// fields must be written before the file part: stores that validate field
// order reject the reverse.
func postPresigned(ctx context.Context, desc uploadDescriptor, fileName string, data []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range desc.UploadMetaFields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	fw, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, desc.URL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Close = true

	client := &http.Client{Timeout: 120 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// stores answer 200, 201 or 204 depending on vendor; any 2xx is success
	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(res.Body)
		return &APIError{Method: http.MethodPost, Path: desc.URL, Status: res.StatusCode, Body: string(b)}
	}
	return nil
}
