package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"Backend-Worklink-007/src/services/submission"
	"Backend-Worklink-007/src/utils"

	"github.com/gofiber/fiber/v2"
)

var submissionService *submission.Service

// Init wires the controllers to their services. Called once from main.
func Init(svc *submission.Service) {
	submissionService = svc
}

// GetPublicForm godoc
// @Summary      Fetch a public form by share token
// @Description  Returns the form config for rendering. Not-found, inactive, expired and spent links all answer 404.
// @Tags         public
// @Produce      json
// @Param        token  path      string  true  "Share link token"
// @Success      200  {object}  submission.PublicForm
// @Failure      404  {object}  models.ErrorResponse
// @Failure      429  {object}  models.ErrorResponse
// @Router       /public/forms/{token} [get]
func GetPublicForm(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return utils.HandleError(c, http.StatusNotFound, "form not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := submissionService.GetFormByToken(ctx, token)
	if err != nil {
		if errors.Is(err, submission.ErrLinkUnavailable) {
			return utils.HandleError(c, http.StatusNotFound, "form not available")
		}
		return utils.HandleError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(form)
}

// SubmitPublicForm godoc
// @Summary      Submit a public form
// @Description  Accepts JSON or multipart (formData part + file parts named by field identifier). Validation failures return a per-field error map; upstream failures return 502 and the submission is retried in the background.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        token  path      string  true  "Share link token"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      429  {object}  models.ErrorResponse
// @Failure      502  {object}  models.ErrorResponse
// @Router       /public/forms/{token}/submissions [post]
func SubmitPublicForm(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return utils.HandleError(c, http.StatusNotFound, "form not available")
	}

	rawValues, files, err := parseSubmitRequest(c)
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "invalid request body")
	}

	// generous timeout: the synchronous attempt includes the remote call
	// and every file upload
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	sub, err := submissionService.Submit(ctx, token, rawValues, files)
	if err != nil {
		var validationErrs submission.ValidationErrors
		switch {
		case errors.Is(err, submission.ErrLinkUnavailable):
			return utils.HandleError(c, http.StatusNotFound, "form not available")
		case errors.As(err, &validationErrs):
			return utils.HandleValidationErrors(c, validationErrs)
		case errors.Is(err, submission.ErrRemoteFailed):
			// the row is persisted; the guest sees an honest failure
			return utils.HandleError(c, http.StatusBadGateway, "submission could not be delivered, please try again later")
		default:
			return utils.HandleError(c, http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(fiber.Map{"submissionId": sub.ID.Hex()})
}

// parseSubmitRequest reads either a JSON body {"formData": {...}} or a
// multipart form with a formData part and file parts named by field
// identifier.
func parseSubmitRequest(c *fiber.Ctx) (map[string]json.RawMessage, []submission.FileUpload, error) {
	contentType := c.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, err
		}

		var rawValues map[string]json.RawMessage
		if vals := form.Value["formData"]; len(vals) > 0 {
			if err := json.Unmarshal([]byte(vals[0]), &rawValues); err != nil {
				return nil, nil, err
			}
		} else {
			rawValues = map[string]json.RawMessage{}
		}

		var files []submission.FileUpload
		for fieldID, headers := range form.File {
			for _, header := range headers {
				f, err := header.Open()
				if err != nil {
					return nil, nil, err
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					return nil, nil, err
				}
				files = append(files, submission.FileUpload{
					FieldIdentifier: fieldID,
					Name:            header.Filename,
					Data:            data,
				})
			}
		}
		return rawValues, files, nil
	}

	var body struct {
		FormData map[string]json.RawMessage `json:"formData"`
	}
	if err := c.BodyParser(&body); err != nil {
		return nil, nil, err
	}
	if body.FormData == nil {
		body.FormData = map[string]json.RawMessage{}
	}
	return body.FormData, nil, nil
}
