package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"Backend-Worklink-007/src/models"
	"Backend-Worklink-007/src/services/audit"
	"Backend-Worklink-007/src/services/cmp"
	"Backend-Worklink-007/src/services/fields"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrLinkUnavailable collapses not-found, inactive, spent and expired links
// into one guest-visible answer. The distinction stays server side.
var ErrLinkUnavailable = errors.New("form not available")

// ErrRemoteFailed is what a guest sees when CMP rejected or was unreachable
// during the synchronous attempt. The submission row keeps the detail.
var ErrRemoteFailed = errors.New("upstream submission failed")

// ValidationErrors carries the per-field error map for a rejected payload.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(v))
}

// RemoteClient is the slice of the CMP client the pipeline needs.
type RemoteClient interface {
	CreateWorkRequest(ctx context.Context, input cmp.CreateWorkRequestInput) (*cmp.WorkRequest, error)
	AttachFile(ctx context.Context, workRequestID, fileName string, data []byte) error
}

// ClientFactory builds a RemoteClient for one decrypted credential pair.
type ClientFactory func(clientID, clientSecret string) RemoteClient

// CredentialSource resolves a form's credential to a decrypted pair.
type CredentialSource interface {
	GetActive(ctx context.Context, id primitive.ObjectID) (*models.CmpCredential, string, error)
}

// FileUpload is one guest-attached file, keyed to its file field.
type FileUpload struct {
	FieldIdentifier string
	Name            string
	Data            []byte
}

// Service is the submission pipeline. All collaborators are constructor
// injected; there is no package-level state.
type Service struct {
	store       Store
	credentials CredentialSource
	newClient   ClientFactory
	audit       audit.Sink

	// clients memoizes one RemoteClient per credential so its token cache
	// outlives a single request; a rotated credential replaces the entry
	mu      sync.Mutex
	clients map[string]cachedClient
}

type cachedClient struct {
	clientID string
	secret   string
	client   RemoteClient
}

func NewService(store Store, credentials CredentialSource, newClient ClientFactory, sink audit.Sink) *Service {
	return &Service{
		store:       store,
		credentials: credentials,
		newClient:   newClient,
		audit:       sink,
		clients:     map[string]cachedClient{},
	}
}

// PublicForm is the guest-facing form config: the snapshot minus anything
// internal (credential, template wiring).
type PublicForm struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Fields      []models.FormField `json:"fields"`
}

// GetFormByToken resolves a shareable link for rendering. Every failure
// mode answers ErrLinkUnavailable.
func (s *Service) GetFormByToken(ctx context.Context, token string) (*PublicForm, error) {
	_, form, err := s.resolveLink(ctx, token)
	if err != nil {
		return nil, err
	}
	return &PublicForm{Title: form.Title, Description: form.Description, Fields: form.SortedFields()}, nil
}

// resolveLink finds a live link and its active form. Rejections are
// deliberately indistinguishable to the guest.
func (s *Service) resolveLink(ctx context.Context, token string) (*models.ShareLink, *models.Form, error) {
	link, err := s.store.FindLinkByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrLinkUnavailable
		}
		return nil, nil, err
	}
	if link.IsExpired(time.Now()) || (link.SingleUse && link.IsUsed) {
		return nil, nil, ErrLinkUnavailable
	}

	form, err := s.store.FindFormByID(ctx, link.FormID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrLinkUnavailable
		}
		return nil, nil, err
	}
	if !form.IsActive {
		return nil, nil, ErrLinkUnavailable
	}
	return link, form, nil
}

// Submit runs the synchronous pipeline for one guest submission.
//
// Returned errors: ErrLinkUnavailable (generic 404), ValidationErrors
// (400 map), ErrRemoteFailed (502, row persisted for retry). Any other
// error is a persistence fault (500).
func (s *Service) Submit(ctx context.Context, token string, rawValues map[string]json.RawMessage, files []FileUpload) (*models.Submission, error) {
	link, form, err := s.resolveLink(ctx, token)
	if err != nil {
		return nil, err
	}

	// single-use links are spent before anything else; losing the race
	// means the submission is rejected, not queued
	if link.SingleUse {
		flipped, err := s.store.MarkLinkUsed(ctx, link.ID)
		if err != nil {
			return nil, err
		}
		if !flipped {
			return nil, ErrLinkUnavailable
		}
	}

	values, err := models.ParseFormValues(rawValues)
	if err != nil {
		return nil, ValidationErrors{"formData": err.Error()}
	}
	for _, f := range files {
		values[f.FieldIdentifier] = models.FileRefValue(f.Name)
	}

	// authoritative check: every field visible, client visibility ignored
	sorted := form.SortedFields()
	visible := fields.AllVisible(sorted).VisibleSet()
	if errs := fields.ValidateAll(sorted, values, visible); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	// the row exists from here on, whatever the remote does
	sub := &models.Submission{
		FormID:   form.ID,
		URLID:    link.ID,
		FormData: values,
		Status:   models.SubmissionPending,
	}
	if err := s.store.InsertSubmission(ctx, sub); err != nil {
		return nil, err
	}
	s.audit.Record("submission.received", "submission", sub.ID.Hex(), map[string]string{"formId": form.ID.Hex()})

	if err := s.attemptRemote(ctx, sub, form, files); err != nil {
		s.failSubmission(ctx, sub, err)
		return sub, ErrRemoteFailed
	}

	if err := s.succeedSubmission(ctx, sub); err != nil {
		return sub, err
	}
	return sub, nil
}

// attemptRemote creates the work request and attaches files in declaration
// order. A missing or unusable credential counts as a remote failure so the
// submission still lands in the retry loop.
func (s *Service) attemptRemote(ctx context.Context, sub *models.Submission, form *models.Form, files []FileUpload) error {
	client, err := s.clientForForm(ctx, form)
	if err != nil {
		return err
	}

	if sub.RemoteRequestID == "" {
		sorted := form.SortedFields()
		visible := fields.AllVisible(sorted).VisibleSet()
		serialized := fields.SerializeForm(sorted, sub.FormData, visible)
		formFields := make([]interface{}, len(serialized))
		for i, sf := range serialized {
			formFields[i] = sf
		}

		created, err := client.CreateWorkRequest(ctx, cmp.CreateWorkRequestInput{
			TemplateID: form.TemplateID,
			FormFields: formFields,
			WorkflowID: form.WorkflowID,
		})
		if err != nil {
			return err
		}
		sub.RemoteRequestID = created.ID
	}

	for _, f := range orderFiles(form, files) {
		if err := client.AttachFile(ctx, sub.RemoteRequestID, f.Name, f.Data); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) clientForForm(ctx context.Context, form *models.Form) (RemoteClient, error) {
	cred, secret, err := s.credentials.GetActive(ctx, form.CredentialID)
	if err != nil {
		return nil, err
	}

	key := cred.ID.Hex()
	s.mu.Lock()
	defer s.mu.Unlock()
	if cc, ok := s.clients[key]; ok && cc.clientID == cred.ClientID && cc.secret == secret {
		return cc.client, nil
	}
	client := s.newClient(cred.ClientID, secret)
	s.clients[key] = cachedClient{clientID: cred.ClientID, secret: secret, client: client}
	return client, nil
}

// orderFiles sorts uploads by their field's declaration order.
func orderFiles(form *models.Form, files []FileUpload) []FileUpload {
	order := map[string]int{}
	for i, f := range form.SortedFields() {
		order[f.Identifier] = i
	}
	out := append([]FileUpload(nil), files...)
	sort.SliceStable(out, func(i, j int) bool {
		return order[out[i].FieldIdentifier] < order[out[j].FieldIdentifier]
	})
	return out
}

// succeedSubmission records terminal success: remote id set, error and
// retry fields cleared.
func (s *Service) succeedSubmission(ctx context.Context, sub *models.Submission) error {
	sub.Status = models.SubmissionSubmitted
	sub.ErrorMessage = ""
	sub.NextRetryAt = nil
	if err := s.store.UpdateSubmission(ctx, sub); err != nil {
		return err
	}
	s.audit.Record("submission.submitted", "submission", sub.ID.Hex(), map[string]string{"remoteRequestId": sub.RemoteRequestID})
	return nil
}

// failSubmission records the first failure and schedules the first backoff
// tier. The detailed error stays server side only.
func (s *Service) failSubmission(ctx context.Context, sub *models.Submission, cause error) {
	next := time.Now().Add(backoffSchedule[0])
	sub.Status = models.SubmissionFailed
	sub.ErrorMessage = cause.Error()
	sub.NextRetryAt = &next
	if err := s.store.UpdateSubmission(ctx, sub); err != nil {
		log.Printf("❌ failed to persist submission failure %s: %v", sub.ID.Hex(), err)
	}
	s.audit.Record("submission.failed", "submission", sub.ID.Hex(), map[string]string{"error": cause.Error()})
}

// ListSubmissions is the operator view over delivery state; exhausted rows
// have no other visibility.
func (s *Service) ListSubmissions(ctx context.Context, status string, params models.PaginationParams) (*models.PaginatedResponse, error) {
	subs, total, err := s.store.ListSubmissions(ctx, status, params)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(subs, total, params), nil
}
