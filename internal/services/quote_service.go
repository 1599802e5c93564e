package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stilessandgravel/backend/internal/metrics"
	"github.com/stilessandgravel/backend/internal/models"
	"go.uber.org/zap"
)

// QuoteRepository is the interface that wraps methods for quote_requests table data access
type QuoteRepository interface {
	// Method Create inserts a new quote request row and returns its generated identifier.
	//
	// "quote.CreatedAt" must already be set by the caller. The "ID" field of "quote" is ignored.
	// If some error will occur during data insert, the error will be returned together with 0 value.
	Create(ctx context.Context, quote *models.QuoteRequest) (int64, error)
}

// CaptchaVerifier is the interface that wraps the Verify method.
//
// Verify reports whether the challenge "token" produced for the client at "remoteIP" is valid.
// A non-nil error means the verification service could not be reached or answered garbage.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// QuoteNotifier is the interface that wraps the NotifyQuote method.
//
// NotifyQuote sends a summary of a stored quote request to the operator.
type QuoteNotifier interface {
	NotifyQuote(ctx context.Context, quote *models.QuoteRequest) error
}

// SubmitResult describes an accepted submission.
//
// Discarded is set for honeypot submissions, which are accepted but never stored.
type SubmitResult struct {
	QuoteID   int64
	Discarded bool
}

type quoteService struct {
	repo     QuoteRepository
	verifier CaptchaVerifier
	notifier QuoteNotifier
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewQuoteService creates a new quote service.
//
// "verifier" and "notifier" are optional: pass nil to skip challenge verification or email notification.
func NewQuoteService(repo QuoteRepository, verifier CaptchaVerifier, notifier QuoteNotifier, logger *zap.Logger) *quoteService {
	return &quoteService{
		repo:     repo,
		verifier: verifier,
		notifier: notifier,
		validate: newQuoteValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates, stores and announces a quote request.
//
// The returned error is a *ValidationError, ErrCaptchaRequired or ErrCaptchaFailed for client faults.
// Any other error is a system fault. A notification failure is reported after the row has been stored.
func (s *quoteService) Submit(ctx context.Context, submission *models.QuoteSubmission, clientIP string) (*SubmitResult, error) {
	if issues := s.validateSubmission(submission); len(issues) > 0 {
		metrics.QuoteSubmissionsTotal.WithLabelValues(metrics.QuoteOutcomeInvalid).Inc()
		return nil, &ValidationError{Issues: issues}
	}

	// Honeypot field stays empty for real visitors
	if strings.TrimSpace(submission.Website) != "" {
		s.logger.Info("discarding quote request with filled honeypot", zap.String("ip", clientIP))
		metrics.QuoteSubmissionsTotal.WithLabelValues(metrics.QuoteOutcomeDiscarded).Inc()
		return &SubmitResult{Discarded: true}, nil
	}

	if err := s.verifyCaptcha(ctx, submission.TurnstileToken, clientIP); err != nil {
		metrics.QuoteSubmissionsTotal.WithLabelValues(metrics.QuoteOutcomeCaptchaFailed).Inc()
		return nil, err
	}

	quote := submission.ToQuoteRequest()
	quote.CreatedAt = s.now().UTC()

	id, err := s.repo.Create(ctx, quote)
	if err != nil {
		s.logger.Error("failed to store quote request", zap.Error(err))
		metrics.QuoteSubmissionsTotal.WithLabelValues(metrics.QuoteOutcomeError).Inc()
		return nil, fmt.Errorf("failed to store quote request: %w", err)
	}
	quote.ID = id

	if s.notifier != nil {
		if err := s.notifier.NotifyQuote(ctx, quote); err != nil {
			s.logger.Error("failed to send quote notification", zap.Error(err), zap.Int64("quote_id", id))
			metrics.QuoteSubmissionsTotal.WithLabelValues(metrics.QuoteOutcomeError).Inc()
			return nil, fmt.Errorf("failed to send quote notification: %w", err)
		}
	}

	s.logger.Info("quote request stored", zap.Int64("quote_id", id))
	metrics.QuoteSubmissionsTotal.WithLabelValues(metrics.QuoteOutcomeCreated).Inc()

	return &SubmitResult{QuoteID: id}, nil
}

func (s *quoteService) verifyCaptcha(ctx context.Context, token, clientIP string) error {
	if s.verifier == nil {
		return nil
	}
	if token == "" {
		return ErrCaptchaRequired
	}

	ok, err := s.verifier.Verify(ctx, token, clientIP)
	if err != nil {
		s.logger.Warn("captcha verification call failed", zap.Error(err), zap.String("ip", clientIP))
		return ErrCaptchaFailed
	}
	if !ok {
		return ErrCaptchaFailed
	}
	return nil
}

// validateSubmission returns one issue per failing field, in struct order.
// A decode type issue replaces any rule failure on the same field.
func (s *quoteService) validateSubmission(submission *models.QuoteSubmission) []models.FieldIssue {
	byField := make(map[string]models.FieldIssue)

	if err := s.validate.Struct(submission); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return []models.FieldIssue{{Field: "body", Message: err.Error()}}
		}
		for _, fe := range fieldErrors {
			byField[fe.Field()] = models.FieldIssue{Field: fe.Field(), Message: issueMessage(fe)}
		}
	}
	for _, issue := range submission.TypeIssues {
		byField[issue.Field] = issue
	}

	if len(byField) == 0 {
		return nil
	}

	issues := make([]models.FieldIssue, 0, len(byField))
	for _, field := range submissionFields {
		if issue, ok := byField[field]; ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// submissionFields lists the JSON names of the submission fields in struct order
var submissionFields = jsonFieldNames(reflect.TypeOf(models.QuoteSubmission{}))

func jsonFieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := jsonName(t.Field(i))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// jsonName returns the JSON key of a struct field, or "" when it is not serialized
func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// newQuoteValidator reports fields by their JSON names
func newQuoteValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldLabel(fe.Field()))
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Invalid email address"
	default:
		return "Invalid value"
	}
}

// fieldLabel turns a JSON field name into a capitalised label
func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
