package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"calldash/internal/model"
	"calldash/internal/pagination"
	"calldash/internal/repository"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("caller not found")
	ErrInvalidInput = errors.New("invalid input")
)

// CreateCallerInput is the payload accepted when registering a caller.
type CreateCallerInput struct {
	PhoneNumber      string    `json:"phone_number" validate:"required,e164"`
	DisplayName      string    `json:"display_name" validate:"max=120"`
	Organization     string    `json:"organization" validate:"required,max=120"`
	TotalCalls       int       `json:"total_calls" validate:"gte=0"`
	TotalDurationSec int64     `json:"total_duration_sec" validate:"gte=0"`
	LastCallAt       time.Time `json:"last_call_at"`
	Tags             []string  `json:"tags" validate:"max=20,dive,required,max=40,excludesall=0x2C"`
}

// CallerService defines the caller-analysis use cases.
type CallerService interface {
	// List returns one page of callers. page < 1 is treated as 1 and limit is clamped to the
	// paginator bounds; limit 0 selects the configured default.
	List(ctx context.Context, page, limit int, filter model.CallerFilter) (pagination.Response[model.Caller], error)

	// Get returns a single caller by its ID.
	Get(ctx context.Context, id string) (*model.Caller, error)

	// Create validates and stores a caller.
	Create(ctx context.Context, in CreateCallerInput) (*model.Caller, error)

	// Delete removes a caller by ID.
	Delete(ctx context.Context, id string) error
}

type callerService struct {
	repo            repository.CallerRepository
	validate        *validator.Validate
	defaultPageSize int
	log             zerolog.Logger
}

// NewCallerService constructs a new CallerService.
func NewCallerService(repo repository.CallerRepository, defaultPageSize int, logger zerolog.Logger) CallerService {
	return &callerService{
		repo:            repo,
		validate:        validator.New(),
		defaultPageSize: pagination.ClampPageSize(defaultPageSize),
		log:             logger.With().Str("module", "service").Str("component", "caller").Logger(),
	}
}

// CallerFetcher adapts a CallerService listing to the paginator fetch contract.
func CallerFetcher(svc CallerService, filter model.CallerFilter) pagination.FetchFunc[model.Caller] {
	return func(ctx context.Context, page, limit int) (pagination.Response[model.Caller], error) {
		return svc.List(ctx, page, limit, filter)
	}
}

func (s *callerService) List(ctx context.Context, page, limit int, filter model.CallerFilter) (pagination.Response[model.Caller], error) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = s.defaultPageSize
	}
	limit = pagination.ClampPageSize(limit)
	filter = normalizeFilter(filter)

	res, err := s.repo.List(ctx, repository.PageQuery{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Filter: filter,
	})
	if err != nil {
		s.log.Error().Err(err).Int("page", page).Int("limit", limit).Msg("list callers failed")
		return pagination.Response[model.Caller]{}, err
	}
	return pagination.NewResponse(res.Items, res.Total, page, limit), nil
}

func (s *callerService) Get(ctx context.Context, id string) (*model.Caller, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *callerService) Create(ctx context.Context, in CreateCallerInput) (*model.Caller, error) {
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Organization = strings.TrimSpace(in.Organization)
	for i := range in.Tags {
		in.Tags[i] = strings.ToLower(strings.TrimSpace(in.Tags[i]))
	}

	if err := s.validate.Struct(in); err != nil {
		s.log.Debug().Err(err).Str("phone_number", in.PhoneNumber).Msg("caller validation failed")
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	lastCall := in.LastCallAt.UTC()
	if in.LastCallAt.IsZero() {
		lastCall = now
	}

	out, err := s.repo.Create(ctx, &model.Caller{
		ID:               uuid.New().String(),
		PhoneNumber:      in.PhoneNumber,
		DisplayName:      in.DisplayName,
		Organization:     in.Organization,
		TotalCalls:       in.TotalCalls,
		TotalDurationSec: in.TotalDurationSec,
		LastCallAt:       lastCall,
		Tags:             in.Tags,
		CreatedAt:        now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("organization", in.Organization).Msg("create caller failed")
		return nil, fmt.Errorf("save caller: %w", err)
	}
	s.log.Info().Str("caller_id", out.ID).Msg("caller created")
	return out, nil
}

func (s *callerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func normalizeFilter(f model.CallerFilter) model.CallerFilter {
	return model.CallerFilter{
		Organization: strings.TrimSpace(f.Organization),
		Tag:          strings.ToLower(strings.TrimSpace(f.Tag)),
		Search:       strings.TrimSpace(f.Search),
	}
}
