package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"calldash/internal/config"
	"calldash/internal/model"
	"calldash/internal/pagination"
	"calldash/internal/report"
	"calldash/internal/storage"
)

const exportPrefix = "exports/"

var (
	ErrExportTooLarge    = errors.New("export exceeds record limit")
	ErrExportNotFound    = errors.New("export not found")
	ErrInvalidExportName = errors.New("invalid export name")
)

// ExportService writes filtered caller listings to object storage as CSV.
type ExportService interface {
	// Export walks every page matching the filter and uploads the result.
	Export(ctx context.Context, filter model.CallerFilter) (*model.Export, error)

	// Open streams a previously written export by its file name.
	Open(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error)
}

type exportService struct {
	callers  CallerService
	store    storage.Storage
	cfg      config.ExportConfig
	observer pagination.Observer
	tracer   trace.Tracer
	log      zerolog.Logger
}

// NewExportService builds an ExportService. observer may be nil.
func NewExportService(callers CallerService, store storage.Storage, cfg config.ExportConfig, observer pagination.Observer, logger zerolog.Logger) ExportService {
	return &exportService{
		callers:  callers,
		store:    store,
		cfg:      cfg,
		observer: observer,
		tracer:   otel.Tracer("calldash/service/export"),
		log:      logger.With().Str("module", "service").Str("component", "export").Logger(),
	}
}

func (s *exportService) Export(ctx context.Context, filter model.CallerFilter) (_ *model.Export, err error) {
	ctx, span := s.tracer.Start(ctx, "export.callers", trace.WithAttributes(
		attribute.String("filter.organization", filter.Organization),
		attribute.String("filter.tag", filter.Tag),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	rows, err := s.collect(ctx, filter)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("export.records", len(rows)))

	body, err := encodeCSV(rows)
	if err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}

	name := "callers-" + uuid.New().String() + ".csv"
	key := exportPrefix + name
	if _, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "text/csv",
		Metadata:    map[string]string{"records": strconv.Itoa(len(rows))},
	}); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("export upload failed")
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.cfg.URLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	now := time.Now().UTC()
	s.log.Info().Str("key", key).Int("records", len(rows)).Msg("export written")
	return &model.Export{
		Key:       name,
		Records:   len(rows),
		Filter:    filter,
		URL:       url,
		ExpiresAt: now.Add(s.cfg.URLExpiry),
		CreatedAt: now,
	}, nil
}

// collect drives a paginator from the first page until HasNext turns false.
func (s *exportService) collect(ctx context.Context, filter model.CallerFilter) ([]model.Caller, error) {
	opts := []pagination.Option{
		pagination.WithPageSize(s.cfg.PageSize),
		pagination.WithLogger(s.log),
	}
	if s.observer != nil {
		opts = append(opts, pagination.WithObserver(s.observer))
	}
	p := pagination.New[model.Caller](opts...)
	fetch := CallerFetcher(s.callers, filter)

	if err := p.LoadPage(ctx, 1, fetch); err != nil {
		return nil, fmt.Errorf("load page 1: %w", err)
	}
	if err := s.checkSize(p.State()); err != nil {
		return nil, err
	}

	for st := p.State(); st.HasNext; st = p.State() {
		if err := p.LoadNextPage(ctx, fetch); err != nil {
			return nil, fmt.Errorf("load page %d: %w", st.CurrentPage+1, err)
		}
		// rows inserted during the walk can push the total past the cap
		if err := s.checkSize(p.State()); err != nil {
			return nil, err
		}
		if p.State().CurrentPage == st.CurrentPage {
			break
		}
	}
	return p.AllLoadedData(), nil
}

func (s *exportService) checkSize(st pagination.State) error {
	if st.TotalRecords > s.cfg.MaxRecords {
		return fmt.Errorf("%w: %d matching, limit %d", ErrExportTooLarge, st.TotalRecords, s.cfg.MaxRecords)
	}
	return nil
}

func (s *exportService) Open(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	if !validExportName(name) {
		return nil, storage.ObjectInfo{}, ErrInvalidExportName
	}
	rc, info, err := s.store.Get(ctx, exportPrefix+name)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrExportNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

func validExportName(name string) bool {
	id, ok := strings.CutPrefix(name, "callers-")
	if !ok {
		return false
	}
	id, ok = strings.CutSuffix(id, ".csv")
	if !ok {
		return false
	}
	// only the canonical form round-trips; braces and urn:uuid: prefixes do not
	u, err := uuid.Parse(id)
	return err == nil && u.String() == id
}

func encodeCSV(rows []model.Caller) ([]byte, error) {
	var buf bytes.Buffer
	w, err := report.NewCallerCSV(&buf)
	if err != nil {
		return nil, err
	}
	if err := w.Write(rows); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
