package app

import (
	"context"
	"fmt"

	"smartsheetsvc/domain/query"
	"smartsheetsvc/domain/records"
	"smartsheetsvc/domain/sheet"
	"smartsheetsvc/internal"
	"smartsheetsvc/internal/errors"
	"smartsheetsvc/ports"
)

// SheetIDs names the Smartsheet sheets behind each record type
type SheetIDs struct {
	Funding    int64
	Protocols  int64
	Perfusions int64
}

// SheetService fetches a sheet, parses it into records and applies the query
// filters. It holds no state of its own; caching lives in the fetcher.
type SheetService struct {
	fetcher ports.SheetFetcher
	ids     SheetIDs
	strict  bool
	logger  *internal.Logger
}

func NewSheetService(fetcher ports.SheetFetcher, ids SheetIDs, strict bool, logger *internal.Logger) *SheetService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SheetService{
		fetcher: fetcher,
		ids:     ids,
		strict:  strict,
		logger:  logger.Named("SheetService"),
	}
}

// Funding returns the funding records matching the optional filters
func (s *SheetService) Funding(ctx context.Context, projectName, subproject *string) ([]records.FundingModel, error) {
	recs, err := loadRecords[records.FundingModel](ctx, s, "funding", s.ids.Funding)
	if err != nil {
		return nil, err
	}
	return query.FilterFunding(recs, projectName, subproject), nil
}

// ProjectNames returns the sorted distinct project display names
func (s *SheetService) ProjectNames(ctx context.Context) ([]string, error) {
	recs, err := loadRecords[records.FundingModel](ctx, s, "funding", s.ids.Funding)
	if err != nil {
		return nil, err
	}
	return query.AggregateProjectNames(recs), nil
}

func (s *SheetService) Protocols(ctx context.Context, protocolName *string) ([]records.ProtocolsModel, error) {
	recs, err := loadRecords[records.ProtocolsModel](ctx, s, "protocols", s.ids.Protocols)
	if err != nil {
		return nil, err
	}
	return query.FilterProtocols(recs, protocolName), nil
}

func (s *SheetService) Perfusions(ctx context.Context, subjectID *string) ([]records.PerfusionsModel, error) {
	recs, err := loadRecords[records.PerfusionsModel](ctx, s, "perfusions", s.ids.Perfusions)
	if err != nil {
		return nil, err
	}
	return query.FilterPerfusions(recs, subjectID), nil
}

// PerfusionSummary summarizes the perfusions matching subjectID
func (s *SheetService) PerfusionSummary(ctx context.Context, subjectID *string) (query.PerfusionSummary, error) {
	recs, err := s.Perfusions(ctx, subjectID)
	if err != nil {
		return query.PerfusionSummary{}, err
	}
	summary, err := query.SummarizePerfusions(recs)
	if err != nil {
		return query.PerfusionSummary{}, errors.Wrap(err, "failed to summarize perfusions")
	}
	return summary, nil
}

// loadRecords fetches and parses one sheet. Errors carry an AppError code
// that the HTTP layer maps to a status.
func loadRecords[T any](ctx context.Context, s *SheetService, name string, sheetID int64) ([]T, error) {
	raw, err := s.fetcher.FetchSheet(ctx, sheetID)
	if err != nil {
		if errors.GetCode(err) == "UNKNOWN" {
			err = errors.ExternalServiceError("smartsheet", err)
		}
		return nil, errors.Wrapf(err, "failed to fetch %s sheet %d", name, sheetID)
	}

	outcomes, err := records.ParseSheet[T](raw, s.strict)
	if err != nil {
		return nil, classify(err, name)
	}

	for _, degraded := range records.Degraded(outcomes) {
		s.logger.Warn("%s row %d kept unvalidated: %v", name, degraded.RowNumber, degraded)
	}
	s.logger.Debug("%s: parsed %d records", name, len(outcomes))

	return records.Records(outcomes), nil
}

func classify(err error, name string) error {
	var schemaErr *sheet.SchemaValidationError
	var lookupErr *sheet.RowLookupError
	var recordErr *records.RecordValidationError

	code := errors.CodeInternalError
	switch {
	case errors.As(err, &schemaErr):
		code = errors.CodeSchemaInvalid
	case errors.As(err, &lookupErr):
		code = errors.CodeRowLookup
	case errors.As(err, &recordErr):
		code = errors.CodeRecordInvalid
	}
	return errors.WithCode(code, fmt.Errorf("%s sheet: %w", name, err))
}
