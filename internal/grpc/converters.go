package grpc

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/ranking"
	"github.com/Belphemur/filmed/internal/resolver"
	"github.com/Belphemur/filmed/internal/taxonomy"
)

// violations collects the invalid fields of one request.
type violations []*errdetails.BadRequest_FieldViolation

func (v *violations) add(field, format string, args ...any) {
	*v = append(*v, &errdetails.BadRequest_FieldViolation{Field: field, Description: fmt.Sprintf(format, args...)})
}

// convertRecordFromStruct reads a Resolve request:
//
//	id              number, optional
//	name            string
//	year            string ("2005", "2015-2019") or number
//	runtime         number of minutes, optional
//	kind            "movie" or "show", optional
//	genres          list of source catalog genre labels, optional
//	alternate_names list of {name, label}, optional; defaults to the name itself
func convertRecordFromStruct(s *structpb.Struct) (*models.TitleRecord, violations) {
	var v violations
	fields := s.GetFields()
	rec := &models.TitleRecord{}

	if id, ok := fields["id"]; ok {
		n, valid := wholeNumber(id)
		if !valid || n < 0 {
			v.add("id", "must be a non-negative whole number")
		}
		rec.ID = int64(n)
	}

	rec.Name = fields["name"].GetStringValue()
	if rec.Name == "" {
		v.add("name", "is required")
	}

	year, err := convertYearFromValue(fields["year"])
	if err != nil {
		v.add("year", "%v", err)
	}
	rec.Year = year

	if runtime, ok := fields["runtime"]; ok {
		n, valid := wholeNumber(runtime)
		if !valid || n <= 0 {
			v.add("runtime", "must be a positive number of minutes")
		} else {
			minutes := int(n)
			rec.Runtime = &minutes
		}
	}

	rec.Kind = models.ParseMediaKind(fields["kind"].GetStringValue())

	for i, label := range fields["genres"].GetListValue().GetValues() {
		genre, err := taxonomy.LookupLabel(label.GetStringValue())
		if err != nil {
			v.add(fmt.Sprintf("genres[%d]", i), "%v", err)
			continue
		}
		rec.Genres = append(rec.Genres, genre)
	}

	var pairs []models.NamePair
	for i, item := range fields["alternate_names"].GetListValue().GetValues() {
		pair := item.GetStructValue().GetFields()
		name := pair["name"].GetStringValue()
		if name == "" {
			v.add(fmt.Sprintf("alternate_names[%d].name", i), "is required")
			continue
		}
		pairs = append(pairs, models.NamePair{Name: name, Label: pair["label"].GetStringValue()})
	}
	if len(pairs) == 0 && rec.Name != "" {
		pairs = []models.NamePair{{Name: rec.Name}}
	}
	rec.AlternateNames = ranking.Rank(pairs)

	return rec, v
}

// convertYearFromValue accepts a year as text or as a whole number.
func convertYearFromValue(value *structpb.Value) (models.Year, error) {
	switch kind := value.GetKind().(type) {
	case *structpb.Value_StringValue:
		return models.ParseYear(kind.StringValue)
	case *structpb.Value_NumberValue:
		n, ok := wholeNumber(value)
		if !ok || n <= 0 {
			return models.Year{}, fmt.Errorf("invalid year %v", kind.NumberValue)
		}
		return models.SingleYear(int(n)), nil
	default:
		return models.Year{}, errors.New("is required")
	}
}

// wholeNumber accepts integral numbers that fit in an int32.
func wholeNumber(value *structpb.Value) (float64, bool) {
	n, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, false
	}
	return n.NumberValue, true
}

// convertResolutionToStruct builds a Resolve response. The candidate is only
// present when the record was resolved, the error only when it was not.
func convertResolutionToStruct(res resolver.Resolution) (*structpb.Struct, error) {
	out := map[string]any{
		"record_id": float64(res.RecordID),
		"resolved":  res.Resolved(),
		"attempts":  float64(len(res.Attempts)),
	}
	if res.Link != nil {
		out["candidate"] = convertCandidateToMap(res.Link.Candidate)
	}
	if err := res.Err(); err != nil {
		out["error"] = err.Error()
	}
	return structpb.NewStruct(out)
}

func convertCandidateToMap(c models.MatchCandidate) map[string]any {
	categories := make([]any, len(c.Categories))
	for i, cat := range c.Categories {
		categories[i] = cat.String()
	}
	return map[string]any{
		"external_id": c.ExternalID,
		"name":        c.Name,
		"year":        c.Year.String(),
		"runtime":     float64(c.Runtime),
		"kind":        c.Kind.String(),
		"url":         c.URL,
		"categories":  categories,
	}
}

// validateRequest is a decoded Validate request:
//
//	record_year       string or number
//	record_runtime    number, optional
//	candidate_year    string or number
//	candidate_runtime number
type validateRequest struct {
	recordYear       models.Year
	recordRuntime    *int
	candidateYear    models.Year
	candidateRuntime int
}

func convertValidateFromStruct(s *structpb.Struct) (validateRequest, violations) {
	var v violations
	var req validateRequest
	fields := s.GetFields()

	var err error
	if req.recordYear, err = convertYearFromValue(fields["record_year"]); err != nil {
		v.add("record_year", "%v", err)
	}
	if req.candidateYear, err = convertYearFromValue(fields["candidate_year"]); err != nil {
		v.add("candidate_year", "%v", err)
	}

	if runtime, ok := fields["record_runtime"]; ok {
		n, valid := wholeNumber(runtime)
		if !valid || n <= 0 {
			v.add("record_runtime", "must be a positive number of minutes")
		} else {
			minutes := int(n)
			req.recordRuntime = &minutes
		}
	}

	n, valid := wholeNumber(fields["candidate_runtime"])
	if !valid || n < 0 {
		v.add("candidate_runtime", "must be a non-negative number of minutes")
	}
	req.candidateRuntime = int(n)

	return req, v
}
