package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-admin-api/internal/models"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Replace(ctx context.Context, students []models.Student) error
}

type fieldLister interface {
	List(ctx context.Context) ([]models.CustomField, error)
}

// CreateStudentRequest carries the base attributes of a new record plus
// the inlined custom attributes. Any id or createdAt in the payload is
// discarded; the store assigns both.
type CreateStudentRequest struct {
	Name   string               `validate:"required"`
	Email  string               `validate:"required,email"`
	Phone  string
	Status models.StudentStatus `validate:"required"`
	Custom map[string]models.FieldValue
}

// UnmarshalJSON splits the flattened payload into base attributes and
// the dynamic custom map.
func (r *CreateStudentRequest) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	base := struct {
		Name   string               `json:"name"`
		Email  string               `json:"email"`
		Phone  string               `json:"phone"`
		Status models.StudentStatus `json:"status"`
	}{}
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	r.Name = base.Name
	r.Email = base.Email
	r.Phone = base.Phone
	r.Status = base.Status
	r.Custom = make(map[string]models.FieldValue)
	for key, raw := range flat {
		if models.IsBaseStudentKey(key) {
			continue
		}
		var value models.FieldValue
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		r.Custom[key] = value
	}
	return nil
}

// StudentPatch is a partial record update. Nil base members are left
// untouched; custom keys present in the payload are merged in. The id and
// createdAt attributes can never be patched: they are stripped during
// decoding so a payload carrying them has no effect on either.
type StudentPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *models.StudentStatus
	Custom map[string]models.FieldValue
}

// UnmarshalJSON decodes the flattened partial payload.
func (p *StudentPatch) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	base := struct {
		Name   *string               `json:"name"`
		Email  *string               `json:"email"`
		Phone  *string               `json:"phone"`
		Status *models.StudentStatus `json:"status"`
	}{}
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	p.Name = base.Name
	p.Email = base.Email
	p.Phone = base.Phone
	p.Status = base.Status
	p.Custom = make(map[string]models.FieldValue)
	for key, raw := range flat {
		if models.IsBaseStudentKey(key) {
			continue
		}
		var value models.FieldValue
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		p.Custom[key] = value
	}
	return nil
}

// StudentService is the record store: it owns the roster and applies the
// add/update/remove contract. Scope filtering is not its concern; it
// always operates on the full collection.
type StudentService struct {
	repo      studentRepository
	fields    fieldLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, fields fieldLister, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, fields: fields, validator: validate, logger: logger}
}

// List returns every record in insertion order, unfiltered.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get returns the record with the given id, or NOT_FOUND.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	for i := range students {
		if students[i].ID == id {
			record := students[i].Clone()
			return &record, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// Create appends a new record, assigning a fresh id and today's date.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !models.ValidStudentStatus(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", req.Status))
	}

	custom, err := s.normalizeCustom(ctx, req.Custom)
	if err != nil {
		return nil, err
	}

	student := models.Student{
		ID:        "student-" + uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    req.Status,
		CreatedAt: time.Now().UTC().Format("2006-01-02"),
		Custom:    custom,
	}

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	students = append(students, student)
	if err := s.repo.Replace(ctx, students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist students")
	}
	return &student, nil
}

// Update merges the partial payload over the stored record. Unknown ids
// are a silent no-op and return nil. Id and createdAt are immutable.
func (s *StudentService) Update(ctx context.Context, id string, patch StudentPatch) (*models.Student, error) {
	if patch.Status != nil && !models.ValidStudentStatus(*patch.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", *patch.Status))
	}

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	idx := -1
	for i := range students {
		if students[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.logger.Debug("student update on unknown id", zap.String("id", id))
		return nil, nil
	}

	student := students[idx].Clone()
	if patch.Name != nil {
		student.Name = *patch.Name
	}
	if patch.Email != nil {
		student.Email = *patch.Email
	}
	if patch.Phone != nil {
		student.Phone = *patch.Phone
	}
	if patch.Status != nil {
		student.Status = *patch.Status
	}
	if len(patch.Custom) > 0 {
		custom, err := s.normalizeCustom(ctx, patch.Custom)
		if err != nil {
			return nil, err
		}
		for key, value := range custom {
			student.Custom[key] = value
		}
	}

	students[idx] = student
	if err := s.repo.Replace(ctx, students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist students")
	}
	return &student, nil
}

// Delete removes the record with the given id. Unknown ids are a silent
// no-op.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	students, err := s.repo.List(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	kept := students[:0]
	found := false
	for _, st := range students {
		if st.ID == id {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		s.logger.Debug("student delete on unknown id", zap.String("id", id))
		return nil
	}

	if err := s.repo.Replace(ctx, kept); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist students")
	}
	return nil
}

// normalizeCustom coerces dynamic values to the type demanded by their
// field definition: checkbox fields carry booleans, everything else a
// string. Keys without a definition pass through untouched; the link from
// record to schema is by name only.
func (s *StudentService) normalizeCustom(ctx context.Context, custom map[string]models.FieldValue) (map[string]models.FieldValue, error) {
	out := make(map[string]models.FieldValue, len(custom))
	if len(custom) == 0 {
		return out, nil
	}

	fields, err := s.fields.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load custom fields")
	}
	byKey := make(map[string]models.CustomField, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f
	}

	for key, value := range custom {
		def, ok := byKey[key]
		if !ok {
			out[key] = value
			continue
		}
		if def.Type == models.FieldCheckbox {
			if value.IsStr {
				out[key] = models.BoolValue(value.Str == "true")
			} else {
				out[key] = value
			}
			continue
		}
		if !value.IsStr {
			out[key] = models.StringValue(value.String())
			continue
		}
		out[key] = value
	}
	return out, nil
}
