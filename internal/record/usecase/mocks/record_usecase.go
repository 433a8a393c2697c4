// Package mocks provides mock implementations of the record use case for testing.
package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	recordDomain "github.com/allisson/demands/internal/record/domain"
)

// MockRecordUseCase is a mock implementation of RecordUseCase.
type MockRecordUseCase struct {
	mock.Mock
}

// NewMockRecordUseCase creates a mock that asserts its expectations when t finishes.
func NewMockRecordUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRecordUseCase {
	m := &MockRecordUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecordUseCase) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRecordUseCase) Add(ctx context.Context, fields recordDomain.Fields) (uuid.UUID, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRecordUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	changes recordDomain.Fields,
) (recordDomain.Record, error) {
	args := m.Called(ctx, id, changes)
	return args.Get(0).(recordDomain.Record), args.Error(1)
}

func (m *MockRecordUseCase) Get(ctx context.Context, id uuid.UUID) (recordDomain.Record, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(recordDomain.Record), args.Error(1)
}

func (m *MockRecordUseCase) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordUseCase) DeleteByLine(ctx context.Context, line int) (bool, error) {
	args := m.Called(ctx, line)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordUseCase) View(ctx context.Context) []recordDomain.View {
	return views(m.Called(ctx))
}

func (m *MockRecordUseCase) Pending(ctx context.Context) []recordDomain.View {
	return views(m.Called(ctx))
}

func (m *MockRecordUseCase) DueOn(ctx context.Context, day time.Time) []recordDomain.View {
	return views(m.Called(ctx, day))
}

func (m *MockRecordUseCase) Completed(ctx context.Context) []recordDomain.View {
	return views(m.Called(ctx))
}

func (m *MockRecordUseCase) CompletedBetween(ctx context.Context, start, end time.Time) []recordDomain.View {
	return views(m.Called(ctx, start, end))
}

func (m *MockRecordUseCase) Cancelled(ctx context.Context) []recordDomain.View {
	return views(m.Called(ctx))
}

func (m *MockRecordUseCase) Export(ctx context.Context, path string, v []recordDomain.View) (int, error) {
	args := m.Called(ctx, path, v)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordUseCase) ExportAll(ctx context.Context, path string) (int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordUseCase) Import(ctx context.Context, path string) (int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordUseCase) ExportBackup(ctx context.Context, path string, payload json.RawMessage) (int, error) {
	args := m.Called(ctx, path, payload)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordUseCase) ImportBackup(ctx context.Context, path string) (json.RawMessage, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func views(args mock.Arguments) []recordDomain.View {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]recordDomain.View)
}
