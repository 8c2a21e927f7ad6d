package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"adspace-chat/internal/dto"
	"adspace-chat/internal/queue"
)

type SchedulerMock struct {
	mock.Mock
}

func (m *SchedulerMock) Schedule(ctx context.Context, reply queue.AutoReply, delay time.Duration) error {
	args := m.Called(ctx, reply, delay)
	return args.Error(0)
}

func (m *SchedulerMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type EventPublisherMock struct {
	mock.Mock
}

func (m *EventPublisherMock) PublishEvent(ctx context.Context, routingKey, name string, payload any) error {
	args := m.Called(ctx, routingKey, name, payload)
	return args.Error(0)
}

type BusinessCacheMock struct {
	mock.Mock
}

func (m *BusinessCacheMock) Get(ctx context.Context, businessID int) (dto.BusinessDetail, error) {
	args := m.Called(ctx, businessID)
	var detail dto.BusinessDetail
	if val := args.Get(0); val != nil {
		detail = val.(dto.BusinessDetail)
	}
	return detail, args.Error(1)
}

func (m *BusinessCacheMock) Set(ctx context.Context, businessID int, detail dto.BusinessDetail) error {
	args := m.Called(ctx, businessID, detail)
	return args.Error(0)
}

func (m *BusinessCacheMock) Delete(ctx context.Context, businessID int) error {
	args := m.Called(ctx, businessID)
	return args.Error(0)
}
