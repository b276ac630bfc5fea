package handler

import (
	context "context"
	bidding "ebuy/internal/biddingService"
	models "ebuy/internal/models"
	reflect "reflect"
	time "time"

	gomock "github.com/golang/mock/gomock"
)

// MockBiddingServiceInterface is a mock of BiddingServiceInterface interface.
type MockBiddingServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockBiddingServiceInterfaceMockRecorder
}

// MockBiddingServiceInterfaceMockRecorder is the mock recorder for MockBiddingServiceInterface.
type MockBiddingServiceInterfaceMockRecorder struct {
	mock *MockBiddingServiceInterface
}

// NewMockBiddingServiceInterface creates a new mock instance.
func NewMockBiddingServiceInterface(ctrl *gomock.Controller) *MockBiddingServiceInterface {
	mock := &MockBiddingServiceInterface{ctrl: ctrl}
	mock.recorder = &MockBiddingServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBiddingServiceInterface) EXPECT() *MockBiddingServiceInterfaceMockRecorder {
	return m.recorder
}

// CreateAuction mocks base method.
func (m *MockBiddingServiceInterface) CreateAuction(ctx context.Context, in bidding.CreateAuctionInput) (*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateAuction", ctx, in)
	ret0, _ := ret[0].(*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateAuction indicates an expected call of CreateAuction.
func (mr *MockBiddingServiceInterfaceMockRecorder) CreateAuction(ctx, in interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateAuction", reflect.TypeOf((*MockBiddingServiceInterface)(nil).CreateAuction), ctx, in)
}

// GetAuction mocks base method.
func (m *MockBiddingServiceInterface) GetAuction(ctx context.Context, key string) (*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAuction", ctx, key)
	ret0, _ := ret[0].(*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAuction indicates an expected call of GetAuction.
func (mr *MockBiddingServiceInterfaceMockRecorder) GetAuction(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAuction", reflect.TypeOf((*MockBiddingServiceInterface)(nil).GetAuction), ctx, key)
}

// GetAuctionsByUser mocks base method.
func (m *MockBiddingServiceInterface) GetAuctionsByUser(ctx context.Context, userID string) ([]*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAuctionsByUser", ctx, userID)
	ret0, _ := ret[0].([]*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAuctionsByUser indicates an expected call of GetAuctionsByUser.
func (mr *MockBiddingServiceInterfaceMockRecorder) GetAuctionsByUser(ctx, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAuctionsByUser", reflect.TypeOf((*MockBiddingServiceInterface)(nil).GetAuctionsByUser), ctx, userID)
}

// GetBids mocks base method.
func (m *MockBiddingServiceInterface) GetBids(ctx context.Context, key string) ([]models.PlacedBid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBids", ctx, key)
	ret0, _ := ret[0].([]models.PlacedBid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBids indicates an expected call of GetBids.
func (mr *MockBiddingServiceInterfaceMockRecorder) GetBids(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBids", reflect.TypeOf((*MockBiddingServiceInterface)(nil).GetBids), ctx, key)
}

// ListAuctions mocks base method.
func (m *MockBiddingServiceInterface) ListAuctions(ctx context.Context, page, pageSize int) ([]*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAuctions", ctx, page, pageSize)
	ret0, _ := ret[0].([]*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAuctions indicates an expected call of ListAuctions.
func (mr *MockBiddingServiceInterfaceMockRecorder) ListAuctions(ctx, page, pageSize interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAuctions", reflect.TypeOf((*MockBiddingServiceInterface)(nil).ListAuctions), ctx, page, pageSize)
}

// Now mocks base method.
func (m *MockBiddingServiceInterface) Now() time.Time {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Now")
	ret0, _ := ret[0].(time.Time)
	return ret0
}

// Now indicates an expected call of Now.
func (mr *MockBiddingServiceInterfaceMockRecorder) Now() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Now", reflect.TypeOf((*MockBiddingServiceInterface)(nil).Now))
}

// PlaceBid mocks base method.
func (m *MockBiddingServiceInterface) PlaceBid(ctx context.Context, in bidding.PlaceBidInput) (models.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PlaceBid", ctx, in)
	ret0, _ := ret[0].(models.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PlaceBid indicates an expected call of PlaceBid.
func (mr *MockBiddingServiceInterfaceMockRecorder) PlaceBid(ctx, in interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PlaceBid", reflect.TypeOf((*MockBiddingServiceInterface)(nil).PlaceBid), ctx, in)
}
