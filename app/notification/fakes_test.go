package notification

import (
	"context"
	"fmt"

	"github.com/TestingSDK2/notify-backend/app/config"
	"github.com/TestingSDK2/notify-backend/model"
)

// fakeStore - in-memory NotificationStore recording every call
type fakeStore struct {
	records      map[string]*model.Notification
	listing      []*model.Notification
	total        int64
	creates      []*model.Notification
	updates      []*model.Notification
	lastFilter   model.Filter
	lastSort     model.Sort
	findCalls    []int
	countErr     error
	failCreateAt int
	events       *[]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: map[string]*model.Notification{},
		total:   -1,
	}
}

func (f *fakeStore) record(event string) {
	if f.events != nil {
		*f.events = append(*f.events, event)
	}
}

func (f *fakeStore) Count(ctx context.Context, filter model.Filter) (int64, error) {
	f.lastFilter = filter
	if f.countErr != nil {
		return 0, f.countErr
	}
	if f.total >= 0 {
		return f.total, nil
	}
	return int64(len(f.listing)), nil
}

func (f *fakeStore) Find(ctx context.Context, filter model.Filter, sort model.Sort, pageSize, pageNumber int) ([]*model.Notification, error) {
	f.lastFilter = filter
	f.lastSort = sort
	f.findCalls = append(f.findCalls, pageNumber)
	start := pageSize * (pageNumber - 1)
	if start >= len(f.listing) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(f.listing) {
		end = len(f.listing)
	}
	return f.listing[start:end], nil
}

func (f *fakeStore) Create(ctx context.Context, notification *model.Notification) error {
	if f.failCreateAt > 0 && len(f.creates)+1 >= f.failCreateAt {
		return fmt.Errorf("insert failed")
	}
	stored := *notification
	f.creates = append(f.creates, &stored)
	f.records[stored.ID] = &stored
	f.record("create:" + stored.ID)
	return nil
}

func (f *fakeStore) Update(ctx context.Context, notification *model.Notification, fullReplace bool) error {
	stored := *notification
	f.updates = append(f.updates, &stored)
	f.records[stored.ID] = &stored
	f.record("update:" + stored.ID)
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	stored, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	found := *stored
	return &found, nil
}

// fakeSessions - canned session registry
type fakeSessions struct {
	sessions map[string][]model.UserSession
	err      error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string][]model.UserSession{}}
}

func (f *fakeSessions) SessionsOf(ctx context.Context, userID string) ([]model.UserSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[userID], nil
}

// fakeDelivery records every push
type push struct {
	serviceName string
	deviceID    string
	payload     model.Document
}

type fakeDelivery struct {
	pushes []push
	err    error
	events *[]string
}

func (f *fakeDelivery) Send(ctx context.Context, serviceName, deviceID string, payload model.Document) error {
	if f.err != nil {
		return f.err
	}
	f.pushes = append(f.pushes, push{serviceName: serviceName, deviceID: deviceID, payload: payload})
	if f.events != nil {
		*f.events = append(*f.events, "push:"+deviceID)
	}
	return nil
}

func newTestService(store *fakeStore, sessions *fakeSessions, delivery *fakeDelivery) *service {
	return newTestServiceWithShutdown(store, sessions, delivery, context.Background())
}

func newTestServiceWithShutdown(store *fakeStore, sessions *fakeSessions, delivery *fakeDelivery, shutdown context.Context) *service {
	conf := &config.Config{ServiceName: "Notifications"}
	repos := &model.Repos{Store: store, Sessions: sessions, Delivery: delivery}
	return NewService(repos, conf, shutdown).(*service)
}

func liveSession(userID, deviceID string) model.UserSession {
	return model.UserSession{SessionID: "session-" + deviceID, UserID: userID, DeviceID: deviceID, IsOnline: true}
}

func offlineSession(userID, deviceID string) model.UserSession {
	return model.UserSession{SessionID: "session-" + deviceID, UserID: userID, DeviceID: deviceID, IsOnline: false}
}

func createBody(overrides model.Document) model.Document {
	body := model.Document{
		"SenderID":    "sender-1",
		"SenderName":  "Sender One",
		"ServiceName": "Portals",
		"ObjectName":  "Content",
		"Title":       "An update",
	}
	for key, value := range overrides {
		body[key] = value
	}
	return body
}
