package notification

import (
	"context"
	"testing"

	"github.com/TestingSDK2/notify-backend/model"
	"github.com/pkg/errors"
)

func createRequest(body model.Document) *model.RequestInfo {
	return &model.RequestInfo{
		Verb:    "POST",
		Session: model.Session{UserID: "caller", DeviceID: "caller-device"},
		Body:    body,
	}
}

func TestCreateAuthorization(t *testing.T) {
	t.Run("a plain caller is denied", func(t *testing.T) {
		store := newFakeStore()
		s := newTestService(store, newFakeSessions(), &fakeDelivery{})

		_, err := s.ProcessRequest(context.Background(), createRequest(createBody(nil)))

		var accessDenied *model.AccessDeniedError
		if !errors.As(err, &accessDenied) {
			t.Fatalf("error: got %v, want AccessDeniedError", err)
		}
		if len(store.creates) != 0 {
			t.Errorf("creates: got %d, want 0", len(store.creates))
		}
	})

	t.Run("a wrong notifications key is denied", func(t *testing.T) {
		s := newTestService(newFakeStore(), newFakeSessions(), &fakeDelivery{})

		req := createRequest(createBody(model.Document{"RecipientID": "user-a"}))
		req.Extra = map[string]string{"x-notifications-key": "not-the-key"}
		_, err := s.ProcessRequest(context.Background(), req)

		var accessDenied *model.AccessDeniedError
		if !errors.As(err, &accessDenied) {
			t.Fatalf("error: got %v, want AccessDeniedError", err)
		}
	})

	t.Run("the derived notifications key grants create", func(t *testing.T) {
		store := newFakeStore()
		s := newTestService(store, newFakeSessions(), &fakeDelivery{})

		req := createRequest(createBody(model.Document{"RecipientID": "user-a"}))
		req.Extra = map[string]string{"x-notifications-key": s.notificationsKey}
		if _, err := s.ProcessRequest(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.creates) != 1 {
			t.Errorf("creates: got %d, want 1", len(store.creates))
		}
	})

	t.Run("a system administrator may create", func(t *testing.T) {
		store := newFakeStore()
		s := newTestService(store, newFakeSessions(), &fakeDelivery{})

		req := createRequest(createBody(model.Document{"RecipientID": "user-a"}))
		req.IsSystemAdministrator = true
		if _, err := s.ProcessRequest(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.creates) != 1 {
			t.Errorf("creates: got %d, want 1", len(store.creates))
		}
	})
}

func TestCreateValidation(t *testing.T) {
	t.Run("no recipient at all is rejected", func(t *testing.T) {
		s := newTestService(newFakeStore(), newFakeSessions(), &fakeDelivery{})

		req := createRequest(createBody(nil))
		req.IsSystemAdministrator = true
		_, err := s.ProcessRequest(context.Background(), req)

		var invalid *model.InvalidRequestError
		if !errors.As(err, &invalid) {
			t.Fatalf("error: got %v, want InvalidRequestError", err)
		}
		if invalid.Message != "No recipient" {
			t.Errorf("message: got %q, want %q", invalid.Message, "No recipient")
		}
	})

	t.Run("missing sender information is rejected", func(t *testing.T) {
		s := newTestService(newFakeStore(), newFakeSessions(), &fakeDelivery{})

		req := createRequest(model.Document{"RecipientID": "user-a", "Title": "hello"})
		req.IsSystemAdministrator = true
		_, err := s.ProcessRequest(context.Background(), req)

		var invalid *model.InvalidRequestError
		if !errors.As(err, &invalid) {
			t.Fatalf("error: got %v, want InvalidRequestError", err)
		}
	})
}

func TestCreateSingleRecipient(t *testing.T) {
	store := newFakeStore()
	sessions := newFakeSessions()
	sessions.sessions["user-a"] = []model.UserSession{
		liveSession("user-a", "device-a1"),
		offlineSession("user-a", "device-a2"),
	}
	delivery := &fakeDelivery{}
	s := newTestService(store, sessions, delivery)

	req := createRequest(createBody(model.Document{"RecipientID": "user-a"}))
	req.IsSystemAdministrator = true
	response, err := s.ProcessRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.creates) != 1 {
		t.Fatalf("creates: got %d, want 1", len(store.creates))
	}
	created := store.creates[0]
	if created.RecipientID != "user-a" {
		t.Errorf("recipient: got %s, want user-a", created.RecipientID)
	}
	if created.ID == "" {
		t.Error("created record has no ID")
	}
	if response.GetString("ID") != created.ID {
		t.Errorf("response ID: got %s, want %s", response.GetString("ID"), created.ID)
	}
	if len(delivery.pushes) != 1 {
		t.Fatalf("pushes: got %d, want 1 (offline sessions are skipped)", len(delivery.pushes))
	}
	if delivery.pushes[0].deviceID != "device-a1" {
		t.Errorf("push device: got %s, want device-a1", delivery.pushes[0].deviceID)
	}
}

func TestCreateBulkRecipients(t *testing.T) {
	t.Run("one record per recipient, last one answers", func(t *testing.T) {
		store := newFakeStore()
		sessions := newFakeSessions()
		sessions.sessions["user-a"] = []model.UserSession{liveSession("user-a", "device-a")}
		sessions.sessions["user-c"] = []model.UserSession{liveSession("user-c", "device-c")}
		delivery := &fakeDelivery{}
		s := newTestService(store, sessions, delivery)

		req := createRequest(createBody(model.Document{
			"Recipients": []string{"user-a", "user-b", "user-c"},
		}))
		req.IsSystemAdministrator = true
		response, err := s.ProcessRequest(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.creates) != 3 {
			t.Fatalf("creates: got %d, want 3", len(store.creates))
		}
		seen := map[string]bool{}
		for i, want := range []string{"user-a", "user-b", "user-c"} {
			created := store.creates[i]
			if created.RecipientID != want {
				t.Errorf("creates[%d] recipient: got %s, want %s", i, created.RecipientID, want)
			}
			if created.Title != "An update" || created.SenderID != "sender-1" {
				t.Errorf("creates[%d] content diverged: %+v", i, created)
			}
			if seen[created.ID] {
				t.Errorf("duplicate record ID %s", created.ID)
			}
			seen[created.ID] = true
		}
		if response.GetString("RecipientID") != "user-c" {
			t.Errorf("response recipient: got %s, want user-c", response.GetString("RecipientID"))
		}
		// user-b has no live session
		if len(delivery.pushes) != 2 {
			t.Fatalf("pushes: got %d, want 2", len(delivery.pushes))
		}
	})

	t.Run("each record is persisted before it is pushed", func(t *testing.T) {
		events := []string{}
		store := newFakeStore()
		store.events = &events
		sessions := newFakeSessions()
		sessions.sessions["user-a"] = []model.UserSession{liveSession("user-a", "device-a")}
		sessions.sessions["user-b"] = []model.UserSession{liveSession("user-b", "device-b")}
		delivery := &fakeDelivery{events: &events}
		s := newTestService(store, sessions, delivery)

		req := createRequest(createBody(model.Document{
			"Recipients": []string{"user-a", "user-b"},
		}))
		req.IsSystemAdministrator = true
		if _, err := s.ProcessRequest(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(events) != 4 {
			t.Fatalf("events: got %v, want create/push pairs", events)
		}
		for i := 0; i < len(events); i += 2 {
			if events[i][:7] != "create:" || events[i+1][:5] != "push:" {
				t.Fatalf("events out of order: %v", events)
			}
		}
	})

	t.Run("a failing insert aborts the remaining recipients", func(t *testing.T) {
		store := newFakeStore()
		store.failCreateAt = 2
		delivery := &fakeDelivery{}
		s := newTestService(store, newFakeSessions(), delivery)

		req := createRequest(createBody(model.Document{
			"Recipients": []string{"user-a", "user-b", "user-c"},
		}))
		req.IsSystemAdministrator = true
		_, err := s.ProcessRequest(context.Background(), req)

		var runtimeErr *model.RuntimeError
		if !errors.As(err, &runtimeErr) {
			t.Fatalf("error: got %v, want RuntimeError", err)
		}
		if len(store.creates) != 1 {
			t.Errorf("creates: got %d, want 1", len(store.creates))
		}
	})
}
