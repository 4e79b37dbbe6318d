package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
)

type stubInbox struct {
	items []models.Notification
}

func (s *stubInbox) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range s.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubInbox) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for _, item := range s.items {
		if item.UserID == userID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *stubInbox) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].UserID == userID {
			s.items[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (s *stubInbox) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for i := range s.items {
		if s.items[i].UserID == userID && !s.items[i].IsRead {
			s.items[i].IsRead = true
			n++
		}
	}
	return n, nil
}

type stubUsers struct {
	users map[uint]*models.User
	prefs map[uint]*models.NotificationPreference
}

func newStubUsers() *stubUsers {
	return &stubUsers{users: map[uint]*models.User{}, prefs: map[uint]*models.NotificationPreference{}}
}

func (s *stubUsers) Get(ctx context.Context, id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.NotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) SaveProfile(ctx context.Context, u *models.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *stubUsers) SetFCMToken(ctx context.Context, userID uint, token string) error {
	u, ok := s.users[userID]
	if !ok {
		u = &models.User{ID: userID}
		s.users[userID] = u
	}
	u.FCMToken = token
	return nil
}

func (s *stubUsers) Preferences(ctx context.Context, userID uint) (*models.NotificationPreference, error) {
	if p, ok := s.prefs[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return models.DefaultPreferences(userID), nil
}

func (s *stubUsers) SavePreferences(ctx context.Context, p *models.NotificationPreference) error {
	cp := *p
	s.prefs[p.UserID] = &cp
	return nil
}

func TestNotificationInboxRoutes(t *testing.T) {
	inbox := &stubInbox{items: []models.Notification{
		{ID: 1, UserID: 20, Type: models.NotificationBookingConfirmed},
		{ID: 2, UserID: 20, Type: models.NotificationPaymentConfirmed},
		{ID: 3, UserID: 10, Type: models.NotificationBookingRequested},
	}}
	r := newTestRouter(Deps{Inbox: inbox})

	w := do(r, http.MethodGet, "/api/notifications", 20, nil)
	var list struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int64                 `json:"unreadCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	if len(list.Notifications) != 2 || list.UnreadCount != 2 {
		t.Fatalf("unexpected list %+v", list)
	}

	if w = do(r, http.MethodPost, "/api/notifications/3/read", 20, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign notification: %d", w.Code)
	}
	if w = do(r, http.MethodPost, "/api/notifications/1/read", 20, nil); w.Code != http.StatusOK {
		t.Fatalf("mark read: %d", w.Code)
	}
	w = do(r, http.MethodPost, "/api/notifications/read-all", 20, nil)
	var all struct {
		Updated int64 `json:"updated"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &all)
	if all.Updated != 1 {
		t.Fatalf("read-all updated %d", all.Updated)
	}
	if inbox.items[2].IsRead {
		t.Fatalf("another user's notification was marked read")
	}
}

func TestProfileAndPreferences(t *testing.T) {
	users := newStubUsers()
	r := newTestRouter(Deps{Users: users})

	if w := do(r, http.MethodGet, "/api/users/profile", 20, nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing profile: %d", w.Code)
	}
	w := do(r, http.MethodPut, "/api/users/profile", 20, map[string]string{"displayName": "Ana"})
	if w.Code != http.StatusOK || users.users[20].DisplayName != "Ana" {
		t.Fatalf("update profile: %d %s", w.Code, w.Body.String())
	}

	if w = do(r, http.MethodPost, "/api/notifications/register-token", 20, map[string]string{"fcmToken": "tok"}); w.Code != http.StatusOK {
		t.Fatalf("register token: %d", w.Code)
	}
	if users.users[20].FCMToken != "tok" || users.users[20].DisplayName != "Ana" {
		t.Fatalf("token not stored: %+v", users.users[20])
	}
	if w = do(r, http.MethodGet, "/api/users/profile", 20, nil); w.Code != http.StatusOK || strings.Contains(w.Body.String(), "tok") {
		t.Fatalf("profile: %d %s", w.Code, w.Body.String())
	}
	if w = do(r, http.MethodDelete, "/api/notifications/remove-token", 20, nil); w.Code != http.StatusOK || users.users[20].FCMToken != "" {
		t.Fatalf("remove token: %d", w.Code)
	}

	w = do(r, http.MethodPut, "/api/notifications/preferences", 20, map[string]bool{"messageAlerts": false})
	if w.Code != http.StatusOK {
		t.Fatalf("preferences: %d", w.Code)
	}
	p := users.prefs[20]
	if p == nil || p.MessageAlerts || !p.PushEnabled || !p.BookingAlerts {
		t.Fatalf("unexpected preferences %+v", p)
	}
}
