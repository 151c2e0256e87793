package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bidportal/db"
	"bidportal/internal/bridge"
	"bidportal/internal/handlers"
	"bidportal/internal/handlers/testutils"
	"bidportal/internal/password"
	"bidportal/internal/session"
	"bidportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockStorage implements handlers.Storage. Methods without a func field
// panic through the nil embedded interface.
type MockStorage struct {
	handlers.Storage

	users   map[int64]models.User
	bids    map[int64]models.Bid
	hash    string
	alerts  []models.NewAlert
	joined  map[int64]int64
	listErr error

	// proposals maps proposal id to bid id
	proposals map[int64]int64

	ListBidsFunc      func(ctx context.Context, viewer *models.User, f models.BidFilter) ([]models.Bid, error)
	BulkActionFunc    func(ctx context.Context, action models.BulkAction, ids []int64) (int64, error)
	ParticipantsFunc  func(ctx context.Context, bidID int64) ([]int64, error)
	ListAlertsFunc    func(ctx context.Context, userID int64) ([]models.Alert, error)
	markedRead        []int64
	updatedBid        *models.Bid
	registered        *models.Registration
	submittedProposal float64
	bulkCalled        bool
	proposalStatus    models.ProposalStatus
}

func newMock() *MockStorage {
	return &MockStorage{
		users:     map[int64]models.User{},
		bids:      map[int64]models.Bid{},
		joined:    map[int64]int64{},
		proposals: map[int64]int64{},
	}
}

func (m *MockStorage) FindActiveUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	for _, u := range m.users {
		if u.Email == email && u.Status == models.StatusActive {
			return &u, m.hash, nil
		}
	}
	return nil, "", db.ErrNotFound
}

func (m *MockStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &u, nil
}

func (m *MockStorage) ListUsers(ctx context.Context, viewer *models.User, f models.UserFilter) ([]models.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return []models.User{m.users[2]}, nil
}

func (m *MockStorage) RegisterUser(ctx context.Context, r models.Registration) (int64, error) {
	m.registered = &r
	return 42, nil
}

func (m *MockStorage) ResetPassword(ctx context.Context, id int64) (string, error) {
	return "abcd1234", nil
}

func (m *MockStorage) BulkAction(ctx context.Context, action models.BulkAction, ids []int64) (int64, error) {
	m.bulkCalled = true
	return m.BulkActionFunc(ctx, action, ids)
}

func (m *MockStorage) ListBids(ctx context.Context, viewer *models.User, f models.BidFilter) ([]models.Bid, error) {
	return m.ListBidsFunc(ctx, viewer, f)
}

func (m *MockStorage) GetBidByID(ctx context.Context, id int64) (*models.Bid, error) {
	b, ok := m.bids[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &b, nil
}

func (m *MockStorage) CreateBid(ctx context.Context, b models.Bid) (int64, error) {
	m.updatedBid = &b
	return 77, nil
}

func (m *MockStorage) UpdateBid(ctx context.Context, b models.Bid) error {
	m.updatedBid = &b
	return nil
}

func (m *MockStorage) ListDocumentsForBid(ctx context.Context, bidID int64) ([]models.Document, error) {
	return []models.Document{{ID: 1, BidID: bidID, FileName: "terms.pdf", Path: "/terms.pdf"}}, nil
}

func (m *MockStorage) ListFavoriteIDsForBid(ctx context.Context, userID, bidID int64) ([]int64, error) {
	return []int64{1}, nil
}

func (m *MockStorage) CheckParticipation(ctx context.Context, bidID, userID int64) (*models.Participation, error) {
	if id, ok := m.joined[bidID]; ok {
		return &models.Participation{ID: id, BidID: bidID, UserID: userID}, nil
	}
	return nil, nil
}

func (m *MockStorage) JoinBid(ctx context.Context, bidID, userID int64) (int64, error) {
	m.joined[bidID] = 500 + bidID
	return m.joined[bidID], nil
}

func (m *MockStorage) SubmitProposal(ctx context.Context, participationID int64, value float64, documentPath *string) (int64, error) {
	m.submittedProposal = value
	return 9, nil
}

func (m *MockStorage) ListParticipantsForBid(ctx context.Context, bidID int64) ([]int64, error) {
	return m.ParticipantsFunc(ctx, bidID)
}

func (m *MockStorage) GetBidIDForProposal(ctx context.Context, proposalID int64) (int64, error) {
	bidID, ok := m.proposals[proposalID]
	if !ok {
		return 0, db.ErrNotFound
	}
	return bidID, nil
}

func (m *MockStorage) UpdateProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error {
	m.proposalStatus = status
	return nil
}

func (m *MockStorage) CreateAlert(ctx context.Context, a models.NewAlert) (int64, error) {
	m.alerts = append(m.alerts, a)
	return int64(len(m.alerts)), nil
}

func (m *MockStorage) ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	return m.ListAlertsFunc(ctx, userID)
}

func (m *MockStorage) MarkAlertRead(ctx context.Context, alertID int64) error {
	m.markedRead = append(m.markedRead, alertID)
	return nil
}

func strPtr(s string) *string { return &s }

func admin() *models.User {
	return &models.User{ID: 1, Name: "Admin", Email: "admin@x.org", Role: models.RoleAdministrator, Organization: strPtr("X"), Status: models.StatusActive}
}

func standard() *models.User {
	return &models.User{ID: 2, Name: "Std", Email: "std@x.org", Role: models.RoleStandard, Organization: strPtr("X"), Status: models.StatusActive}
}

func newHandler(t *testing.T, store *MockStorage) *handlers.Handler {
	t.Helper()
	hash, err := password.Hash("secret", bcrypt.MinCost)
	require.NoError(t, err)
	store.hash = hash
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), store, session.Options{}, nil)
	return handlers.NewHandler(store, sessions)
}

func passthrough(next http.Handler) http.Handler { return next }

func TestPingHandler(t *testing.T) {
	h := newHandler(t, newMock())
	w := httptest.NewRecorder()
	h.PingHandler(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestLoginFlow(t *testing.T) {
	store := newMock()
	store.users[2] = *standard()
	router := newHandler(t, store).Routes(passthrough)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"std@x.org","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"std@x.org","password":"secret"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Std"`)

	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logging out twice is fine
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeactivatedUserLosesSession(t *testing.T) {
	store := newMock()
	store.users[2] = *standard()
	h := newHandler(t, store)
	router := h.Routes(passthrough)

	s, err := h.Sessions.Login(context.Background(), "std@x.org", "secret")
	require.NoError(t, err)
	me := func() int {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: h.Sessions.CookieName(), Value: s.ID})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}
	require.Equal(t, http.StatusOK, me())

	u := store.users[2]
	u.Status = models.StatusInactive
	store.users[2] = u
	assert.Equal(t, http.StatusUnauthorized, me())
}

func TestRegisterHandler(t *testing.T) {
	store := newMock()
	h := newHandler(t, store)

	w := httptest.NewRecorder()
	h.RegisterHandler(w, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"New","email":"not-an-email","tax_id":"1","password":"secret"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, store.registered)

	long := strings.Repeat("p", password.MaxLength+1)
	w = httptest.NewRecorder()
	h.RegisterHandler(w, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"New","email":"new@x.org","tax_id":"1","password":"`+long+`"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at most 72 bytes")
	assert.Nil(t, store.registered)

	w = httptest.NewRecorder()
	h.RegisterHandler(w, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"New","email":"new@x.org","tax_id":"1","password":"secret","role":"Administrator"}`)))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())
	require.NotNil(t, store.registered)
	assert.Equal(t, "new@x.org", store.registered.Email)
}

func TestNavigationByRole(t *testing.T) {
	labels := func(u *models.User) []string {
		var out []string
		for _, l := range handlers.Navigation(u) {
			out = append(out, l.Label)
		}
		return out
	}
	assert.Equal(t, []string{"Home", "Users", "New Bid"}, labels(admin()))
	assert.Equal(t, []string{"Home", "My Bids", "My Documents", "Alerts"}, labels(standard()))
	assert.Equal(t, []string{"Home"}, labels(nil))
}

func TestListBidsPassesViewerAndFilters(t *testing.T) {
	store := newMock()
	var gotViewer *models.User
	var gotFilter models.BidFilter
	store.ListBidsFunc = func(ctx context.Context, viewer *models.User, f models.BidFilter) ([]models.Bid, error) {
		gotViewer, gotFilter = viewer, f
		return []models.Bid{{ID: 1, Title: "Sample Bid", Status: models.BidOpen}}, nil
	}
	h := newHandler(t, store)

	req := testutils.AsUser(httptest.NewRequest(http.MethodGet, "/api/bids?search=paper&organization=X", nil), standard())
	w := httptest.NewRecorder()
	h.ListBidsHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sample Bid")
	assert.Equal(t, int64(2), gotViewer.ID)
	assert.Equal(t, models.BidFilter{Search: "paper", Organization: "X"}, gotFilter)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"unavailable", bridge.ErrUnavailable, http.StatusServiceUnavailable, "service unavailable"},
		{"store message", &bridge.Error{StatusCode: 500, Message: "UNIQUE constraint failed: users.email"}, http.StatusInternalServerError, "UNIQUE constraint failed: users.email"},
		{"validation", db.ErrNoUsersSelected, http.StatusBadRequest, "no users selected"},
		{"not found", db.ErrNotFound, http.StatusNotFound, "not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMock()
			store.listErr = tc.err
			h := newHandler(t, store)

			req := testutils.AsUser(httptest.NewRequest(http.MethodGet, "/api/users", nil), admin())
			w := httptest.NewRecorder()
			h.ListUsersHandler(w, req)

			assert.Equal(t, tc.status, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.body, body["error"])
		})
	}
}

func TestUsersRequirePrivilegedRole(t *testing.T) {
	store := newMock()
	store.users[2] = *standard()
	h := newHandler(t, store)
	router := h.Routes(passthrough)

	s, err := h.Sessions.Login(context.Background(), "std@x.org", "secret")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: h.Sessions.CookieName(), Value: s.ID})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResetPasswordHidesOtherOrganizations(t *testing.T) {
	store := newMock()
	store.users[5] = models.User{ID: 5, Name: "Foreign", Organization: strPtr("Y")}
	store.users[6] = models.User{ID: 6, Name: "Local", Organization: strPtr("X")}
	h := newHandler(t, store)

	req := httptest.NewRequest(http.MethodPost, "/api/users/5/reset-password", nil)
	req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": "5"}), admin())
	w := httptest.NewRecorder()
	h.ResetPasswordHandler(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/users/6/reset-password", nil)
	req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": "6"}), admin())
	w = httptest.NewRecorder()
	h.ResetPasswordHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"password":"abcd1234"}`, w.Body.String())
}

func TestBulkActionHandler(t *testing.T) {
	store := newMock()
	store.BulkActionFunc = func(ctx context.Context, action models.BulkAction, ids []int64) (int64, error) {
		if len(ids) == 0 {
			return 0, db.ErrNoUsersSelected
		}
		return int64(len(ids)), nil
	}
	store.users[3] = models.User{ID: 3, Name: "Three", Organization: strPtr("X")}
	store.users[4] = models.User{ID: 4, Name: "Four", Organization: strPtr("X")}
	h := newHandler(t, store)

	w := httptest.NewRecorder()
	h.BulkActionHandler(w, testutils.AsUser(httptest.NewRequest(http.MethodPost, "/api/users/bulk",
		strings.NewReader(`{"action":"delete","ids":[]}`)), admin()))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.BulkActionHandler(w, testutils.AsUser(httptest.NewRequest(http.MethodPost, "/api/users/bulk",
		strings.NewReader(`{"action":"deactivate","ids":[3,4]}`)), admin()))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"affected":2}`, w.Body.String())
}

func TestBulkActionRejectsOtherOrganizations(t *testing.T) {
	store := newMock()
	store.BulkActionFunc = func(ctx context.Context, action models.BulkAction, ids []int64) (int64, error) {
		return int64(len(ids)), nil
	}
	store.users[3] = models.User{ID: 3, Name: "Local", Organization: strPtr("X")}
	store.users[5] = models.User{ID: 5, Name: "Foreign", Organization: strPtr("Y")}
	h := newHandler(t, store)

	for _, body := range []string{
		`{"action":"delete","ids":[3,5]}`,
		`{"action":"delete","ids":[99]}`,
	} {
		w := httptest.NewRecorder()
		h.BulkActionHandler(w, testutils.AsUser(httptest.NewRequest(http.MethodPost, "/api/users/bulk",
			strings.NewReader(body)), admin()))
		assert.Equal(t, http.StatusNotFound, w.Code, body)
	}
	assert.False(t, store.bulkCalled)
}

func TestUpdateProposalStatusChecksBidOwnership(t *testing.T) {
	store := newMock()
	store.bids[3] = models.Bid{ID: 3, Title: "Paper", Organization: "X", Status: models.BidOpen}
	store.bids[4] = models.Bid{ID: 4, Title: "Roads", Organization: "Y", Status: models.BidOpen}
	store.proposals[30] = 3
	store.proposals[40] = 4
	h := newHandler(t, store)

	update := func(id string, u *models.User) int {
		req := httptest.NewRequest(http.MethodPut, "/api/proposals/"+id+"/status",
			strings.NewReader(`{"status":"accepted"}`))
		req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": id}), u)
		w := httptest.NewRecorder()
		h.UpdateProposalStatusHandler(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, update("40", admin()))
	assert.Equal(t, http.StatusForbidden, update("30", standard()))
	assert.Equal(t, http.StatusNotFound, update("99", admin()))
	assert.Empty(t, store.proposalStatus)

	assert.Equal(t, http.StatusNoContent, update("30", admin()))
	assert.Equal(t, models.ProposalAccepted, store.proposalStatus)
}

func TestCreateBidForcesOrganization(t *testing.T) {
	store := newMock()
	h := newHandler(t, store)

	body := `{"title":"Paper","organization":"Y","opens_at":"2026-01-01T00:00:00Z","closes_at":"2026-02-01T00:00:00Z"}`
	w := httptest.NewRecorder()
	h.CreateBidHandler(w, testutils.AsUser(httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(body)), admin()))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.updatedBid)
	assert.Equal(t, "X", store.updatedBid.Organization)
	assert.Equal(t, int64(1), *store.updatedBid.CreatedBy)

	bad := `{"title":"Paper","opens_at":"2026-02-01T00:00:00Z","closes_at":"2026-01-01T00:00:00Z"}`
	w = httptest.NewRecorder()
	h.CreateBidHandler(w, testutils.AsUser(httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(bad)), admin()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBidAlertsParticipants(t *testing.T) {
	store := newMock()
	store.bids[3] = models.Bid{ID: 3, Title: "Paper", Organization: "X", Status: models.BidOpen}
	store.bids[4] = models.Bid{ID: 4, Title: "Roads", Organization: "Y", Status: models.BidOpen}
	store.ParticipantsFunc = func(ctx context.Context, bidID int64) ([]int64, error) {
		return []int64{10, 11}, nil
	}
	h := newHandler(t, store)

	body := `{"title":"Paper A4","opens_at":"2026-01-01T00:00:00Z","closes_at":"2026-02-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPut, "/api/bids/3", strings.NewReader(body))
	req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": "3"}), admin())
	w := httptest.NewRecorder()
	h.UpdateBidHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "X", store.updatedBid.Organization)
	assert.Equal(t, models.BidOpen, store.updatedBid.Status)
	require.Len(t, store.alerts, 2)
	for i, a := range store.alerts {
		assert.Equal(t, int64(10+i), a.UserID)
		assert.Equal(t, models.DefaultAlertCategory, a.Category)
		assert.Equal(t, int64(3), *a.BidID)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/bids/4", strings.NewReader(body))
	req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": "4"}), admin())
	w = httptest.NewRecorder()
	h.UpdateBidHandler(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetBidHidesClosedBidsFromStandardUsers(t *testing.T) {
	store := newMock()
	store.bids[1] = models.Bid{ID: 1, Title: "Open", Organization: "Y", Status: models.BidOpen}
	store.bids[2] = models.Bid{ID: 2, Title: "Closed", Organization: "Y", Status: models.BidClosed}
	h := newHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/bids/1", nil)
	req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": "1"}), standard())
	w := httptest.NewRecorder()
	h.GetBidHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"documents":[`)
	assert.Contains(t, w.Body.String(), `"favorite_ids":[1]`)

	req = httptest.NewRequest(http.MethodGet, "/api/bids/2", nil)
	req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": "2"}), standard())
	w = httptest.NewRecorder()
	h.GetBidHandler(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinThenSubmitProposal(t *testing.T) {
	store := newMock()
	store.bids[5] = models.Bid{ID: 5, Title: "Open", Organization: "Y", Status: models.BidOpen}
	h := newHandler(t, store)

	submit := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/bids/5/proposals", strings.NewReader(`{"value":120.5}`))
		req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": "5"}), standard())
		w := httptest.NewRecorder()
		h.SubmitProposalHandler(w, req)
		return w.Code
	}
	join := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/bids/5/join", nil)
		req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": "5"}), standard())
		w := httptest.NewRecorder()
		h.JoinBidHandler(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusBadRequest, submit())
	assert.Equal(t, http.StatusCreated, join())
	assert.Equal(t, http.StatusConflict, join())
	assert.Equal(t, http.StatusCreated, submit())
	assert.Equal(t, 120.5, store.submittedProposal)
}

func TestMarkAlertReadOnlyOwnAlerts(t *testing.T) {
	store := newMock()
	store.ListAlertsFunc = func(ctx context.Context, userID int64) ([]models.Alert, error) {
		return []models.Alert{{ID: 8, UserID: userID, Message: "hi"}}, nil
	}
	h := newHandler(t, store)

	for _, tc := range []struct {
		id     string
		status int
	}{{"9", http.StatusNotFound}, {"8", http.StatusNoContent}, {"x", http.StatusBadRequest}} {
		req := httptest.NewRequest(http.MethodPut, "/api/alerts/"+tc.id+"/read", nil)
		req = testutils.AsUser(testutils.WithChiURLParams(req, map[string]string{"id": tc.id}), standard())
		w := httptest.NewRecorder()
		h.MarkAlertReadHandler(w, req)
		assert.Equal(t, tc.status, w.Code, tc.id)
	}
	assert.Equal(t, []int64{8}, store.markedRead)
}

func TestStoreErrorsAreNotSwallowed(t *testing.T) {
	store := newMock()
	store.ListBidsFunc = func(ctx context.Context, viewer *models.User, f models.BidFilter) ([]models.Bid, error) {
		return nil, errors.New("connection reset")
	}
	h := newHandler(t, store)
	w := httptest.NewRecorder()
	h.ListBidsHandler(w, testutils.AsUser(httptest.NewRequest(http.MethodGet, "/api/bids", nil), standard()))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection reset")
}
