//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bissquit/newsletter/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storedSubscription struct {
	ID           uuid.UUID
	Email        string
	Name         string
	SubscribedAt time.Time
}

// uniqueEmail returns an address no other test writes, so row counts stay per-test.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%s@example.com", prefix, strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

func subscriptionsByEmail(t *testing.T, email string) []storedSubscription {
	t.Helper()

	rows, err := testDB.Query(context.Background(),
		`SELECT id, email, name, subscribed_at FROM subscriptions WHERE email = $1 ORDER BY subscribed_at`, email)
	require.NoError(t, err)
	defer rows.Close()

	var result []storedSubscription
	for rows.Next() {
		var s storedSubscription
		require.NoError(t, rows.Scan(&s.ID, &s.Email, &s.Name, &s.SubscribedAt))
		result = append(result, s)
	}
	require.NoError(t, rows.Err())
	return result
}

func countSubscriptions(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, testDB.QueryRow(context.Background(), `SELECT count(*) FROM subscriptions`).Scan(&n))
	return n
}

func TestSubscribe_Returns200ForValidFormData(t *testing.T) {
	client := newTestClient(t)
	email := uniqueEmail("engineer_rust")
	before := time.Now().Add(-time.Second)

	resp, err := client.PostForm("/subscriptions", url.Values{
		"name":  {"engineer rust"},
		"email": {email},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, testutil.ReadBody(t, resp))

	saved := subscriptionsByEmail(t, email)
	require.Len(t, saved, 1)
	assert.Equal(t, email, saved[0].Email)
	assert.Equal(t, "engineer rust", saved[0].Name)
	assert.NotEqual(t, uuid.Nil, saved[0].ID)
	assert.True(t, saved[0].SubscribedAt.After(before), "subscribed_at should be set at acceptance time")
}

func TestSubscribe_ExactBodyFromClients(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.PostRaw("/subscriptions", testutil.FormContentType,
		"name=engineer%20rust&email=engineer_rust%40gmail.com")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	saved := subscriptionsByEmail(t, "engineer_rust@gmail.com")
	require.NotEmpty(t, saved)
	assert.Equal(t, "engineer rust", saved[len(saved)-1].Name)
}

func TestSubscribe_RequestMatchesOpenAPI(t *testing.T) {
	body := url.Values{"name": {"Ursula Le Guin"}, "email": {uniqueEmail("ursula")}}.Encode()
	req, err := http.NewRequest(http.MethodPost, testServer.URL+"/subscriptions", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", testutil.FormContentType)

	testValidator.ValidateRequest(t, req)
}

func TestSubscribe_Returns400WhenDataIsMissing(t *testing.T) {
	client := newTestClient(t)

	testCases := []struct {
		body        string
		description string
	}{
		{"name=engineer%20rust", "missing the email"},
		{"email=engineer_rust%40gmail.com", "missing the name"},
		{"", "missing both name and email"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			before := countSubscriptions(t)

			resp, err := client.PostRaw("/subscriptions", testutil.FormContentType, tc.body)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
				"the API did not fail with 400 Bad Request when the payload was %s", tc.description)
			assert.Equal(t, before, countSubscriptions(t))
		})
	}
}

func TestSubscribe_Returns400WhenFieldsAreInvalid(t *testing.T) {
	client := newTestClient(t)

	testCases := []struct {
		name        string
		email       string
		description string
	}{
		{"", uniqueEmail("empty"), "empty name"},
		{"   ", uniqueEmail("blank"), "whitespace-only name"},
		{strings.Repeat("a", 257), uniqueEmail("long"), "name over 256 characters"},
		{"Ursula {Le Guin}", uniqueEmail("braces"), "name with forbidden characters"},
		{"Ursula", "", "empty email"},
		{"Ursula", "ursula-at-example.com", "email without at sign"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			resp, err := client.PostForm("/subscriptions", url.Values{
				"name":  {tc.name},
				"email": {tc.email},
			})
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			if tc.email != "" {
				assert.Empty(t, subscriptionsByEmail(t, tc.email))
			}
		})
	}
}

func TestSubscribe_DuplicateSubmissionsCreateDistinctRecords(t *testing.T) {
	client := newTestClient(t)
	email := uniqueEmail("twice")
	form := url.Values{"name": {"engineer rust"}, "email": {email}}

	for i := 0; i < 2; i++ {
		resp, err := client.PostForm("/subscriptions", form)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	saved := subscriptionsByEmail(t, email)
	require.Len(t, saved, 2)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)
}

func TestSubscribe_ConcurrentRequests(t *testing.T) {
	client := newTestClient(t).WithoutValidation()
	email := uniqueEmail("concurrent")
	const n = 20

	var wg sync.WaitGroup
	statuses := make([]int, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.PostForm("/subscriptions", url.Values{
				"name":  {fmt.Sprintf("reader %d", i)},
				"email": {email},
			})
			if err != nil {
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}()
	}
	wg.Wait()

	for i, status := range statuses {
		assert.Equal(t, http.StatusOK, status, "request %d", i)
	}
	assert.Len(t, subscriptionsByEmail(t, email), n)
}
