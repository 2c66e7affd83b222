package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

const feedURL = "http://10.0.2.2:8001/v1/feed/page/"

func newService() *Service {
	return NewService(&config.Config{Mandii: config.Mandii{AllowedHost: "10.0.2.2:8001"}})
}

func TestService_Allowed(t *testing.T) {
	s := newService()

	tests := []struct {
		url  string
		want bool
	}{
		{feedURL, true},
		{"http://10.0.2.2:8001/v1/shop/42/", true},
		{"https://evil.example.com/?next=10.0.2.2:8001", true},
		{"http://10.0.2.2:8000/", false},
		{"https://google.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Allowed(tt.url))
		})
	}
}

func TestService_OpenRejectsForeignURL(t *testing.T) {
	s := newService()

	_, err := s.Open("https://google.com")
	assert.True(t, apiErrors.IsValidationError(err))

	_, err = s.Navigate(feedURL)
	assert.ErrorIs(t, err, apiErrors.ErrInvalidState)
}

func TestService_PageLifecycle(t *testing.T) {
	s := newService()

	st, err := s.Open(feedURL)
	require.NoError(t, err)
	assert.True(t, st.Loading)
	assert.Equal(t, "Mandii", st.Title)

	decision, err := s.Navigate("https://google.com")
	require.NoError(t, err)
	assert.False(t, decision.Allow)

	st, err = s.PageFinished("Community Feed")
	require.NoError(t, err)
	assert.False(t, st.Loading)
	assert.Equal(t, "Community Feed", st.Title)

	st, err = s.PageStarted("http://10.0.2.2:8001/v1/shop/42/")
	require.NoError(t, err)
	assert.True(t, st.Loading)
	assert.True(t, st.Subpage)

	st, err = s.PageFinished("  ")
	require.NoError(t, err)
	assert.Equal(t, "Community Feed", st.Title)

	assert.Equal(t, BackGoBack, s.Back())
}

func TestService_RetryAfterFailure(t *testing.T) {
	s := newService()
	_, err := s.Open(feedURL)
	require.NoError(t, err)

	_, err = s.PageStarted("http://10.0.2.2:8001/v1/shop/42/")
	require.NoError(t, err)

	st, err := s.LoadFailed("net::ERR_CONNECTION_REFUSED")
	require.NoError(t, err)
	assert.True(t, st.Failed)
	assert.False(t, st.Loading)
	assert.Equal(t, "Failed to load page", st.Error)

	st, err = s.Retry()
	require.NoError(t, err)
	assert.Equal(t, feedURL, st.CurrentURL)
	assert.True(t, st.Loading)
	assert.False(t, st.Failed)
}

func TestService_BackOnStartPageExits(t *testing.T) {
	s := newService()
	_, err := s.Open(feedURL)
	require.NoError(t, err)

	assert.Equal(t, BackExit, s.Back())

	_, err = s.PageFinished("x")
	assert.ErrorIs(t, err, apiErrors.ErrInvalidState)
}
